// Package gomap converts between Go values and ir.Nodes by reflection.
//
// ToIR maps structs, maps, slices, and primitives onto the IR node
// types, detecting reference cycles by pointer identity. FromIR produces
// plain Go values (map[string]any, []any, primitives) from a node.
package gomap
