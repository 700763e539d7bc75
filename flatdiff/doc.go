// Package flatdiff compares two documents by flattening both and
// diffing the resulting flat mappings key by key.
//
// The result is a list of Add, Delete, and Change entries. Keys that
// appear on both sides compare by value only, so pure reordering of
// object fields produces no entries.
package flatdiff
