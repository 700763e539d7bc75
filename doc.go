// Package flatkey converts nested JSON-like trees to flat key-value
// mappings and back.
//
// Flatten encodes the path to each leaf into a single string key, such as
// "spec.containers[0].image", preserving document order, empty containers,
// and number fidelity. Unflatten rebuilds the tree and is Flatten's
// inverse. The separator between field steps is configurable per call.
package flatkey
