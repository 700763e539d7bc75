package flatkey

import (
	"errors"

	"github.com/flatkey-format/go-flatkey/ir/kpath"
)

var (
	// ErrCycle reports a container that is reachable from itself; such a
	// value cannot be flattened.
	ErrCycle = errors.New("cyclic structure")

	// ErrPathCollision reports two distinct source locations encoding to
	// the same flat key (Flatten), or two flat entries targeting the same
	// reconstructed position (Unflatten).
	ErrPathCollision = errors.New("path collision")

	// ErrStructuralConflict reports a path used inconsistently: as both
	// object-like and array-like, or as both leaf and container.
	ErrStructuralConflict = errors.New("structural conflict")

	// ErrEmptyInput reports an unflatten call with zero entries; the root
	// shape cannot be inferred from nothing.
	ErrEmptyInput = errors.New("empty input")

	// ErrNotFound reports a Lookup key addressing a position the tree
	// does not have.
	ErrNotFound = errors.New("not found")

	// ErrParse, ErrIndex, and ErrSeparator are the kpath error kinds,
	// re-exported so callers need only this package for classification.
	ErrParse     = kpath.ErrParse
	ErrIndex     = kpath.ErrIndex
	ErrSeparator = kpath.ErrSeparator
)
