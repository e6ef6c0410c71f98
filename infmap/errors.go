package infmap

import "github.com/dennwc/genbind/errors"

var (
	// ErrMalformedDeclaration is returned when a declaration, member or
	// argument lacks a required name or type.
	ErrMalformedDeclaration = errors.New("malformed declaration")
	// ErrAllocation is kept for the error taxonomy. The Go runtime aborts on
	// out-of-memory, so it is never returned.
	ErrAllocation = errors.New("allocation failure")
	// ErrOrderingInconsistency is returned when the sorter finds no entry it
	// can place, which means an inheritance cycle.
	ErrOrderingInconsistency = errors.New("interface ordering inconsistency")
	// ErrUnresolvedParent is returned in strict mode for a parent name that
	// matches no entry.
	ErrUnresolvedParent = errors.New("unresolved parent interface")
	// ErrDuplicateDeclaration is returned for a second non-partial
	// definition of a name.
	ErrDuplicateDeclaration = errors.New("duplicate declaration")
	// ErrMultiplePrimaryGlobals is returned when more than one entry is
	// marked as the primary global.
	ErrMultiplePrimaryGlobals = errors.New("multiple primary globals")
	// ErrUnsupportedLiteral is returned for constant values that are not
	// integers.
	ErrUnsupportedLiteral = errors.New("unsupported literal")
)
