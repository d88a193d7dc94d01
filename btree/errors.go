package btree

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("btree: invalid configuration")
	// ErrIndexOutOfBounds signals an invalid positional index.
	ErrIndexOutOfBounds = errors.New("btree: index out of bounds")
	// ErrKeyNotFound signals a lookup for a key which is not present.
	ErrKeyNotFound = errors.New("btree: key not found")
	// ErrNoCurrent signals a cursor operation which needs a current item
	// while the cursor is unpositioned. It is an ErrIndexOutOfBounds.
	ErrNoCurrent = fmt.Errorf("%w: cursor has no current item", ErrIndexOutOfBounds)
	// ErrCursorClosed signals use of a cursor after its scope has ended.
	ErrCursorClosed = errors.New("btree: cursor closed")
	// ErrCorrupted signals a violated structural invariant, found by Check.
	ErrCorrupted = errors.New("btree: structural invariant violated")
)
