package radix

import "errors"

// ErrInvalidKey is returned when a key's bit length is zero, not a
// multiple of 8, or the stream is nil/short for the requested bit length.
var ErrInvalidKey = errors.New("radix: invalid key")

// ErrOutOfMemory models the allocation-failure path of the original
// implementation. Go's runtime panics rather than returning nil on
// allocation failure, so this is never actually returned by this
// package; it exists so callers written against the documented contract
// have something to errors.Is against.
var ErrOutOfMemory = errors.New("radix: out of memory")
