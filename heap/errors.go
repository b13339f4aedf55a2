package heap

import "errors"

var (
	// ErrOutOfMemory indicates the region provider could not satisfy a
	// growth request after no free block in the request's own size class
	// fit. Free blocks in other size classes are not considered.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrProviderExhausted indicates the underlying region.Provider
	// refused to grow the heap any further.
	ErrProviderExhausted = errors.New("heap: region provider exhausted")

	// ErrBadConfig indicates a Config value that violates the allocator's
	// structural constraints (DSize = 2*WordSize, Alignment = DSize, a
	// usable number of size-class lists).
	ErrBadConfig = errors.New("heap: invalid configuration")
)
