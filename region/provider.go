// Package region implements the §6 "region provider" contract the heap
// allocator consumes: a monotonic, sbrk-like grow-by-N-bytes primitive
// yielding a single contiguous byte range.
//
// This is explicitly out of scope for the allocator's own correctness (see
// spec §1), but something has to back the arena the allocator's offsets
// index into, so this package gives the core two concrete choices: a
// deterministic in-process simulation (Sim) for tests and default use, and
// a real OS-backed reservation (OS) for callers that want an actual address
// range behind the heap.
package region

import "errors"

// ErrExhausted is returned by Sbrk when the provider cannot grow the
// region any further (the simulated cap is reached, or the OS refuses the
// commit).
var ErrExhausted = errors.New("region: provider exhausted")

// Provider is the out-of-scope collaborator described in spec §6: it owns
// the only mutable, growable memory the allocator core ever touches.
//
// Bytes is not part of the distilled C interface (which returns raw
// pointers into a shared address space); it is this module's concession to
// the fact that the allocator's "pointer" is a byte offset (see §9), so the
// core needs a typed view of the backing store to read and write header,
// footer, and free-list link words.
type Provider interface {
	// Init resets the region so the next Sbrk returns offset 0.
	Init() error

	// Sbrk extends the region by exactly n bytes and returns the offset of
	// the first new byte. Returns ErrExhausted (or a wrapped cause) if the
	// region cannot grow by n bytes.
	Sbrk(n uint32) (uint32, error)

	// Lo returns the region's low bound, always 0.
	Lo() uint32

	// Hi returns the region's current high bound (one past the last
	// committed byte).
	Hi() uint32

	// Bytes returns a slice view of [Lo(), Hi()). The returned slice's
	// backing array address is stable across Sbrk calls: growth only ever
	// extends it, never relocates it.
	Bytes() []byte
}
