// Package heap implements the placement engine described in the spec: an
// in-band boundary-tag block format, a segregated family of free lists
// keyed by size class, the splitting/coalescing discipline that keeps the
// heap's structural invariants intact across every mutating operation, and
// a read-only consistency checker. It consumes a region.Provider for the
// one thing it does not own: where new bytes come from.
package heap

import (
	cerrors "github.com/cockroachdb/errors"

	"github.com/kraytos17/segfit/region"
)

// Heap is a single-mutator, boundary-tag segregated-fit allocator over a
// region.Provider-backed arena. All state — the provider, the free-list
// directory, running stats — is packaged into this one value; there is no
// package-level heap singleton, so independent Heap instances (one per
// test, for example) can coexist.
type Heap struct {
	provider region.Provider
	cfg      Config

	// prologueBp is the payload offset of the permanent prologue sentinel,
	// fixed once at New and never touched again. The consistency checker
	// walks the heap starting here.
	prologueBp uint32

	stats Stats
}

// New initializes a fresh heap over provider using cfg, writing the
// free-list directory, prologue, and epilogue sentinels and performing the
// first CHUNKSIZE heap extension, exactly mirroring the distilled spec's
// mm_init.
func New(provider region.Provider, cfg Config) (*Heap, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := provider.Init(); err != nil {
		return nil, cerrors.Wrap(err, "heap: provider init")
	}

	h := &Heap{provider: provider, cfg: cfg}

	dirBytes := cfg.NumLists * cfg.WordSize
	if _, err := provider.Sbrk(dirBytes); err != nil {
		return nil, cerrors.Wrap(err, "heap: allocate free-list directory")
	}

	// One word of alignment padding, a MinBlockSize prologue, and an
	// epilogue header: (4 + 16 + 4) = 24 bytes, already 8-byte aligned for
	// the default Config.
	padding := h.cfg.WordSize
	prologueSize := h.cfg.MinBlockSize()
	setupBytes := padding + prologueSize + h.cfg.WordSize

	setupOff, err := provider.Sbrk(setupBytes)
	if err != nil {
		return nil, cerrors.Wrap(err, "heap: allocate prologue/epilogue")
	}

	h.prologueBp = setupOff + padding + h.cfg.WordSize
	h.writeHeaderFooter(h.prologueBp, prologueSize, allocBit)

	epilogueBp := h.prologueBp + prologueSize
	h.writeHeader(epilogueBp, 0, allocBit)

	if _, err := h.extendHeap(cfg.ChunkSize / cfg.WordSize); err != nil {
		return nil, cerrors.Wrap(err, "heap: initial extend")
	}

	return h, nil
}

// Allocate satisfies a request for n bytes of payload per spec §4.3. A
// request for 0 bytes is not an error: it returns (0, nil).
func (h *Heap) Allocate(n uint32) (uint32, error) {
	h.stats.AllocCalls++
	h.stats.BytesRequested += int64(n)

	if n == 0 {
		return nullBp, nil
	}

	asize := h.adjustedSize(n)

	if bp, ok := h.findFit(asize); ok {
		return h.place(bp, asize), nil
	}

	words := asize
	if h.cfg.ChunkSize > words {
		words = h.cfg.ChunkSize
	}
	words /= h.cfg.WordSize

	bp, err := h.extendHeap(words)
	if err != nil {
		return nullBp, cerrors.Wrapf(ErrOutOfMemory, "allocate %d bytes", n)
	}

	return h.place(bp, asize), nil
}

// Free marks ptr's block free and immediately coalesces it with any free
// physical neighbors. ptr == 0 is a no-op. If Config.CheckOnFree is set,
// Check runs automatically afterward (its result is not returned: a
// failure is a logged diagnostic, not a caller-visible error, per spec
// §4.7/§7).
func (h *Heap) Free(ptr uint32) error {
	h.stats.FreeCalls++

	if ptr == nullBp {
		return nil
	}

	size := h.size(ptr)
	h.writeHeaderFooter(ptr, size, 0)
	h.coalesce(ptr)
	h.stats.LiveBlocks--

	if h.cfg.CheckOnFree {
		h.Check()
	}
	return nil
}
