package heap

import cerrors "github.com/cockroachdb/errors"

// extendHeap asks the region provider for words*WordSize bytes (rounded up
// to an even word count to preserve 8-byte alignment), turns the new space
// into one free block by reusing the old epilogue's header slot, writes a
// fresh epilogue after it, and coalesces the new block with whatever free
// block preceded it.
func (h *Heap) extendHeap(words uint32) (uint32, error) {
	if words%2 != 0 {
		words++
	}
	size := words * h.cfg.WordSize

	newOff, err := h.provider.Sbrk(size)
	if err != nil {
		logger.Debug().Uint32("requested_bytes", size).Err(err).Msg("heap: extend_heap sbrk failed")
		return nullBp, cerrors.Wrapf(ErrProviderExhausted, "extend heap by %d bytes", size)
	}

	// The new block's header reuses the slot the old epilogue header
	// occupied, one word before the first newly returned byte.
	blockHeaderOff := newOff - h.cfg.WordSize
	bp := blockHeaderOff + h.cfg.WordSize
	h.writeHeaderFooter(bp, size, 0)

	epilogueBp := bp + size
	h.writeHeader(epilogueBp, 0, allocBit)

	h.stats.BytesGranted += int64(size)
	if hi := h.provider.Hi(); hi > h.stats.BrkHighWater {
		h.stats.BrkHighWater = hi
	}
	logger.Debug().Uint32("bytes", size).Uint32("bp", bp).Msg("heap: extended")

	return h.coalesce(bp), nil
}
