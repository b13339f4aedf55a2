package heap

// Reallocate implements the §4.6 state table. size is signed so that a
// negative request (meaningless as a byte count) can be distinguished from
// a zero-length free-and-return-null request, matching the distilled
// spec's "n interpreted as signed < 0" case.
func (h *Heap) Reallocate(ptr uint32, size int) (uint32, error) {
	h.stats.ReallocCalls++

	if ptr == nullBp {
		return h.Allocate(uint32(nonNegative(size)))
	}
	if size < 0 {
		return nullBp, nil
	}
	if size == 0 {
		if err := h.Free(ptr); err != nil {
			return nullBp, err
		}
		return nullBp, nil
	}

	required := align8(uint32(size)) + h.cfg.DSize()
	current := h.size(ptr)

	switch {
	case required == current:
		return ptr, nil

	case required < current:
		return h.shrinkInPlace(ptr, current, required), nil

	default:
		next := h.nextBp(ptr)
		if h.alloc(next) == 0 && current+h.size(next) >= required {
			h.removeFree(next)
			merged := current + h.size(next)
			h.writeHeaderFooter(ptr, merged, allocBit)
			return h.shrinkInPlace(ptr, merged, required), nil
		}

		newPtr, err := h.Allocate(required)
		if err != nil {
			return nullBp, err
		}
		oldPayload := current - h.cfg.DSize()
		copyLen := required - h.cfg.DSize()
		if oldPayload < copyLen {
			copyLen = oldPayload
		}
		copy(h.buf()[newPtr:newPtr+copyLen], h.buf()[ptr:ptr+copyLen])
		if err := h.Free(ptr); err != nil {
			return nullBp, err
		}
		return newPtr, nil
	}
}

func nonNegative(size int) int {
	if size < 0 {
		return 0
	}
	return size
}

// shrinkInPlace assumes block bp currently spans current bytes allocated,
// and required <= current. If the leftover is big enough to be a legal
// block, it splits off a free remainder and coalesces it with the block
// that follows when that block is free; otherwise the whole block is kept
// to avoid creating an illegally small fragment.
func (h *Heap) shrinkInPlace(bp, current, required uint32) uint32 {
	if current-required < h.cfg.MinBlockSize() {
		h.writeHeaderFooter(bp, current, allocBit)
		return bp
	}

	h.writeHeaderFooter(bp, required, allocBit)
	remainder := bp + required
	remSize := current - required
	h.writeHeaderFooter(remainder, remSize, 0)
	h.coalesce(remainder)
	h.stats.SplitCount++
	return bp
}
