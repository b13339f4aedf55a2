package heap

// coalesce merges bp's free block with any free physical neighbors and
// inserts the result into its size class's list, returning the resulting
// block's payload offset. bp's header/footer must already be marked free
// before this is called.
func (h *Heap) coalesce(bp uint32) uint32 {
	prevAlloc := h.alloc(h.prevBp(bp))
	nextAlloc := h.alloc(h.nextBp(bp))
	size := h.size(bp)

	switch {
	case prevAlloc == allocBit && nextAlloc == allocBit:
		// Case A: both neighbors allocated, nothing to merge.

	case prevAlloc == allocBit && nextAlloc == 0:
		// Case B: next is free, merge forward.
		next := h.nextBp(bp)
		h.removeFree(next)
		size += h.size(next)
		h.writeHeaderFooter(bp, size, 0)
		h.stats.CoalesceFwd++

	case prevAlloc == 0 && nextAlloc == allocBit:
		// Case C: prev is free, merge backward.
		prev := h.prevBp(bp)
		h.removeFree(prev)
		size += h.size(prev)
		h.writeHeaderFooter(prev, size, 0)
		bp = prev
		h.stats.CoalesceBwd++

	default:
		// Case D: both neighbors free, merge both.
		prev := h.prevBp(bp)
		next := h.nextBp(bp)
		h.removeFree(prev)
		h.removeFree(next)
		size += h.size(prev) + h.size(next)
		h.writeHeaderFooter(prev, size, 0)
		bp = prev
		h.stats.CoalesceBoth++
	}

	h.insertFree(bp, size)
	return bp
}
