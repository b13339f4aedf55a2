package heap

// Check performs a read-only scan verifying the structural invariants from
// spec §3/§4.7. It never mutates the heap and never panics; on failure it
// logs one warning event per failed predicate and returns false.
func (h *Heap) Check() bool {
	ok := true

	listCount := 0
	for class := uint32(0); class < h.cfg.NumLists; class++ {
		for bp := h.listHead(class); bp != nullBp; bp = h.getNextFree(bp) {
			listCount++

			if h.alloc(bp) != 0 {
				ok = false
				logger.Warn().Uint32("bp", bp).Msg("heap check: block in free list is marked allocated")
			}

			// I4: no two adjacent free blocks. A free block's physical
			// neighbors must both be allocated; if either is also free,
			// immediate coalescing failed to merge them.
			if h.alloc(h.prevBp(bp)) == 0 || h.alloc(h.nextBp(bp)) == 0 {
				ok = false
				logger.Warn().Uint32("bp", bp).Msg("heap check: adjacent free blocks detected")
			}
		}
	}

	walkCount := 0
	bp := h.prologueBp
	for idx := 0; h.size(bp) != 0; idx++ {
		if h.alloc(bp) == 0 {
			walkCount++
		}

		if h.footerOff(bp) >= h.headerOff(h.nextBp(bp)) {
			ok = false
			logger.Warn().Uint32("bp", bp).Msg("heap check: blocks overlap")
		}

		if idx > 0 && h.size(bp) < h.cfg.MinBlockSize() {
			ok = false
			logger.Warn().Uint32("bp", bp).Uint32("size", h.size(bp)).Msg("heap check: block smaller than minimum size")
		}

		bp = h.nextBp(bp)
	}

	if walkCount != listCount {
		ok = false
		logger.Warn().Int("walk_free_blocks", walkCount).Int("listed_free_blocks", listCount).Msg("heap check: free block count mismatch")
	}

	return ok
}
