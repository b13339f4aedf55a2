package heap

// The free-list directory occupies the first cfg.NumLists*WordSize bytes of
// the arena: one uint32 slot per size class, holding the head offset of
// that class's doubly-linked list (0 = empty).

func (h *Heap) dirSlot(class uint32) uint32 { return class * h.cfg.WordSize }

func (h *Heap) listHead(class uint32) uint32 { return h.get32(h.dirSlot(class)) }

func (h *Heap) setListHead(class, bp uint32) { h.put32(h.dirSlot(class), bp) }

// insertFree adds bp (a free block of the given size) to the head of its
// size class's list. Insertion is LIFO, matching the original source.
func (h *Heap) insertFree(bp, size uint32) {
	class := classOf(size, h.cfg.NumLists)
	head := h.listHead(class)

	h.setNextFree(bp, head)
	h.setPrevFree(bp, nullBp)
	if head != nullBp {
		h.setPrevFree(head, bp)
	}
	h.setListHead(class, bp)

	h.stats.FreeBlocks++
}

// removeFree unlinks bp from its size class's list, patching the head
// pointer when bp was the first element.
func (h *Heap) removeFree(bp uint32) {
	class := classOf(h.size(bp), h.cfg.NumLists)
	prev := h.getPrevFree(bp)
	next := h.getNextFree(bp)

	if prev != nullBp {
		h.setNextFree(prev, next)
	} else {
		h.setListHead(class, next)
	}
	if next != nullBp {
		h.setPrevFree(next, prev)
	}

	h.stats.FreeBlocks--
}

// findFit searches only list class(asize), first-fit from the head. It
// deliberately does not fall through to larger classes even when one of
// them could serve the request (see spec §4.3/§9 and DESIGN.md).
func (h *Heap) findFit(asize uint32) (uint32, bool) {
	class := classOf(asize, h.cfg.NumLists)
	for bp := h.listHead(class); bp != nullBp; bp = h.getNextFree(bp) {
		if h.size(bp) >= asize {
			return bp, true
		}
	}
	return nullBp, false
}
