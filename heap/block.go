package heap

import "encoding/binary"

// allocBit is the low bit of a packed header/footer word.
const allocBit = 0x1

// A "pointer" in this module is a uint32 byte offset into the arena
// (region.Provider.Bytes()), per spec §9's guidance for languages that
// forbid aliasing-prone raw pointers. Offset 0 is reserved as the null
// sentinel: the free-list directory occupies it, so no real block ever
// starts there.
const nullBp uint32 = 0

func (h *Heap) buf() []byte { return h.provider.Bytes() }

func (h *Heap) get32(off uint32) uint32 {
	return binary.LittleEndian.Uint32(h.buf()[off : off+4])
}

func (h *Heap) put32(off, v uint32) {
	binary.LittleEndian.PutUint32(h.buf()[off:off+4], v)
}

// pack combines a size (already a multiple of 8, so its low 3 bits are
// free) with the allocation bit into one header/footer word.
func pack(size, alloc uint32) uint32 { return size | alloc }

func unpackSize(word uint32) uint32 { return word &^ 0x7 }
func unpackAlloc(word uint32) uint32 { return word & allocBit }

func (h *Heap) headerOff(bp uint32) uint32 { return bp - h.cfg.WordSize }
func (h *Heap) footerOff(bp uint32) uint32 { return bp + h.size(bp) - h.cfg.DSize() }

// size returns the total block size (header + payload/links + footer) in
// bytes, read from bp's header.
func (h *Heap) size(bp uint32) uint32 { return unpackSize(h.get32(h.headerOff(bp))) }

// alloc returns 1 if bp's block is allocated, 0 if free.
func (h *Heap) alloc(bp uint32) uint32 { return unpackAlloc(h.get32(h.headerOff(bp))) }

// nextBp returns the payload offset of the block physically following bp.
func (h *Heap) nextBp(bp uint32) uint32 { return bp + h.size(bp) }

// prevBp returns the payload offset of the block physically preceding bp,
// found via that neighbor's footer (the boundary tag).
func (h *Heap) prevBp(bp uint32) uint32 {
	prevFooterOff := bp - h.cfg.DSize()
	prevSize := unpackSize(h.get32(prevFooterOff))
	return bp - prevSize
}

// writeHeaderFooter stamps both boundary tags of bp's block with size and
// the given allocation bit.
func (h *Heap) writeHeaderFooter(bp, size, allocated uint32) {
	word := pack(size, allocated)
	h.put32(h.headerOff(bp), word)
	h.put32(bp+size-h.cfg.DSize(), word)
}

// writeHeader stamps only the header, used for the zero-sized epilogue
// sentinel which has no footer.
func (h *Heap) writeHeader(bp, size, allocated uint32) {
	h.put32(h.headerOff(bp), pack(size, allocated))
}

// Free-list link words live in a free block's payload/link area: prev at
// bp+0, next at bp+WordSize, matching the original source's GET_PPTR /
// GET_NPTR layout.
func (h *Heap) getPrevFree(bp uint32) uint32 { return h.get32(bp) }
func (h *Heap) setPrevFree(bp, v uint32)     { h.put32(bp, v) }
func (h *Heap) getNextFree(bp uint32) uint32 { return h.get32(bp + h.cfg.WordSize) }
func (h *Heap) setNextFree(bp, v uint32)     { h.put32(bp+h.cfg.WordSize, v) }

// classOf returns the segregated-list index for a block of the given size:
// the largest k such that size>>k >= 1, capped at numLists-1.
func classOf(size, numLists uint32) uint32 {
	k := uint32(0)
	s := size
	for k < numLists-1 && s > 1 {
		s >>= 1
		k++
	}
	return k
}

// align8 rounds n up to the nearest multiple of 8.
func align8(n uint32) uint32 {
	if n%8 == 0 {
		return n
	}
	return n + 8 - n%8
}

// adjustedSize computes the total block size (payload + header + footer,
// 8-byte aligned) needed to satisfy a request for n bytes of payload.
func (h *Heap) adjustedSize(n uint32) uint32 {
	if n <= h.cfg.DSize() {
		return 2 * h.cfg.DSize()
	}
	return align8(n + h.cfg.DSize())
}
