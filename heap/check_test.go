package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheck_DetectsBlockWronglyLinkedAsFreeButMarkedAllocated(t *testing.T) {
	h := newTestHeap(t, 64*1024)

	ptr, err := h.Allocate(32)
	require.NoError(t, err)

	// Corrupt the structure directly: link an allocated block into its
	// size class's free list without clearing its allocated bit, the
	// inconsistency Check's "listed block is marked allocated" predicate
	// and its free-block count comparison catch.
	class := classOf(h.size(ptr), h.cfg.NumLists)
	head := h.listHead(class)
	h.setNextFree(ptr, head)
	h.setPrevFree(ptr, nullBp)
	if head != nullBp {
		h.setPrevFree(head, ptr)
	}
	h.setListHead(class, ptr)

	require.False(t, h.Check())
}

func TestCheck_DetectsAdjacentFreeBlocksThatFailedToCoalesce(t *testing.T) {
	h := newTestHeap(t, 64*1024)

	a, err := h.Allocate(16)
	require.NoError(t, err)
	b, err := h.Allocate(16)
	require.NoError(t, err)

	// Mark both free directly, bypassing Free's automatic coalesce, to
	// simulate the exact structural violation I4 exists to detect.
	sizeA, sizeB := h.size(a), h.size(b)
	h.writeHeaderFooter(a, sizeA, 0)
	h.writeHeaderFooter(b, sizeB, 0)
	h.insertFree(a, sizeA)
	h.insertFree(b, sizeB)

	require.False(t, h.Check())
}

func TestCheck_PassesOnFreshHeap(t *testing.T) {
	h := newTestHeap(t, 64*1024)
	require.True(t, h.Check())
}
