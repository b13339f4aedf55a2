package heap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kraytos17/segfit/region"
)

func newTestHeap(t *testing.T, capacity uint32) *Heap {
	t.Helper()
	h, err := New(region.NewSim(capacity), DefaultConfig)
	require.NoError(t, err, "New should not error")
	return h
}

func TestNew_ProducesConsistentHeap(t *testing.T) {
	h := newTestHeap(t, 64*1024)
	require.True(t, h.Check(), "freshly initialized heap must be consistent")
}

func TestAllocate_ZeroReturnsNull(t *testing.T) {
	h := newTestHeap(t, 4096)
	ptr, err := h.Allocate(0)
	require.NoError(t, err)
	require.Equal(t, nullBp, ptr)
}

func TestAllocate_ReturnsAlignedDistinctPointers(t *testing.T) {
	h := newTestHeap(t, 64*1024)

	seen := make(map[uint32]bool)
	for _, n := range []uint32{1, 8, 15, 16, 100, 4000} {
		ptr, err := h.Allocate(n)
		require.NoError(t, err, "Allocate(%d)", n)
		require.NotZero(t, ptr)
		require.False(t, seen[ptr], "pointer %d reused while still live", ptr)
		seen[ptr] = true
		require.Zero(t, ptr%h.cfg.Alignment(), "payload %d must be aligned", ptr)
		require.EqualValues(t, allocBit, h.alloc(ptr), "block must be marked allocated")
		require.True(t, h.Check(), "heap must stay consistent after Allocate(%d)", n)
	}
}

func TestAllocate_WritableThroughoutRequestedSize(t *testing.T) {
	h := newTestHeap(t, 64*1024)
	ptr, err := h.Allocate(200)
	require.NoError(t, err)

	buf := h.buf()
	for i := uint32(0); i < 200; i++ {
		buf[ptr+i] = byte(i)
	}
	for i := uint32(0); i < 200; i++ {
		require.Equal(t, byte(i), buf[ptr+i])
	}
}

func TestFree_NullIsNoop(t *testing.T) {
	h := newTestHeap(t, 4096)
	require.NoError(t, h.Free(nullBp))
	require.True(t, h.Check())
}

func TestFree_ThenReallocateSameSizeMayReuseSpace(t *testing.T) {
	h := newTestHeap(t, 64*1024)

	a, err := h.Allocate(64)
	require.NoError(t, err)
	b, err := h.Allocate(64)
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	require.NoError(t, h.Free(a))
	require.True(t, h.Check())

	c, err := h.Allocate(64)
	require.NoError(t, err)
	require.Equal(t, a, c, "freed block of the same size class should be reused first-fit")
}

func TestFree_CoalescesAdjacentFreeBlocks(t *testing.T) {
	h := newTestHeap(t, 64*1024)

	a, err := h.Allocate(64)
	require.NoError(t, err)
	b, err := h.Allocate(64)
	require.NoError(t, err)
	c, err := h.Allocate(64)
	require.NoError(t, err)

	require.NoError(t, h.Free(a))
	require.NoError(t, h.Free(c))
	require.NoError(t, h.Free(b))
	require.True(t, h.Check())

	// The three now-coalesced blocks should satisfy a single larger request
	// that none of the three original 64-byte blocks could serve alone.
	big, err := h.Allocate(3*64 + 4*4)
	require.NoError(t, err)
	require.True(t, h.Check())
	require.NotZero(t, big)
}

func TestAllocate_GrowsHeapWhenNoFitExists(t *testing.T) {
	h := newTestHeap(t, 256*1024)
	before := h.Stats().BytesGranted

	// Exhaust everything the initial CHUNKSIZE extension provided.
	for i := 0; i < 200; i++ {
		_, err := h.Allocate(64)
		require.NoError(t, err)
	}

	require.Greater(t, h.Stats().BytesGranted, before, "heap should have grown via the region provider")
	require.True(t, h.Check())
}

func TestAllocate_FailsWhenProviderExhausted(t *testing.T) {
	h := newTestHeap(t, 200)
	_, err := h.Allocate(10_000)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrOutOfMemory)
}

func TestStats_TracksCallsAndByteCounts(t *testing.T) {
	h := newTestHeap(t, 64*1024)

	ptr, err := h.Allocate(100)
	require.NoError(t, err)
	require.NoError(t, h.Free(ptr))

	stats := h.Stats()
	require.Equal(t, 1, stats.AllocCalls)
	require.Equal(t, 1, stats.FreeCalls)
	require.EqualValues(t, 100, stats.BytesRequested)
	require.Positive(t, stats.BytesGranted)
}

func TestConfig_CheckOnFreeRunsAutomatically(t *testing.T) {
	h, err := New(region.NewSim(64*1024), Config{
		NumLists:    DefaultConfig.NumLists,
		WordSize:    DefaultConfig.WordSize,
		ChunkSize:   DefaultConfig.ChunkSize,
		CheckOnFree: true,
	})
	require.NoError(t, err)

	ptr, err := h.Allocate(64)
	require.NoError(t, err)
	require.NoError(t, h.Free(ptr))
	require.True(t, h.Check())
}
