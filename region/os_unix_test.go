//go:build unix

package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOS_ReserveCommitGrowIsContiguous(t *testing.T) {
	o, err := NewOS(1 << 20)
	if err != nil {
		t.Skipf("mmap unavailable in this sandbox: %v", err)
	}
	defer o.Close()

	require.NoError(t, o.Init())

	off1, err := o.Sbrk(64)
	require.NoError(t, err)
	assert.EqualValues(t, 0, off1)

	base := &o.Bytes()[0]

	off2, err := o.Sbrk(4096)
	require.NoError(t, err)
	assert.EqualValues(t, 64, off2)

	assert.Same(t, base, &o.Bytes()[0], "growth must not relocate the backing array")
	assert.EqualValues(t, 64+4096, o.Hi())

	// The committed region must actually be writable.
	buf := o.Bytes()
	buf[len(buf)-1] = 0x7F
	assert.Equal(t, byte(0x7F), o.Bytes()[len(buf)-1])
}

func TestOS_ExhaustionReturnsError(t *testing.T) {
	o, err := NewOS(4096)
	if err != nil {
		t.Skipf("mmap unavailable in this sandbox: %v", err)
	}
	defer o.Close()

	require.NoError(t, o.Init())
	_, err = o.Sbrk(1 << 20)
	require.ErrorIs(t, err, ErrExhausted)
}
