package protomsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAligned(t *testing.T) {
	buf := AlignedBuffer(16)
	assert.True(t, Aligned(buf))
	assert.False(t, Aligned(buf[1:]))
	assert.False(t, Aligned(buf[2:]))
	assert.False(t, Aligned(buf[3:]))
	assert.True(t, Aligned(buf[4:]))
	assert.True(t, Aligned(nil))
}

func TestAlignedBuffer(t *testing.T) {
	for _, n := range []int{1, 3, 4, 23, 24, 1024} {
		buf := AlignedBuffer(n)
		require.Len(t, buf, n)
		assert.True(t, Aligned(buf))
		for _, b := range buf {
			require.Zero(t, b)
		}
	}

	assert.Nil(t, AlignedBuffer(0))
	assert.Nil(t, AlignedBuffer(-1))
}

func TestRoundup(t *testing.T) {
	assert.Equal(t, 24, Roundup(22, 4))
	assert.Equal(t, 24, Roundup(24, 4))
	assert.Equal(t, 0, Roundup(0, 4))
	assert.EqualValues(t, 8, Roundup(uint32(5), 8))
}
