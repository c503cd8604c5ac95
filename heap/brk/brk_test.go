package brk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSliceBrkGrowShrink(t *testing.T) {
	b, err := NewSlice(1024)
	require.NoError(t, err)
	assert.Equal(t, int64(0), b.Break())

	prev, err := b.Sbrk(128)
	require.NoError(t, err)
	assert.Equal(t, int64(0), prev)
	assert.Equal(t, int64(128), b.Break())

	prev, err = b.Sbrk(64)
	require.NoError(t, err)
	assert.Equal(t, int64(128), prev)
	assert.Equal(t, int64(192), b.Break())

	prev, err = b.Sbrk(-64)
	require.NoError(t, err)
	assert.Equal(t, int64(192), prev)
	assert.Equal(t, int64(128), b.Break())
}

func TestSliceBrkExhaustion(t *testing.T) {
	b, err := NewSlice(256)
	require.NoError(t, err)

	_, err = b.Sbrk(256)
	require.NoError(t, err)

	// One byte past the reservation must fail without moving the break.
	_, err = b.Sbrk(1)
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, int64(256), b.Break())
}

func TestSliceBrkShrinkBelowZero(t *testing.T) {
	b, err := NewSlice(256)
	require.NoError(t, err)

	_, err = b.Sbrk(64)
	require.NoError(t, err)

	_, err = b.Sbrk(-65)
	assert.ErrorIs(t, err, ErrBadShrink)
	assert.Equal(t, int64(64), b.Break())
}

func TestSliceBrkBadLimit(t *testing.T) {
	_, err := NewSlice(0)
	assert.ErrorIs(t, err, ErrBadLimit)
	_, err = NewSlice(-1)
	assert.ErrorIs(t, err, ErrBadLimit)
}

func TestOffsetResolvesOwnPointers(t *testing.T) {
	b, err := NewSlice(1024)
	require.NoError(t, err)
	_, err = b.Sbrk(512)
	require.NoError(t, err)

	p := b.Bytes()[100:200]
	off, ok := b.Offset(p)
	require.True(t, ok)
	assert.Equal(t, int64(100), off)
}

func TestOffsetRejectsForeignPointers(t *testing.T) {
	b, err := NewSlice(1024)
	require.NoError(t, err)

	foreign := make([]byte, 16)
	_, ok := b.Offset(foreign)
	assert.False(t, ok)

	_, ok = b.Offset(nil)
	assert.False(t, ok)
}

func TestMapBrk(t *testing.T) {
	b, err := NewMap(4096)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, b.Close())
	}()

	prev, err := b.Sbrk(2048)
	require.NoError(t, err)
	assert.Equal(t, int64(0), prev)

	// The mapping must be writable up to the break.
	buf := b.Bytes()
	buf[0] = 0xAA
	buf[2047] = 0xBB
	assert.Equal(t, byte(0xAA), buf[0])
	assert.Equal(t, byte(0xBB), buf[2047])

	_, err = b.Sbrk(4096)
	assert.ErrorIs(t, err, ErrOutOfMemory)
}
