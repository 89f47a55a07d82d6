package bitutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAcrossBytes(t *testing.T) {
	buf := NewBitBuffer([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
	assert.Equal(t, 40, buf.Available())

	v, err := buf.Read(1)
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.Equal(t, 39, buf.Available())

	v, err = buf.Read(6)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = buf.Read(2)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, buf.ByteOffset())
	assert.Equal(t, 1, buf.BitOffset())

	v, err = buf.Read(3)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = buf.Read(16)
	require.NoError(t, err)
	assert.Equal(t, 0x2030, v)

	v, err = buf.Read(8)
	require.NoError(t, err)
	assert.Equal(t, 0x40, v)

	v, err = buf.Read(4)
	require.NoError(t, err)
	assert.Equal(t, 0x05, v)
	assert.Equal(t, 0, buf.Available())
}

func TestReadRejectsBadLengths(t *testing.T) {
	buf := NewBitBuffer([]byte{0xFF, 0xFF})
	for _, n := range []int{0, -1, 33, 17} {
		_, err := buf.Read(n)
		require.Error(t, err, "n=%d", n)
		assert.True(t, errors.Is(err, ErrNotEnoughBits))
		var readErr *ReadError
		require.True(t, errors.As(err, &readErr))
		assert.Equal(t, n, readErr.Requested)
		assert.Equal(t, 16, readErr.Available)
	}
	// Failed reads consume nothing.
	assert.Equal(t, 16, buf.Available())
}

func TestPutReadRoundTrip(t *testing.T) {
	for length := 1; length <= 32; length++ {
		values := []int{0, 1, (1 << uint(length)) - 1, 0x5A5A5A5A & ((1 << uint(length)) - 1)}
		for _, value := range values {
			var w BitBuffer
			w.Put(1, 3) // misalign the value
			w.Put(value, length)

			r := NewBitBuffer(w.Bytes())
			prefix, err := r.Read(3)
			require.NoError(t, err)
			assert.Equal(t, 1, prefix)
			got, err := r.Read(length)
			require.NoError(t, err)
			assert.Equal(t, value, got, "length %d", length)
		}
	}
}

func TestPutGrowsOneByteAtATime(t *testing.T) {
	var b BitBuffer
	b.Put(0b101, 3)
	assert.Equal(t, []byte{0xA0}, b.Bytes())
	assert.Equal(t, 3, b.Len())
	b.Put(0x1F, 6)
	assert.Equal(t, []byte{0xAF, 0x80}, b.Bytes())
	assert.Equal(t, 9, b.Len())
	b.PutBit(true)
	assert.Equal(t, []byte{0xAF, 0xC0}, b.Bytes())
}

func TestRewindAndClear(t *testing.T) {
	buf := NewBitBuffer([]byte{0xC3})
	v, err := buf.Read(4)
	require.NoError(t, err)
	assert.Equal(t, 0xC, v)

	buf.Rewind()
	assert.Equal(t, 8, buf.Available())
	v, err = buf.Read(8)
	require.NoError(t, err)
	assert.Equal(t, 0xC3, v)

	buf.Clear()
	assert.Zero(t, buf.Available())
	assert.Zero(t, buf.Len())
}
