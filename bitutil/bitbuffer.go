package bitutil

import (
	"errors"
	"fmt"
)

// ErrNotEnoughBits is wrapped by every ReadError.
var ErrNotEnoughBits = errors.New("bitutil: not enough bits available")

// ReadError reports a read that asked for an invalid number of bits.
type ReadError struct {
	Requested int
	Available int
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("bitutil: cannot read %d bits, %d available", e.Requested, e.Available)
}

func (e *ReadError) Unwrap() error { return ErrNotEnoughBits }

// BitBuffer is an append and read cursor over a byte sequence. Bits are
// written and read most significant first. The read position is tracked
// as a byte offset plus a bit offset within that byte.
type BitBuffer struct {
	bytes      []byte
	length     int // bits written through Put/PutBit
	byteOffset int
	bitOffset  int
}

// NewBitBuffer returns a buffer positioned at the start of data. The
// slice is used directly, not copied.
func NewBitBuffer(data []byte) *BitBuffer {
	return &BitBuffer{bytes: data, length: 8 * len(data)}
}

// Put appends the low length bits of bits.
func (b *BitBuffer) Put(bits, length int) *BitBuffer {
	for i := length - 1; i >= 0; i-- {
		b.PutBit((bits>>uint(i))&1 == 1)
	}
	return b
}

// PutBit appends one bit.
func (b *BitBuffer) PutBit(bit bool) *BitBuffer {
	index := b.length / 8
	if index >= len(b.bytes) {
		b.bytes = append(b.bytes, 0)
	}
	if bit {
		b.bytes[index] |= 0x80 >> uint(b.length%8)
	}
	b.length++
	return b
}

// Len returns the number of bits written.
func (b *BitBuffer) Len() int { return b.length }

// Bytes returns the backing bytes. A trailing partial byte is zero padded.
func (b *BitBuffer) Bytes() []byte { return b.bytes }

// ByteOffset returns the index of the next byte to be read.
func (b *BitBuffer) ByteOffset() int { return b.byteOffset }

// BitOffset returns the index of the next bit within the current byte.
func (b *BitBuffer) BitOffset() int { return b.bitOffset }

// Available returns the number of bits left to read.
func (b *BitBuffer) Available() int {
	return 8*(len(b.bytes)-b.byteOffset) - b.bitOffset
}

// Read consumes numBits bits (1 to 32) and returns them as the low bits
// of the result.
func (b *BitBuffer) Read(numBits int) (int, error) {
	if numBits < 1 || numBits > 32 || numBits > b.Available() {
		return 0, &ReadError{Requested: numBits, Available: b.Available()}
	}

	result := 0

	// Rest of the current byte.
	if b.bitOffset > 0 {
		left := 8 - b.bitOffset
		n := min(numBits, left)
		skip := left - n
		mask := (0xFF >> uint(8-n)) << uint(skip)
		result = (int(b.bytes[b.byteOffset]) & mask) >> uint(skip)
		numBits -= n
		b.bitOffset += n
		if b.bitOffset == 8 {
			b.bitOffset = 0
			b.byteOffset++
		}
	}

	for ; numBits >= 8; numBits -= 8 {
		result = result<<8 | int(b.bytes[b.byteOffset])
		b.byteOffset++
	}

	if numBits > 0 {
		skip := 8 - numBits
		result = result<<uint(numBits) | int(b.bytes[b.byteOffset])>>uint(skip)
		b.bitOffset += numBits
	}

	return result, nil
}

// Rewind moves the read position back to the start without touching the
// data.
func (b *BitBuffer) Rewind() *BitBuffer {
	b.byteOffset = 0
	b.bitOffset = 0
	return b
}

// Clear drops all data and resets the read position.
func (b *BitBuffer) Clear() *BitBuffer {
	b.bytes = nil
	b.length = 0
	return b.Rewind()
}
