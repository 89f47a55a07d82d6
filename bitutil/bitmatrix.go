// Package bitutil provides the bit containers shared by the binarizers,
// the detector and the QR decoder.
package bitutil

import (
	"fmt"
	"math/bits"
	"strings"
)

// BitMatrix is a packed two dimensional bit grid. x is the column and y
// the row, with the origin at the top left. A set bit is a dark pixel or
// module.
type BitMatrix struct {
	width, height int
	stride        int // words per row
	words         []uint64
}

// NewBitMatrix returns a square matrix.
func NewBitMatrix(dimension int) *BitMatrix {
	return NewBitMatrixWithSize(dimension, dimension)
}

// NewBitMatrixWithSize returns an all-clear matrix. It panics when either
// side is smaller than 1.
func NewBitMatrixWithSize(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitutil: dimensions must be greater than 0")
	}
	stride := (width + 63) / 64
	return &BitMatrix{
		width:  width,
		height: height,
		stride: stride,
		words:  make([]uint64, stride*height),
	}
}

// ParseBoolMatrix builds a matrix from rows of booleans, image[y][x].
func ParseBoolMatrix(image [][]bool) *BitMatrix {
	bm := NewBitMatrixWithSize(len(image[0]), len(image))
	for y, row := range image {
		for x, dark := range row {
			if dark {
				bm.Set(x, y)
			}
		}
	}
	return bm
}

// ParseStringMatrix parses the format written by StringWithChars. Blank
// lines are ignored.
func ParseStringMatrix(repr, setStr, unsetStr string) (*BitMatrix, error) {
	var rows [][]bool
	for _, line := range strings.Split(strings.ReplaceAll(repr, "\r", ""), "\n") {
		if line == "" {
			continue
		}
		var row []bool
		for len(line) > 0 {
			switch {
			case strings.HasPrefix(line, setStr):
				row = append(row, true)
				line = line[len(setStr):]
			case strings.HasPrefix(line, unsetStr):
				row = append(row, false)
				line = line[len(unsetStr):]
			default:
				return nil, fmt.Errorf("bitutil: illegal character in %q", line)
			}
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("bitutil: row %d has %d cells, want %d", len(rows), len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("bitutil: empty matrix")
	}
	return ParseBoolMatrix(rows), nil
}

func (bm *BitMatrix) index(x, y int) (int, uint64) {
	return y*bm.stride + x/64, 1 << uint(x%64)
}

// Get reports whether (x, y) is set.
func (bm *BitMatrix) Get(x, y int) bool {
	i, mask := bm.index(x, y)
	return bm.words[i]&mask != 0
}

// Set sets (x, y).
func (bm *BitMatrix) Set(x, y int) {
	i, mask := bm.index(x, y)
	bm.words[i] |= mask
}

// Unset clears (x, y).
func (bm *BitMatrix) Unset(x, y int) {
	i, mask := bm.index(x, y)
	bm.words[i] &^= mask
}

// Flip inverts (x, y).
func (bm *BitMatrix) Flip(x, y int) {
	i, mask := bm.index(x, y)
	bm.words[i] ^= mask
}

// SetRegion sets every bit of the given rectangle. It panics when the
// rectangle is empty or leaves the matrix.
func (bm *BitMatrix) SetRegion(left, top, width, height int) {
	if left < 0 || top < 0 || width < 1 || height < 1 ||
		left+width > bm.width || top+height > bm.height {
		panic("bitutil: region must fit inside the matrix")
	}
	for y := top; y < top+height; y++ {
		for x := left; x < left+width; x++ {
			bm.Set(x, y)
		}
	}
}

// TopLeftOnBit returns the first set bit in row-major order.
func (bm *BitMatrix) TopLeftOnBit() (x, y int, ok bool) {
	for i, w := range bm.words {
		if w != 0 {
			return (i%bm.stride)*64 + bits.TrailingZeros64(w), i / bm.stride, true
		}
	}
	return 0, 0, false
}

// BottomRightOnBit returns the last set bit in row-major order.
func (bm *BitMatrix) BottomRightOnBit() (x, y int, ok bool) {
	for i := len(bm.words) - 1; i >= 0; i-- {
		if w := bm.words[i]; w != 0 {
			return (i%bm.stride)*64 + 63 - bits.LeadingZeros64(w), i / bm.stride, true
		}
	}
	return 0, 0, false
}

// Width returns the number of columns.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the number of rows.
func (bm *BitMatrix) Height() int { return bm.height }

// Clone returns a deep copy.
func (bm *BitMatrix) Clone() *BitMatrix {
	c := *bm
	c.words = append([]uint64(nil), bm.words...)
	return &c
}

// Equal reports whether both matrices have the same size and bits.
func (bm *BitMatrix) Equal(other *BitMatrix) bool {
	if bm.width != other.width || bm.height != other.height {
		return false
	}
	for i, w := range bm.words {
		if other.words[i] != w {
			return false
		}
	}
	return true
}

func (bm *BitMatrix) String() string {
	return bm.StringWithChars("X ", "  ")
}

// StringWithChars renders one line per row.
func (bm *BitMatrix) StringWithChars(setStr, unsetStr string) string {
	var sb strings.Builder
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setStr)
			} else {
				sb.WriteString(unsetStr)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
