// Package qrdecode decodes QR code symbols from greyscale luminance data.
//
// The pipeline is LuminanceSource → Binarizer → Detector → Decoder. The
// binarizers live in package binarizer, the QR specific stages in
// qrcode/detector and qrcode/decoder, and qrcode.Reader ties them
// together.
package qrdecode

import (
	"fmt"

	"github.com/ericlevine/qrdecode/bitutil"
)

// LuminanceSource provides greyscale luminance values for an image, one
// byte per pixel, 0 being black.
type LuminanceSource interface {
	// Row returns row y, reusing row when it is large enough. It fails
	// when y is outside [0, Height()).
	Row(y int, row []byte) ([]byte, error)

	// Matrix returns all luminance values in row-major order.
	Matrix() []byte

	Width() int
	Height() int
}

// Binarizer converts luminance data to a black and white matrix.
type Binarizer interface {
	BlackMatrix() (*bitutil.BitMatrix, error)
	LuminanceSource() LuminanceSource
	Width() int
	Height() int
}

// RowError is returned by LuminanceSource.Row for rows outside the image.
type RowError struct {
	Row, Height int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("requested row %d is outside the image (height %d)", e.Row, e.Height)
}

// BinaryBitmap caches the black matrix produced by a Binarizer.
type BinaryBitmap struct {
	binarizer Binarizer
	matrix    *bitutil.BitMatrix
}

// NewBinaryBitmap wraps binarizer.
func NewBinaryBitmap(binarizer Binarizer) *BinaryBitmap {
	return &BinaryBitmap{binarizer: binarizer}
}

// Width returns the width of the bitmap.
func (b *BinaryBitmap) Width() int { return b.binarizer.Width() }

// Height returns the height of the bitmap.
func (b *BinaryBitmap) Height() int { return b.binarizer.Height() }

// BlackMatrix binarizes the image on first use and returns the cached
// result afterwards. Callers must not modify the returned matrix.
func (b *BinaryBitmap) BlackMatrix() (*bitutil.BitMatrix, error) {
	if b.matrix != nil {
		return b.matrix, nil
	}
	m, err := b.binarizer.BlackMatrix()
	if err != nil {
		return nil, err
	}
	b.matrix = m
	return m, nil
}
