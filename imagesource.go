package qrdecode

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ericlevine/qrdecode/bitutil"
)

// ImageLuminanceSource is an in-memory LuminanceSource.
type ImageLuminanceSource struct {
	luminances []byte
	width      int
	height     int
}

// NewImageLuminanceSource converts img to luminance with
// (306*R + 601*G + 117*B + 0x200) >> 10 on 8-bit components. Fully
// transparent pixels become white.
func NewImageLuminanceSource(img image.Image) *ImageLuminanceSource {
	if gray, ok := img.(*image.Gray); ok {
		return NewGrayImageLuminanceSource(gray)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	luminances := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a == 0 {
				luminances[y*w+x] = 0xFF
				continue
			}
			r8, g8, b8 := r>>8, g>>8, b>>8
			luminances[y*w+x] = byte((306*r8 + 601*g8 + 117*b8 + 0x200) >> 10)
		}
	}
	return &ImageLuminanceSource{luminances: luminances, width: w, height: h}
}

// NewGrayImageLuminanceSource copies the pixels of img unchanged.
func NewGrayImageLuminanceSource(img *image.Gray) *ImageLuminanceSource {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	luminances := make([]byte, w*h)
	for y := 0; y < h; y++ {
		off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(luminances[y*w:(y+1)*w], img.Pix[off:off+w])
	}
	return &ImageLuminanceSource{luminances: luminances, width: w, height: h}
}

// NewRawLuminanceSource wraps row-major luminance samples. data is
// copied.
func NewRawLuminanceSource(width, height int, data []byte) (*ImageLuminanceSource, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid luminance dimensions %dx%d", width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("luminance data has %d bytes, want %d", len(data), width*height)
	}
	return &ImageLuminanceSource{
		luminances: append([]byte(nil), data...),
		width:      width,
		height:     height,
	}, nil
}

// Row implements LuminanceSource.
func (s *ImageLuminanceSource) Row(y int, row []byte) ([]byte, error) {
	if y < 0 || y >= s.height {
		return nil, &RowError{Row: y, Height: s.height}
	}
	if len(row) < s.width {
		row = make([]byte, s.width)
	}
	copy(row, s.luminances[y*s.width:(y+1)*s.width])
	return row, nil
}

// Matrix implements LuminanceSource. The returned slice is a copy.
func (s *ImageLuminanceSource) Matrix() []byte {
	return append([]byte(nil), s.luminances...)
}

// Width implements LuminanceSource.
func (s *ImageLuminanceSource) Width() int { return s.width }

// Height implements LuminanceSource.
func (s *ImageLuminanceSource) Height() int { return s.height }

// BitMatrixToImage renders matrix with scale pixels per cell and a
// border of quiet cells on every side. Set bits are black.
func BitMatrixToImage(matrix *bitutil.BitMatrix, scale, border int) *image.Gray {
	if scale < 1 {
		scale = 1
	}
	w := (matrix.Width() + 2*border) * scale
	h := (matrix.Height() + 2*border) * scale
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			mx, my := x/scale-border, y/scale-border
			dark := mx >= 0 && my >= 0 && mx < matrix.Width() && my < matrix.Height() && matrix.Get(mx, my)
			if dark {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
