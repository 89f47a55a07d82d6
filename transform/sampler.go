package transform

import (
	"fmt"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/bitutil"
)

// ErrOutOfBounds is returned when a module center maps more than one
// pixel outside the image.
var ErrOutOfBounds = fmt.Errorf("%w: sample point outside image", qrdecode.ErrNotFound)

// SampleGrid reads a dimension x dimension grid from image, taking the
// pixel under the center of each module. t maps module coordinates,
// with the symbol spanning 0 to dimension on both axes, to pixels.
func SampleGrid(image *bitutil.BitMatrix, dimension int, t *Perspective) (*bitutil.BitMatrix, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", qrdecode.ErrNotFound, dimension)
	}
	bits := bitutil.NewBitMatrix(dimension)
	for y := 0; y < dimension; y++ {
		for x := 0; x < dimension; x++ {
			p := t.Apply(Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			px, py, ok := clamp(int(p.X), int(p.Y), image.Width(), image.Height())
			if !ok {
				return nil, fmt.Errorf("%w: module (%d,%d) at (%.1f,%.1f)", ErrOutOfBounds, x, y, p.X, p.Y)
			}
			if image.Get(px, py) {
				bits.Set(x, y)
			}
		}
	}
	return bits, nil
}

// clamp pulls coordinates that are at most one pixel off the image back
// onto its edge.
func clamp(x, y, width, height int) (int, int, bool) {
	if x < -1 || x > width || y < -1 || y > height {
		return 0, 0, false
	}
	return min(max(x, 0), width-1), min(max(y, 0), height-1), true
}
