// Package detector finds QR symbols in binarized images.
package detector

import (
	"fmt"
	"math"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/bitutil"
	"github.com/ericlevine/qrdecode/qrcode/decoder"
)

// Pure detects "pure" symbols: an unrotated, unskewed symbol on a light
// background, such as a rendered image or a tight scan. It samples the
// center of every module.
type Pure struct{}

// NewPure returns a pure symbol detector.
func NewPure() *Pure { return &Pure{} }

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{qrdecode.ErrNotFound}, args...)...)
}

// Detect returns the symbol in image.
func (p *Pure) Detect(image *bitutil.BitMatrix) (*decoder.SymbolMatrix, error) {
	left, top, ok := image.TopLeftOnBit()
	if !ok {
		return nil, notFound("image has no dark pixels")
	}
	right, bottom, _ := image.BottomRightOnBit()

	moduleSize, err := moduleSize(image, left, top)
	if err != nil {
		return nil, err
	}
	if left >= right || top >= bottom {
		return nil, notFound("degenerate symbol bounds")
	}
	if bottom-top != right-left {
		// assume the symbol is square
		right = left + (bottom - top)
		if right >= image.Width() {
			return nil, notFound("symbol is not square")
		}
	}

	dimension := int(math.Round(float64(right-left+1) / moduleSize))
	if dimension <= 0 || dimension != int(math.Round(float64(bottom-top+1)/moduleSize)) {
		return nil, notFound("module count %d", dimension)
	}

	// Sample module centers, pulling back samples that would land past
	// the last dark pixel.
	nudge := int(moduleSize / 2)
	top += nudge
	left += nudge
	if over := left + int(float64(dimension-1)*moduleSize) - right; over > 0 {
		if over > nudge {
			return nil, notFound("sampling runs off the right edge")
		}
		left -= over
	}
	if over := top + int(float64(dimension-1)*moduleSize) - bottom; over > 0 {
		if over > nudge {
			return nil, notFound("sampling runs off the bottom edge")
		}
		top -= over
	}

	m, err := decoder.NewSymbolMatrix(dimension)
	if err != nil {
		return nil, err
	}
	for y := 0; y < dimension; y++ {
		py := top + int(float64(y)*moduleSize)
		for x := 0; x < dimension; x++ {
			m.Set(x, y, image.Get(left+int(float64(x)*moduleSize), py))
		}
	}
	return m, nil
}

// moduleSize walks the diagonal of the top-left finder pattern from its
// corner. The fifth color change lies just past the pattern, which is
// seven modules wide.
func moduleSize(image *bitutil.BitMatrix, left, top int) (float64, error) {
	x, y := left, top
	dark := true
	transitions := 0
	for ; x < image.Width() && y < image.Height(); x, y = x+1, y+1 {
		if dark != image.Get(x, y) {
			if transitions++; transitions == 5 {
				break
			}
			dark = !dark
		}
	}
	if x == image.Width() || y == image.Height() {
		return 0, notFound("no finder pattern at the top-left corner")
	}
	return float64(x-left) / 7, nil
}
