package binarizer

import (
	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/bitutil"
)

const (
	blockSizePower   = 3
	blockSize        = 1 << blockSizePower
	minimumDimension = blockSize * 5
	minDynamicRange  = 24
)

// Hybrid thresholds each 8x8 block against the smoothed black points of
// its 5x5 block neighbourhood. Images smaller than 40 pixels on either
// side fall back to GlobalHistogram.
type Hybrid struct {
	GlobalHistogram
}

// NewHybrid returns a Hybrid binarizer over source.
func NewHybrid(source qrdecode.LuminanceSource) *Hybrid {
	return &Hybrid{GlobalHistogram: GlobalHistogram{source: source}}
}

// BlackMatrix implements qrdecode.Binarizer.
func (h *Hybrid) BlackMatrix() (*bitutil.BitMatrix, error) {
	width, height := h.source.Width(), h.source.Height()
	if width < minimumDimension || height < minimumDimension {
		return h.GlobalHistogram.BlackMatrix()
	}

	g := blockGrid{
		lum:    h.source.Matrix(),
		width:  width,
		height: height,
		cols:   (width + blockSize - 1) >> blockSizePower,
		rows:   (height + blockSize - 1) >> blockSizePower,
	}
	g.calculateBlackPoints()

	matrix := bitutil.NewBitMatrixWithSize(width, height)
	g.threshold(matrix)
	return matrix, nil
}

// blockGrid holds per-block black points. The last row and column of
// blocks are shifted inwards so every block is fully inside the image.
type blockGrid struct {
	lum           []byte
	width, height int
	cols, rows    int
	blackPoints   []int
}

func (g *blockGrid) origin(bx, by int) (x, y int) {
	return min(bx<<blockSizePower, g.width-blockSize), min(by<<blockSizePower, g.height-blockSize)
}

func (g *blockGrid) at(bx, by int) int {
	return g.blackPoints[by*g.cols+bx]
}

func (g *blockGrid) calculateBlackPoints() {
	g.blackPoints = make([]int, g.cols*g.rows)
	for by := 0; by < g.rows; by++ {
		for bx := 0; bx < g.cols; bx++ {
			x0, y0 := g.origin(bx, by)
			sum, lo, hi := 0, 0xFF, 0
			for yy := 0; yy < blockSize; yy++ {
				row := g.lum[(y0+yy)*g.width+x0 : (y0+yy)*g.width+x0+blockSize]
				for _, p := range row {
					pixel := int(p)
					sum += pixel
					lo = min(lo, pixel)
					hi = max(hi, pixel)
				}
				// Contrast is established; only the sum matters now.
				if hi-lo > minDynamicRange {
					for yy++; yy < blockSize; yy++ {
						for _, p := range g.lum[(y0+yy)*g.width+x0 : (y0+yy)*g.width+x0+blockSize] {
							sum += int(p)
						}
					}
				}
			}

			average := sum >> (2 * blockSizePower)
			if hi-lo <= minDynamicRange {
				// Low contrast block: assume it is light unless the
				// neighbours already saw something darker.
				average = lo / 2
				if bx > 0 && by > 0 {
					neighbours := (g.at(bx, by-1) + 2*g.at(bx-1, by) + g.at(bx-1, by-1)) / 4
					if lo < neighbours {
						average = neighbours
					}
				}
			}
			g.blackPoints[by*g.cols+bx] = average
		}
	}
}

func (g *blockGrid) threshold(matrix *bitutil.BitMatrix) {
	for by := 0; by < g.rows; by++ {
		top := clampCenter(by, g.rows-3)
		for bx := 0; bx < g.cols; bx++ {
			left := clampCenter(bx, g.cols-3)
			sum := 0
			for dy := -2; dy <= 2; dy++ {
				for dx := -2; dx <= 2; dx++ {
					sum += g.at(left+dx, top+dy)
				}
			}
			limit := sum / 25

			x0, y0 := g.origin(bx, by)
			for yy := y0; yy < y0+blockSize; yy++ {
				for xx := x0; xx < x0+blockSize; xx++ {
					if int(g.lum[yy*g.width+xx]) <= limit {
						matrix.Set(xx, yy)
					}
				}
			}
		}
	}
}

// clampCenter keeps a 5x5 window centred on value inside [0, upper+2].
func clampCenter(value, upper int) int {
	if value < 2 {
		return 2
	}
	return min(value, upper)
}
