package detector

import (
	"github.com/ericlevine/qrdecode/bitutil"
	"github.com/ericlevine/qrdecode/qrcode/decoder"
	"github.com/ericlevine/qrdecode/transform"
)

// Corners samples a symbol whose outer corners in the image were found
// by someone else, for example an external finder pattern locator. The
// symbol may be rotated or seen in perspective.
type Corners struct {
	// Quad holds the outer corners of the symbol, without quiet zone,
	// clockwise from the corner with the top-left finder pattern.
	Quad      transform.Quad
	Dimension int
}

// NewCorners returns a detector for a dimension x dimension symbol at q.
func NewCorners(q transform.Quad, dimension int) *Corners {
	return &Corners{Quad: q, Dimension: dimension}
}

// Detect samples the center of every module.
func (c *Corners) Detect(image *bitutil.BitMatrix) (*decoder.SymbolMatrix, error) {
	// reject bad dimensions before sampling
	if _, err := decoder.NewSymbolMatrix(c.Dimension); err != nil {
		return nil, err
	}
	d := float64(c.Dimension)
	modules := transform.Quad{{X: 0, Y: 0}, {X: d, Y: 0}, {X: d, Y: d}, {X: 0, Y: d}}
	bits, err := transform.SampleGrid(image, c.Dimension, transform.QuadToQuad(modules, c.Quad))
	if err != nil {
		return nil, err
	}
	return decoder.SymbolMatrixFromBitMatrix(bits)
}
