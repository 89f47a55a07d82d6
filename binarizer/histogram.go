// Package binarizer converts luminance data to black and white matrices.
package binarizer

import (
	"fmt"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/bitutil"
)

const (
	luminanceBits    = 5
	luminanceShift   = 8 - luminanceBits
	luminanceBuckets = 1 << luminanceBits
)

// ErrNoDarkPoint is returned when the luminance histogram has no two
// distinct peaks to threshold between.
var ErrNoDarkPoint = fmt.Errorf("%w: no meaningful dark point found", qrdecode.ErrNotFound)

// GlobalHistogram thresholds the whole image at a single black point
// estimated from a histogram of four sample rows. It suits small images
// where local thresholding has too few blocks to work with.
type GlobalHistogram struct {
	source qrdecode.LuminanceSource
}

// NewGlobalHistogram returns a GlobalHistogram over source.
func NewGlobalHistogram(source qrdecode.LuminanceSource) *GlobalHistogram {
	return &GlobalHistogram{source: source}
}

// LuminanceSource returns the underlying source.
func (g *GlobalHistogram) LuminanceSource() qrdecode.LuminanceSource { return g.source }

// Width returns the image width.
func (g *GlobalHistogram) Width() int { return g.source.Width() }

// Height returns the image height.
func (g *GlobalHistogram) Height() int { return g.source.Height() }

// BlackMatrix implements qrdecode.Binarizer. Pixels strictly below the
// black point are dark.
func (g *GlobalHistogram) BlackMatrix() (*bitutil.BitMatrix, error) {
	width, height := g.source.Width(), g.source.Height()

	var buckets [luminanceBuckets]int
	row := make([]byte, width)
	for i := 1; i < 5; i++ {
		var err error
		row, err = g.source.Row(height*i/5, row)
		if err != nil {
			return nil, err
		}
		for x := width / 5; x < width*4/5; x++ {
			buckets[row[x]>>luminanceShift]++
		}
	}
	blackPoint, err := estimateBlackPoint(buckets[:])
	if err != nil {
		return nil, err
	}

	matrix := bitutil.NewBitMatrixWithSize(width, height)
	luminances := g.source.Matrix()
	for y := 0; y < height; y++ {
		for x, pixel := range luminances[y*width : (y+1)*width] {
			if int(pixel) < blackPoint {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}

// estimateBlackPoint finds the valley between the two tallest, well
// separated peaks of the histogram.
func estimateBlackPoint(buckets []int) (int, error) {
	numBuckets := len(buckets)

	firstPeak, maxCount := 0, 0
	for x, count := range buckets {
		if count > maxCount {
			firstPeak, maxCount = x, count
		}
	}

	// Weight by squared distance so a neighbour of the first peak does not
	// win just for being tall. A single occupied bucket has no second peak.
	secondPeak, secondPeakScore := firstPeak, 0
	for x, count := range buckets {
		dist := x - firstPeak
		if score := count * dist * dist; score > secondPeakScore {
			secondPeak, secondPeakScore = x, score
		}
	}

	if firstPeak > secondPeak {
		firstPeak, secondPeak = secondPeak, firstPeak
	}
	if secondPeak-firstPeak <= numBuckets/16 {
		return 0, ErrNoDarkPoint
	}

	bestValley, bestValleyScore := secondPeak-1, -1
	for x := secondPeak - 1; x > firstPeak; x-- {
		fromFirst := x - firstPeak
		score := fromFirst * fromFirst * (secondPeak - x) * (maxCount - buckets[x])
		if score > bestValleyScore {
			bestValley, bestValleyScore = x, score
		}
	}
	return bestValley << luminanceShift, nil
}
