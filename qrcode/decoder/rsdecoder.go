package decoder

import (
	"fmt"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/reedsolomon"
)

// ReedSolomonDecoder corrects the codewords of symbols with one version
// and error correction level.
type ReedSolomonDecoder struct {
	version *Version
	level   EccLevel
}

// NewReedSolomonDecoder returns a decoder for the block layout of version
// at level.
func NewReedSolomonDecoder(version *Version, level EccLevel) *ReedSolomonDecoder {
	return &ReedSolomonDecoder{version: version, level: level}
}

// Decode deinterleaves codewords, corrects each block and returns the
// data codewords of all blocks in block order, together with the number
// of corrected codewords.
func (d *ReedSolomonDecoder) Decode(codewords []byte) ([]byte, int, error) {
	blocks, err := DataBlocks(codewords, d.version, d.level)
	if err != nil {
		return nil, 0, err
	}

	result := make([]byte, 0, d.version.ECBlocksForLevel(d.level).TotalDataCodewords())
	corrected := 0
	for i, block := range blocks {
		n, err := correctBlock(block)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: block %d of %d: %w", qrdecode.ErrChecksum, i+1, len(blocks), err)
		}
		corrected += n
		result = append(result, block.Codewords[:block.NumDataCodewords]...)
	}
	return result, corrected, nil
}

// correctBlock repairs block.Codewords in place.
func correctBlock(block DataBlock) (int, error) {
	ints := make([]int, len(block.Codewords))
	for i, c := range block.Codewords {
		ints[i] = int(c)
	}
	n, err := reedsolomon.Decode(ints, len(ints)-block.NumDataCodewords)
	if err != nil {
		return 0, err
	}
	for i := 0; i < block.NumDataCodewords; i++ {
		block.Codewords[i] = byte(ints[i])
	}
	return n, nil
}
