package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/reedsolomon"
)

// encodeBlocks splits data over the blocks of version at level, appends
// error correction and interleaves the result.
func encodeBlocks(t *testing.T, data []byte, version *Version, level EccLevel) []byte {
	t.Helper()
	ecBlocks := version.ECBlocksForLevel(level)
	require.Equal(t, ecBlocks.TotalDataCodewords(), len(data))

	enc := reedsolomon.NewEncoder()
	var blocks []DataBlock
	for _, group := range ecBlocks.Blocks {
		for i := 0; i < group.Count; i++ {
			ints := make([]int, group.DataCodewords+ecBlocks.ECCodewordsPerBlock)
			for j := 0; j < group.DataCodewords; j++ {
				ints[j] = int(data[j])
			}
			data = data[group.DataCodewords:]
			enc.Encode(ints, ecBlocks.ECCodewordsPerBlock)

			block := DataBlock{NumDataCodewords: group.DataCodewords, Codewords: make([]byte, len(ints))}
			for j, v := range ints {
				block.Codewords[j] = byte(v)
			}
			blocks = append(blocks, block)
		}
	}
	return InterleaveBlocks(blocks)
}

func TestDataBlocksRoundTrip(t *testing.T) {
	for _, tt := range []struct {
		version int
		level   EccLevel
		blocks  int
	}{
		{1, EccLevelQ, 1},
		{5, EccLevelQ, 4},
		{7, EccLevelH, 5},
		{40, EccLevelL, 25},
	} {
		v, _ := VersionForNumber(tt.version)
		raw := sequence(v.TotalCodewords, 3)

		blocks, err := DataBlocks(raw, v, tt.level)
		require.NoError(t, err)
		assert.Len(t, blocks, tt.blocks)
		assert.Equal(t, raw, InterleaveBlocks(blocks))
	}
}

func TestDataBlocksLayout(t *testing.T) {
	// version 5-Q: two blocks of 15 data codewords, two of 16, 18 ec each
	v, _ := VersionForNumber(5)
	raw := sequence(v.TotalCodewords, 1)
	blocks, err := DataBlocks(raw, v, EccLevelQ)
	require.NoError(t, err)

	require.Len(t, blocks, 4)
	assert.Equal(t, 15, blocks[0].NumDataCodewords)
	assert.Equal(t, 16, blocks[3].NumDataCodewords)
	assert.Len(t, blocks[0].Codewords, 33)
	assert.Len(t, blocks[3].Codewords, 34)
	// round-robin: the first four raw codewords open the four blocks
	for i := 0; i < 4; i++ {
		assert.Equal(t, raw[i], blocks[i].Codewords[0])
	}
	// the extra data codewords of the longer blocks follow the 15 rounds
	assert.Equal(t, raw[60], blocks[2].Codewords[15])
	assert.Equal(t, raw[61], blocks[3].Codewords[15])
	assert.Equal(t, raw[62], blocks[0].Codewords[15])
	assert.Equal(t, raw[63], blocks[1].Codewords[15])
	assert.Equal(t, raw[65], blocks[3].Codewords[16])
}

func TestDataBlocksCountMismatch(t *testing.T) {
	v, _ := VersionForNumber(2)
	_, err := DataBlocks(make([]byte, 43), v, EccLevelL)
	assert.ErrorIs(t, err, ErrCodewordCount)
}

func TestReedSolomonDecoder(t *testing.T) {
	v, _ := VersionForNumber(5)
	data := sequence(v.ECBlocksForLevel(EccLevelQ).TotalDataCodewords(), 11)
	raw := encodeBlocks(t, data, v, EccLevelQ)
	rs := NewReedSolomonDecoder(v, EccLevelQ)

	got, corrected, err := rs.Decode(append([]byte(nil), raw...))
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Zero(t, corrected)

	// nine errors per block is the limit for 18 ec codewords
	damaged := append([]byte(nil), raw...)
	for i := 0; i < 36; i++ {
		damaged[i*3] ^= 0x5A
	}
	got, corrected, err = rs.Decode(damaged)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, 36, corrected)

	for i := range damaged {
		damaged[i] = raw[i] ^ byte(i+1)
	}
	_, _, err = rs.Decode(damaged)
	assert.ErrorIs(t, err, qrdecode.ErrChecksum)
	assert.ErrorIs(t, err, reedsolomon.ErrDecode)
}
