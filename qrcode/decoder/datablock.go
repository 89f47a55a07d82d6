package decoder

import "fmt"

// DataBlock is one Reed-Solomon block: its data codewords followed by
// its error correction codewords.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
}

// DataBlocks splits the interleaved codewords of a symbol into blocks.
// Data codewords are dealt round-robin over all blocks, then the extra
// data codeword of each longer block, then the error correction
// codewords, again round-robin.
func DataBlocks(rawCodewords []byte, version *Version, level EccLevel) ([]DataBlock, error) {
	if len(rawCodewords) != version.TotalCodewords {
		return nil, fmt.Errorf("%w: got %d, version %d holds %d", ErrCodewordCount, len(rawCodewords), version.Number, version.TotalCodewords)
	}
	ecBlocks := version.ECBlocksForLevel(level)
	numEC := ecBlocks.ECCodewordsPerBlock

	blocks := make([]DataBlock, 0, ecBlocks.NumBlocks())
	for _, group := range ecBlocks.Blocks {
		for i := 0; i < group.Count; i++ {
			blocks = append(blocks, DataBlock{
				NumDataCodewords: group.DataCodewords,
				Codewords:        make([]byte, group.DataCodewords+numEC),
			})
		}
	}

	// Blocks are sorted by size, so the longer ones form a suffix.
	shorterData := blocks[0].NumDataCodewords
	longerStart := len(blocks)
	for longerStart > 0 && blocks[longerStart-1].NumDataCodewords > shorterData {
		longerStart--
	}

	offset := 0
	for i := 0; i < shorterData; i++ {
		for j := range blocks {
			blocks[j].Codewords[i] = rawCodewords[offset]
			offset++
		}
	}
	for j := longerStart; j < len(blocks); j++ {
		blocks[j].Codewords[shorterData] = rawCodewords[offset]
		offset++
	}
	for i := 0; i < numEC; i++ {
		for j := range blocks {
			blocks[j].Codewords[blocks[j].NumDataCodewords+i] = rawCodewords[offset]
			offset++
		}
	}
	return blocks, nil
}

// InterleaveBlocks is the inverse of DataBlocks.
func InterleaveBlocks(blocks []DataBlock) []byte {
	maxData, maxLen := 0, 0
	for _, b := range blocks {
		maxData = max(maxData, b.NumDataCodewords)
		maxLen = max(maxLen, len(b.Codewords))
	}
	var out []byte
	for i := 0; i < maxData; i++ {
		for _, b := range blocks {
			if i < b.NumDataCodewords {
				out = append(out, b.Codewords[i])
			}
		}
	}
	for i := 0; i < maxLen-maxData; i++ {
		for _, b := range blocks {
			out = append(out, b.Codewords[b.NumDataCodewords+i])
		}
	}
	return out
}
