package decoder

import (
	"fmt"
	"math/bits"

	"github.com/ericlevine/qrdecode/bitutil"
)

// ECB is a group of blocks that share a data codeword count.
type ECB struct {
	Count         int
	DataCodewords int
}

// ECBlocks describes the Reed-Solomon block layout of one version at one
// error correction level. Later groups carry one more data codeword than
// earlier ones.
type ECBlocks struct {
	ECCodewordsPerBlock int
	Blocks              []ECB
}

// NumBlocks returns the total number of blocks.
func (e *ECBlocks) NumBlocks() int {
	n := 0
	for _, b := range e.Blocks {
		n += b.Count
	}
	return n
}

// TotalECCodewords returns the number of error correction codewords over
// all blocks.
func (e *ECBlocks) TotalECCodewords() int {
	return e.ECCodewordsPerBlock * e.NumBlocks()
}

// TotalDataCodewords returns the number of data codewords over all blocks.
func (e *ECBlocks) TotalDataCodewords() int {
	n := 0
	for _, b := range e.Blocks {
		n += b.Count * b.DataCodewords
	}
	return n
}

// Version is a QR code version, 1 to 40.
type Version struct {
	Number                  int
	AlignmentPatternCenters []int
	TotalCodewords          int
	ecBlocks                [4]ECBlocks
}

// Dimension returns the number of modules per side, 4*version+17.
func (v *Version) Dimension() int {
	return 4*v.Number + 17
}

// ECBlocksForLevel returns the block layout for level.
func (v *Version) ECBlocksForLevel(level EccLevel) *ECBlocks {
	return &v.ecBlocks[level]
}

func (v *Version) String() string {
	return fmt.Sprint(v.Number)
}

// VersionForNumber returns version number, 1 to 40.
func VersionForNumber(number int) (*Version, error) {
	if number < 1 || number > 40 {
		return nil, fmt.Errorf("%w: %d", errInvalidVersion, number)
	}
	return &versions[number-1], nil
}

// ProvisionalVersionForDimension returns the version implied by a symbol
// side length.
func ProvisionalVersionForDimension(dimension int) (*Version, error) {
	if dimension%4 != 1 {
		return nil, fmt.Errorf("%w: %d", ErrDimension, dimension)
	}
	return VersionForNumber((dimension - 17) / 4)
}

// versionInfoPatterns holds the 18-bit version information of versions
// 7 to 40.
var versionInfoPatterns = [34]int{
	0x07C94, 0x085BC, 0x09A99, 0x0A4D3, 0x0BBF6,
	0x0C762, 0x0D847, 0x0E60D, 0x0F928, 0x10B78,
	0x1145D, 0x12A17, 0x13532, 0x149A6, 0x15683,
	0x168C9, 0x177EC, 0x18EC4, 0x191E1, 0x1AFAB,
	0x1B08E, 0x1CC1A, 0x1D33F, 0x1ED75, 0x1F250,
	0x209D5, 0x216F0, 0x228BA, 0x2379F, 0x24B0B,
	0x2542E, 0x26A64, 0x27541, 0x28C69,
}

// VersionInfoPattern returns the 18-bit version information written for
// versions 7 and above, or 0 for smaller versions.
func (v *Version) VersionInfoPattern() int {
	if v.Number < 7 {
		return 0
	}
	return versionInfoPatterns[v.Number-7]
}

// decodeVersionInformation returns the version whose pattern is within
// Hamming distance 3 of versionBits.
func decodeVersionInformation(versionBits int) (*Version, bool) {
	bestDistance, best := 32, 0
	for i, pattern := range versionInfoPatterns {
		if pattern == versionBits {
			return &versions[i+6], true
		}
		if d := bits.OnesCount(uint(versionBits ^ pattern)); d < bestDistance {
			bestDistance, best = d, i+6
		}
	}
	if bestDistance <= 3 {
		return &versions[best], true
	}
	return nil, false
}

// BuildFunctionPattern returns a matrix with every module that is not
// data set: finder patterns with separators and format information,
// alignment patterns, timing patterns, the dark module and, from version
// 7, version information.
func (v *Version) BuildFunctionPattern() *bitutil.BitMatrix {
	dim := v.Dimension()
	m := bitutil.NewBitMatrix(dim)

	// Finder, separator and format area of each corner.
	m.SetRegion(0, 0, 9, 9)
	m.SetRegion(dim-8, 0, 8, 9)
	m.SetRegion(0, dim-8, 9, 8)

	// Alignment patterns sit on every pair of centers except the three
	// that would overlap a finder.
	centers := v.AlignmentPatternCenters
	last := len(centers) - 1
	for i, cx := range centers {
		for j, cy := range centers {
			if (i == 0 && (j == 0 || j == last)) || (i == last && j == 0) {
				continue
			}
			m.SetRegion(cx-2, cy-2, 5, 5)
		}
	}

	// Timing patterns.
	m.SetRegion(6, 9, 1, dim-17)
	m.SetRegion(9, 6, dim-17, 1)

	if v.Number > 6 {
		m.SetRegion(dim-11, 0, 3, 6)
		m.SetRegion(0, dim-11, 6, 3)
	}
	return m
}

var versions [40]Version

func init() {
	for i := range versions {
		v := &versions[i]
		v.Number = i + 1
		v.AlignmentPatternCenters = alignmentPatternCenters[i]
		for level, row := range rsBlocks[i] {
			e := ECBlocks{ECCodewordsPerBlock: row[0], Blocks: []ECB{{Count: row[1], DataCodewords: row[2]}}}
			if row[3] > 0 {
				e.Blocks = append(e.Blocks, ECB{Count: row[3], DataCodewords: row[4]})
			}
			v.ecBlocks[level] = e
		}
		v.TotalCodewords = v.ecBlocks[EccLevelL].TotalDataCodewords() + v.ecBlocks[EccLevelL].TotalECCodewords()
	}
}

var alignmentPatternCenters = [40][]int{
	nil,                            // 1
	{6, 18},                        // 2
	{6, 22},                        // 3
	{6, 26},                        // 4
	{6, 30},                        // 5
	{6, 34},                        // 6
	{6, 22, 38},                    // 7
	{6, 24, 42},                    // 8
	{6, 26, 46},                    // 9
	{6, 28, 50},                    // 10
	{6, 30, 54},                    // 11
	{6, 32, 58},                    // 12
	{6, 34, 62},                    // 13
	{6, 26, 46, 66},                // 14
	{6, 26, 48, 70},                // 15
	{6, 26, 50, 74},                // 16
	{6, 30, 54, 78},                // 17
	{6, 30, 56, 82},                // 18
	{6, 30, 58, 86},                // 19
	{6, 34, 62, 90},                // 20
	{6, 28, 50, 72, 94},            // 21
	{6, 26, 50, 74, 98},            // 22
	{6, 30, 54, 78, 102},           // 23
	{6, 28, 54, 80, 106},           // 24
	{6, 32, 58, 84, 110},           // 25
	{6, 30, 58, 86, 114},           // 26
	{6, 34, 62, 90, 118},           // 27
	{6, 26, 50, 74, 98, 122},       // 28
	{6, 30, 54, 78, 102, 126},      // 29
	{6, 26, 52, 78, 104, 130},      // 30
	{6, 30, 56, 82, 108, 134},      // 31
	{6, 34, 60, 86, 112, 138},      // 32
	{6, 30, 58, 86, 114, 142},      // 33
	{6, 34, 62, 90, 118, 146},      // 34
	{6, 30, 54, 78, 102, 126, 150}, // 35
	{6, 24, 50, 76, 102, 128, 154}, // 36
	{6, 28, 54, 80, 106, 132, 158}, // 37
	{6, 32, 58, 84, 110, 136, 162}, // 38
	{6, 26, 54, 82, 110, 138, 166}, // 39
	{6, 30, 58, 86, 114, 142, 170}, // 40
}

// rsBlocks[version-1][ecc ordinal] is {ec codewords per block, count1,
// data1, count2, data2}.
var rsBlocks = [40][4][5]int{
	{{7, 1, 19, 0, 0}, {10, 1, 16, 0, 0}, {13, 1, 13, 0, 0}, {17, 1, 9, 0, 0}},                // 1
	{{10, 1, 34, 0, 0}, {16, 1, 28, 0, 0}, {22, 1, 22, 0, 0}, {28, 1, 16, 0, 0}},              // 2
	{{15, 1, 55, 0, 0}, {26, 1, 44, 0, 0}, {18, 2, 17, 0, 0}, {22, 2, 13, 0, 0}},              // 3
	{{20, 1, 80, 0, 0}, {18, 2, 32, 0, 0}, {26, 2, 24, 0, 0}, {16, 4, 9, 0, 0}},               // 4
	{{26, 1, 108, 0, 0}, {24, 2, 43, 0, 0}, {18, 2, 15, 2, 16}, {22, 2, 11, 2, 12}},           // 5
	{{18, 2, 68, 0, 0}, {16, 4, 27, 0, 0}, {24, 4, 19, 0, 0}, {28, 4, 15, 0, 0}},              // 6
	{{20, 2, 78, 0, 0}, {18, 4, 31, 0, 0}, {18, 2, 14, 4, 15}, {26, 4, 13, 1, 14}},            // 7
	{{24, 2, 97, 0, 0}, {22, 2, 38, 2, 39}, {22, 4, 18, 2, 19}, {26, 4, 14, 2, 15}},           // 8
	{{30, 2, 116, 0, 0}, {22, 3, 36, 2, 37}, {20, 4, 16, 4, 17}, {24, 4, 12, 4, 13}},          // 9
	{{18, 2, 68, 2, 69}, {26, 4, 43, 1, 44}, {24, 6, 19, 2, 20}, {28, 6, 15, 2, 16}},          // 10
	{{20, 4, 81, 0, 0}, {30, 1, 50, 4, 51}, {28, 4, 22, 4, 23}, {24, 3, 12, 8, 13}},           // 11
	{{24, 2, 92, 2, 93}, {22, 6, 36, 2, 37}, {26, 4, 20, 6, 21}, {28, 7, 14, 4, 15}},          // 12
	{{26, 4, 107, 0, 0}, {22, 8, 37, 1, 38}, {24, 8, 20, 4, 21}, {22, 12, 11, 4, 12}},         // 13
	{{30, 3, 115, 1, 116}, {24, 4, 40, 5, 41}, {20, 11, 16, 5, 17}, {24, 11, 12, 5, 13}},      // 14
	{{22, 5, 87, 1, 88}, {24, 5, 41, 5, 42}, {30, 5, 24, 7, 25}, {24, 11, 12, 7, 13}},         // 15
	{{24, 5, 98, 1, 99}, {28, 7, 45, 3, 46}, {24, 15, 19, 2, 20}, {30, 3, 15, 13, 16}},        // 16
	{{28, 1, 107, 5, 108}, {28, 10, 46, 1, 47}, {28, 1, 22, 15, 23}, {28, 2, 14, 17, 15}},     // 17
	{{30, 5, 120, 1, 121}, {26, 9, 43, 4, 44}, {28, 17, 22, 1, 23}, {28, 2, 14, 19, 15}},      // 18
	{{28, 3, 113, 4, 114}, {26, 3, 44, 11, 45}, {26, 17, 21, 4, 22}, {26, 9, 13, 16, 14}},     // 19
	{{28, 3, 107, 5, 108}, {26, 3, 41, 13, 42}, {30, 15, 24, 5, 25}, {28, 15, 15, 10, 16}},    // 20
	{{28, 4, 116, 4, 117}, {26, 17, 42, 0, 0}, {28, 17, 22, 6, 23}, {30, 19, 16, 6, 17}},      // 21
	{{28, 2, 111, 7, 112}, {28, 17, 46, 0, 0}, {30, 7, 24, 16, 25}, {24, 34, 13, 0, 0}},       // 22
	{{30, 4, 121, 5, 122}, {28, 4, 47, 14, 48}, {30, 11, 24, 14, 25}, {30, 16, 15, 14, 16}},   // 23
	{{30, 6, 117, 4, 118}, {28, 6, 45, 14, 46}, {30, 11, 24, 16, 25}, {30, 30, 16, 2, 17}},    // 24
	{{26, 8, 106, 4, 107}, {28, 8, 47, 13, 48}, {30, 7, 24, 22, 25}, {30, 22, 15, 13, 16}},    // 25
	{{28, 10, 114, 2, 115}, {28, 19, 46, 4, 47}, {28, 28, 22, 6, 23}, {30, 33, 16, 4, 17}},    // 26
	{{30, 8, 122, 4, 123}, {28, 22, 45, 3, 46}, {30, 8, 23, 26, 24}, {30, 12, 15, 28, 16}},    // 27
	{{30, 3, 117, 10, 118}, {28, 3, 45, 23, 46}, {30, 4, 24, 31, 25}, {30, 11, 15, 31, 16}},   // 28
	{{30, 7, 116, 7, 117}, {28, 21, 45, 7, 46}, {30, 1, 23, 37, 24}, {30, 19, 15, 26, 16}},    // 29
	{{30, 5, 115, 10, 116}, {28, 19, 47, 10, 48}, {30, 15, 24, 25, 25}, {30, 23, 15, 25, 16}}, // 30
	{{30, 13, 115, 3, 116}, {28, 2, 46, 29, 47}, {30, 42, 24, 1, 25}, {30, 23, 15, 28, 16}},   // 31
	{{30, 17, 115, 0, 0}, {28, 10, 46, 23, 47}, {30, 10, 24, 35, 25}, {30, 19, 15, 35, 16}},   // 32
	{{30, 17, 115, 1, 116}, {28, 14, 46, 21, 47}, {30, 29, 24, 19, 25}, {30, 11, 15, 46, 16}}, // 33
	{{30, 13, 115, 6, 116}, {28, 14, 46, 23, 47}, {30, 44, 24, 7, 25}, {30, 59, 16, 1, 17}},   // 34
	{{30, 12, 121, 7, 122}, {28, 12, 47, 26, 48}, {30, 39, 24, 14, 25}, {30, 22, 15, 41, 16}}, // 35
	{{30, 6, 121, 14, 122}, {28, 6, 47, 34, 48}, {30, 46, 24, 10, 25}, {30, 2, 15, 64, 16}},   // 36
	{{30, 17, 122, 4, 123}, {28, 29, 46, 14, 47}, {30, 49, 24, 10, 25}, {30, 24, 15, 46, 16}}, // 37
	{{30, 4, 122, 18, 123}, {28, 13, 46, 32, 47}, {30, 48, 24, 14, 25}, {30, 42, 15, 32, 16}}, // 38
	{{30, 20, 117, 4, 118}, {28, 40, 47, 7, 48}, {30, 43, 24, 22, 25}, {30, 10, 15, 67, 16}},  // 39
	{{30, 19, 118, 6, 119}, {28, 18, 47, 31, 48}, {30, 34, 24, 34, 25}, {30, 20, 15, 61, 16}}, // 40
}
