package decoder

import (
	"fmt"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/bitutil"
)

// module flags
const (
	moduleDark uint8 = 1 << iota
	moduleReserved
)

// SymbolMatrix is the module grid of one QR symbol. Each module is light
// or dark, and may additionally be reserved for a function pattern once
// the version is known. Metadata read from the grid is cached until
// ResetVersionInfo.
type SymbolMatrix struct {
	dimension int
	modules   []uint8 // row-major
	version   *Version
	format    *FormatInformation
	mirrored  bool
}

// NewSymbolMatrix returns an all-light grid. dimension must be 4*v+17 for
// a version v in 1..40.
func NewSymbolMatrix(dimension int) (*SymbolMatrix, error) {
	if dimension < 21 || dimension > 177 || dimension%4 != 1 {
		return nil, fmt.Errorf("%w: %d", ErrDimension, dimension)
	}
	return &SymbolMatrix{dimension: dimension, modules: make([]uint8, dimension*dimension)}, nil
}

// SymbolMatrixFromBitMatrix copies a square matrix of modules, set bits
// being dark.
func SymbolMatrixFromBitMatrix(bm *bitutil.BitMatrix) (*SymbolMatrix, error) {
	if bm.Width() != bm.Height() {
		return nil, fmt.Errorf("%w: %dx%d is not square", ErrDimension, bm.Width(), bm.Height())
	}
	m, err := NewSymbolMatrix(bm.Width())
	if err != nil {
		return nil, err
	}
	for y := 0; y < m.dimension; y++ {
		for x := 0; x < m.dimension; x++ {
			if bm.Get(x, y) {
				m.modules[y*m.dimension+x] = moduleDark
			}
		}
	}
	return m, nil
}

// ParseSymbolMatrix reads a grid drawn with "X " for dark and "  " for
// light modules, one row per line.
func ParseSymbolMatrix(repr string) (*SymbolMatrix, error) {
	bm, err := bitutil.ParseStringMatrix(repr, "X ", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", qrdecode.ErrFormat, err)
	}
	return SymbolMatrixFromBitMatrix(bm)
}

// Dimension returns the number of modules per side.
func (m *SymbolMatrix) Dimension() int { return m.dimension }

// Get reports whether the module at column x, row y is dark.
func (m *SymbolMatrix) Get(x, y int) bool {
	return m.modules[y*m.dimension+x]&moduleDark != 0
}

// Set colors the module at column x, row y.
func (m *SymbolMatrix) Set(x, y int, dark bool) {
	i := y*m.dimension + x
	if dark {
		m.modules[i] |= moduleDark
	} else {
		m.modules[i] &^= moduleDark
	}
}

// IsReserved reports whether the module belongs to a function pattern.
// Modules are only reserved while reading codewords has established the
// version.
func (m *SymbolMatrix) IsReserved(x, y int) bool {
	return m.modules[y*m.dimension+x]&moduleReserved != 0
}

// Version returns the version read from the grid, or nil.
func (m *SymbolMatrix) Version() *Version { return m.version }

// FormatInformation returns the format information read from the grid.
func (m *SymbolMatrix) FormatInformation() (FormatInformation, bool) {
	if m.format == nil {
		return FormatInformation{}, false
	}
	return *m.format, true
}

// Mirrored reports whether MirrorDiagonal has been applied an odd number
// of times.
func (m *SymbolMatrix) Mirrored() bool { return m.mirrored }

// Clone returns an independent copy, metadata included.
func (m *SymbolMatrix) Clone() *SymbolMatrix {
	c := *m
	c.modules = append([]uint8(nil), m.modules...)
	if m.format != nil {
		f := *m.format
		c.format = &f
	}
	return &c
}

// BitMatrix returns the dark modules as a bit matrix.
func (m *SymbolMatrix) BitMatrix() *bitutil.BitMatrix {
	bm := bitutil.NewBitMatrix(m.dimension)
	for y := 0; y < m.dimension; y++ {
		for x := 0; x < m.dimension; x++ {
			if m.Get(x, y) {
				bm.Set(x, y)
			}
		}
	}
	return bm
}

// ResetVersionInfo forgets the version and format information and drops
// the function pattern reservations.
func (m *SymbolMatrix) ResetVersionInfo() *SymbolMatrix {
	m.version = nil
	m.format = nil
	for i := range m.modules {
		m.modules[i] &^= moduleReserved
	}
	return m
}

// MirrorDiagonal reverses the row order and then rotates the grid 90
// degrees clockwise, which transposes it. It is used to read symbols
// that were printed mirrored.
func (m *SymbolMatrix) MirrorDiagonal() *SymbolMatrix {
	d := m.dimension
	for y := 0; y < d; y++ {
		for x := y + 1; x < d; x++ {
			m.modules[y*d+x], m.modules[x*d+y] = m.modules[x*d+y], m.modules[y*d+x]
		}
	}
	m.mirrored = !m.mirrored
	return m
}

type point struct{ x, y int }

// formatInfoPositions returns where the two copies of the 15 format
// information bits live, most significant bit first. Each copy skips
// the timing pattern module it crosses.
func formatInfoPositions(d int) (first, second [15]point) {
	i := 0
	for x := 0; x <= 5; x++ {
		first[i] = point{x, 8}
		i++
	}
	first[6] = point{7, 8}
	first[7] = point{8, 8}
	first[8] = point{8, 7}
	i = 9
	for y := 5; y >= 0; y-- {
		first[i] = point{8, y}
		i++
	}

	i = 0
	for y := d - 1; y >= d-7; y-- {
		second[i] = point{8, y}
		i++
	}
	for x := d - 8; x < d; x++ {
		second[i] = point{x, 8}
		i++
	}
	return first, second
}

func (m *SymbolMatrix) readBits(points []point) int {
	bits := 0
	for _, p := range points {
		bits <<= 1
		if m.Get(p.x, p.y) {
			bits |= 1
		}
	}
	return bits
}

// ReadFormatInformation reads the ecc level and mask pattern.
func (m *SymbolMatrix) ReadFormatInformation() (FormatInformation, error) {
	if m.format != nil {
		return *m.format, nil
	}
	first, second := formatInfoPositions(m.dimension)
	fi, ok := decodeFormatInformation(m.readBits(first[:]), m.readBits(second[:]))
	if !ok {
		return FormatInformation{}, ErrFormatInfo
	}
	m.format = &fi
	return fi, nil
}

// SetFormatInfo writes both copies of the format information for level
// and mask.
func (m *SymbolMatrix) SetFormatInfo(level EccLevel, mask MaskPattern) {
	pattern := level.FormatPattern(mask)
	first, second := formatInfoPositions(m.dimension)
	for i := 0; i < 15; i++ {
		dark := (pattern>>uint(14-i))&1 == 1
		m.Set(first[i].x, first[i].y, dark)
		m.Set(second[i].x, second[i].y, dark)
	}
}

// versionInfoPositions returns the top-right (3 wide, 6 tall) and
// bottom-left (6 wide, 3 tall) version information blocks, most
// significant bit first.
func versionInfoPositions(d int) (topRight, bottomLeft [18]point) {
	i := 0
	for y := 5; y >= 0; y-- {
		for x := d - 9; x >= d-11; x-- {
			topRight[i] = point{x, y}
			i++
		}
	}
	i = 0
	for x := 5; x >= 0; x-- {
		for y := d - 9; y >= d-11; y-- {
			bottomLeft[i] = point{x, y}
			i++
		}
	}
	return topRight, bottomLeft
}

// ReadVersion determines the version. Up to version 6 it follows from the
// dimension; larger symbols carry two copies of version information.
func (m *SymbolMatrix) ReadVersion() (*Version, error) {
	if m.version != nil {
		return m.version, nil
	}
	provisional := (m.dimension - 17) / 4
	if provisional <= 6 {
		v, err := VersionForNumber(provisional)
		if err != nil {
			return nil, err
		}
		m.version = v
		return v, nil
	}

	topRight, bottomLeft := versionInfoPositions(m.dimension)
	for _, block := range [][18]point{topRight, bottomLeft} {
		if v, ok := decodeVersionInformation(m.readBits(block[:])); ok && v.Dimension() == m.dimension {
			m.version = v
			return v, nil
		}
	}
	return nil, ErrVersionInfo
}

// SetVersionInfo writes both copies of the version information. It does
// nothing for versions below 7.
func (m *SymbolMatrix) SetVersionInfo(v *Version) {
	pattern := v.VersionInfoPattern()
	if pattern == 0 {
		return
	}
	topRight, bottomLeft := versionInfoPositions(m.dimension)
	for i := 0; i < 18; i++ {
		dark := (pattern>>uint(17-i))&1 == 1
		m.Set(topRight[i].x, topRight[i].y, dark)
		m.Set(bottomLeft[i].x, bottomLeft[i].y, dark)
	}
}

// reserveFunctionPatterns marks every function module of v.
func (m *SymbolMatrix) reserveFunctionPatterns(v *Version) {
	fp := v.BuildFunctionPattern()
	for y := 0; y < m.dimension; y++ {
		for x := 0; x < m.dimension; x++ {
			if fp.Get(x, y) {
				m.modules[y*m.dimension+x] |= moduleReserved
			}
		}
	}
}

// Mask inverts every module that is not reserved and that pattern
// selects. Applying the same pattern twice restores the grid.
func (m *SymbolMatrix) Mask(pattern MaskPattern) {
	for y := 0; y < m.dimension; y++ {
		for x := 0; x < m.dimension; x++ {
			i := y*m.dimension + x
			if m.modules[i]&moduleReserved == 0 && pattern.IsMasked(x, y) {
				m.modules[i] ^= moduleDark
			}
		}
	}
}

// ReadCodewords reads format and version information if needed, unmasks
// the data modules and collects the codewords in placement order: column
// pairs from right to left, alternating upwards and downwards, skipping
// the vertical timing column and every function module. The grid is
// masked again before returning. The format information the codewords
// were unmasked with is returned alongside them.
func (m *SymbolMatrix) ReadCodewords() ([]byte, FormatInformation, error) {
	fi, err := m.ReadFormatInformation()
	if err != nil {
		return nil, FormatInformation{}, err
	}
	v, err := m.ReadVersion()
	if err != nil {
		return nil, FormatInformation{}, err
	}

	m.reserveFunctionPatterns(v)
	m.Mask(fi.MaskPattern)
	defer m.Mask(fi.MaskPattern)

	d := m.dimension
	result := make([]byte, 0, v.TotalCodewords)
	current, bitsRead := 0, 0
	upwards := true
	for right := d - 1; right > 0; right -= 2 {
		if right == 6 {
			right--
		}
		for count := 0; count < d; count++ {
			y := count
			if upwards {
				y = d - 1 - count
			}
			for x := right; x > right-2; x-- {
				if m.IsReserved(x, y) {
					continue
				}
				current <<= 1
				if m.Get(x, y) {
					current |= 1
				}
				if bitsRead++; bitsRead == 8 {
					result = append(result, byte(current))
					current, bitsRead = 0, 0
				}
			}
		}
		upwards = !upwards
	}

	if len(result) != v.TotalCodewords {
		return nil, FormatInformation{}, fmt.Errorf("%w: read %d, version %d holds %d", ErrCodewordCount, len(result), v.Number, v.TotalCodewords)
	}
	return result, fi, nil
}

// PlaceCodewords writes codewords into the data modules in the order
// ReadCodewords reads them, then applies mask. Version and format
// information are written too, so the result reads back as a complete
// symbol. Remainder bits are left light before masking.
func (m *SymbolMatrix) PlaceCodewords(codewords []byte, level EccLevel, mask MaskPattern) error {
	v, err := ProvisionalVersionForDimension(m.dimension)
	if err != nil {
		return err
	}
	if len(codewords) != v.TotalCodewords {
		return fmt.Errorf("%w: got %d, version %d holds %d", ErrCodewordCount, len(codewords), v.Number, v.TotalCodewords)
	}

	m.ResetVersionInfo()
	m.reserveFunctionPatterns(v)
	d := m.dimension
	bit := 0
	upwards := true
	for right := d - 1; right > 0; right -= 2 {
		if right == 6 {
			right--
		}
		for count := 0; count < d; count++ {
			y := count
			if upwards {
				y = d - 1 - count
			}
			for x := right; x > right-2; x-- {
				if m.IsReserved(x, y) {
					continue
				}
				dark := false
				if bit < 8*len(codewords) {
					dark = codewords[bit/8]&(0x80>>uint(bit%8)) != 0
				}
				m.Set(x, y, dark)
				bit++
			}
		}
		upwards = !upwards
	}
	m.Mask(mask)
	m.SetFormatInfo(level, mask)
	m.SetVersionInfo(v)
	return nil
}

// BestMaskPattern scores every mask pattern over the unmasked data
// modules of m with format information for level in place, and returns
// the one with the lowest penalty.
func (m *SymbolMatrix) BestMaskPattern(level EccLevel) (MaskPattern, error) {
	v, err := ProvisionalVersionForDimension(m.dimension)
	if err != nil {
		return 0, err
	}
	best, bestPenalty := MaskPattern(0), -1
	for p := MaskPattern(0); p < 8; p++ {
		c := m.Clone().ResetVersionInfo()
		c.reserveFunctionPatterns(v)
		c.Mask(p)
		c.SetFormatInfo(level, p)
		if penalty := Penalty(c.Grid()); bestPenalty < 0 || penalty < bestPenalty {
			best, bestPenalty = p, penalty
		}
	}
	return best, nil
}

// Grid returns the modules as grid[y][x], true being dark.
func (m *SymbolMatrix) Grid() [][]bool {
	grid := make([][]bool, m.dimension)
	for y := range grid {
		grid[y] = make([]bool, m.dimension)
		for x := range grid[y] {
			grid[y][x] = m.Get(x, y)
		}
	}
	return grid
}

func (m *SymbolMatrix) String() string {
	return m.BitMatrix().String()
}
