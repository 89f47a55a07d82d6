// Package decoder reads QR code symbols: format and version metadata,
// codewords, Reed-Solomon correction and the segmented bitstream.
package decoder

import "fmt"

// EccLevel is one of the four error correction levels.
type EccLevel int

// Levels in ordinal order.
const (
	EccLevelL EccLevel = iota // ~7% correction
	EccLevelM                 // ~15% correction
	EccLevelQ                 // ~25% correction
	EccLevelH                 // ~30% correction
)

// format bits by ordinal, and ordinal by format bits
var (
	eccLevelBits    = [4]int{0b01, 0b00, 0b11, 0b10}
	eccLevelForBits = [4]EccLevel{EccLevelM, EccLevelL, EccLevelH, EccLevelQ}
)

// EccLevelForOrdinal returns the level with ordinal 0 (L) to 3 (H).
func EccLevelForOrdinal(ordinal int) (EccLevel, error) {
	if ordinal < 0 || ordinal > 3 {
		return 0, fmt.Errorf("%w: ordinal %d", errInvalidEccLevel, ordinal)
	}
	return EccLevel(ordinal), nil
}

// EccLevelForBits returns the level encoded by the two format bits.
func EccLevelForBits(bits int) (EccLevel, error) {
	if bits&0b11 != bits {
		return 0, fmt.Errorf("%w: bits %#b", errInvalidEccLevel, bits)
	}
	return eccLevelForBits[bits], nil
}

// Bits returns the two bit encoding used in format information.
func (l EccLevel) Bits() int { return eccLevelBits[l] }

// Ordinal returns L=0, M=1, Q=2, H=3.
func (l EccLevel) Ordinal() int { return int(l) }

func (l EccLevel) String() string {
	if l < EccLevelL || l > EccLevelH {
		return fmt.Sprintf("EccLevel(%d)", int(l))
	}
	return "LMQH"[l : l+1]
}

// MaxBitsForVersion returns the data capacity in bits of a symbol of the
// given version number at this level.
func (l EccLevel) MaxBitsForVersion(number int) (int, error) {
	v, err := VersionForNumber(number)
	if err != nil {
		return 0, err
	}
	return 8 * v.ECBlocksForLevel(l).TotalDataCodewords(), nil
}

// FormatPattern returns the masked 15-bit format information written for
// this level and the given mask pattern.
func (l EccLevel) FormatPattern(mask MaskPattern) int {
	return formatInfoTable[l.Bits()<<3|int(mask)]
}
