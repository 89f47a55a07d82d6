package decoder

import "fmt"

// Mode is the 4-bit tag that starts every bitstream segment.
type Mode int

// Defined mode tags.
const (
	ModeTerminator         Mode = 0x0
	ModeNumeric            Mode = 0x1
	ModeAlphanumeric       Mode = 0x2
	ModeStructuredAppend   Mode = 0x3
	ModeByte               Mode = 0x4
	ModeFNC1FirstPosition  Mode = 0x5
	ModeECI                Mode = 0x7
	ModeKanji              Mode = 0x8
	ModeFNC1SecondPosition Mode = 0x9
	ModeHanzi              Mode = 0xD
)

// count indicator widths for versions 1-9, 10-26 and 27-40
var characterCountBits = map[Mode][3]int{
	ModeNumeric:      {10, 12, 14},
	ModeAlphanumeric: {9, 11, 13},
	ModeByte:         {8, 16, 16},
	ModeKanji:        {8, 10, 12},
	ModeHanzi:        {8, 10, 12},
}

// ModeForBits returns the mode for a 4-bit tag.
func ModeForBits(bits int) (Mode, error) {
	switch m := Mode(bits); m {
	case ModeTerminator, ModeNumeric, ModeAlphanumeric, ModeStructuredAppend, ModeByte,
		ModeFNC1FirstPosition, ModeECI, ModeKanji, ModeFNC1SecondPosition, ModeHanzi:
		return m, nil
	}
	return 0, fmt.Errorf("%w: %#x", ErrInvalidMode, bits)
}

// CharacterCountBits returns the width of the count indicator that
// follows this mode tag in a symbol of the given version. Modes without
// a count return 0.
func (m Mode) CharacterCountBits(version *Version) int {
	tier := 2
	switch {
	case version.Number <= 9:
		tier = 0
	case version.Number <= 26:
		tier = 1
	}
	return characterCountBits[m][tier]
}

// Bits returns the 4-bit tag.
func (m Mode) Bits() int { return int(m) }

func (m Mode) String() string {
	switch m {
	case ModeTerminator:
		return "TERMINATOR"
	case ModeNumeric:
		return "NUMERIC"
	case ModeAlphanumeric:
		return "ALPHANUMERIC"
	case ModeStructuredAppend:
		return "STRUCTURED_APPEND"
	case ModeByte:
		return "BYTE"
	case ModeFNC1FirstPosition:
		return "FNC1_FIRST_POSITION"
	case ModeECI:
		return "ECI"
	case ModeKanji:
		return "KANJI"
	case ModeFNC1SecondPosition:
		return "FNC1_SECOND_POSITION"
	case ModeHanzi:
		return "HANZI"
	}
	return fmt.Sprintf("Mode(%#x)", int(m))
}
