package decoder

import "math/bits"

// formatInfoMask is XORed into format information by the encoder.
const formatInfoMask = 0x5412

// formatInfoTable maps the 5 data bits of format information (ecc bits,
// then mask bits) to the masked 15-bit BCH code word.
var formatInfoTable = [32]int{
	0x5412, 0x5125, 0x5E7C, 0x5B4B, 0x45F9, 0x40CE, 0x4F97, 0x4AA0,
	0x77C4, 0x72F3, 0x7DAA, 0x789D, 0x662F, 0x6318, 0x6C41, 0x6976,
	0x1689, 0x13BE, 0x1CE7, 0x19D0, 0x0762, 0x0255, 0x0D0C, 0x083B,
	0x355F, 0x3068, 0x3F31, 0x3A06, 0x24B4, 0x2183, 0x2EDA, 0x2BED,
}

// FormatInformation is the decoded content of the format information
// area.
type FormatInformation struct {
	EccLevel    EccLevel
	MaskPattern MaskPattern
}

func newFormatInformation(data int) FormatInformation {
	ecc, _ := EccLevelForBits(data >> 3 & 0b11)
	return FormatInformation{EccLevel: ecc, MaskPattern: MaskPattern(data & 0b111)}
}

// decodeFormatInformation matches both read copies against the table,
// then retries with the masking undone for symbols that were written
// without it.
func decodeFormatInformation(copy1, copy2 int) (FormatInformation, bool) {
	if fi, ok := matchFormatInformation(copy1, copy2); ok {
		return fi, true
	}
	return matchFormatInformation(copy1^formatInfoMask, copy2^formatInfoMask)
}

func matchFormatInformation(copy1, copy2 int) (FormatInformation, bool) {
	bestDistance, best := 32, 0
	for data, pattern := range formatInfoTable {
		if pattern == copy1 || pattern == copy2 {
			return newFormatInformation(data), true
		}
		if d := bits.OnesCount(uint(copy1 ^ pattern)); d < bestDistance {
			bestDistance, best = d, data
		}
		if copy1 != copy2 {
			if d := bits.OnesCount(uint(copy2 ^ pattern)); d < bestDistance {
				bestDistance, best = d, data
			}
		}
	}
	// The code has minimum distance 7, so up to 3 bit errors are
	// correctable.
	if bestDistance <= 3 {
		return newFormatInformation(best), true
	}
	return FormatInformation{}, false
}
