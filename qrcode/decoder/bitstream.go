package decoder

import (
	"strings"

	"github.com/ericlevine/qrdecode/bitutil"
	"github.com/ericlevine/qrdecode/charset"
)

// DecodeOptions tune bitstream decoding.
type DecodeOptions struct {
	// CharacterSet names the character set of BYTE segments that carry
	// no ECI designator. Empty means guess.
	CharacterSet string
}

// DecodeBitStream parses the corrected data codewords of a symbol into
// text. Segments are read while at least four bits, the width of a mode
// tag, remain.
func DecodeBitStream(data []byte, version *Version, level EccLevel, mask MaskPattern, opts DecodeOptions) (*DecodedResult, error) {
	buf := bitutil.NewBitBuffer(data)
	result := &DecodedResult{
		RawBytes:                 data,
		NumBits:                  8 * len(data),
		Version:                  version,
		EccLevel:                 level,
		MaskPattern:              mask,
		StructuredAppendSequence: -1,
		StructuredAppendParity:   -1,
	}

	var (
		text                  strings.Builder
		eci                   *charset.ECICharset
		fnc1First, fnc1Second bool
		afterECI              bool
	)
	for buf.Available() >= 4 {
		bits, _ := buf.Read(4)
		mode, err := ModeForBits(bits)
		if err != nil {
			return nil, err
		}
		if afterECI && mode != ModeByte {
			return nil, formatErrorf("ECI designator followed by invalid mode %s", mode)
		}
		afterECI = mode == ModeECI
		if mode == ModeTerminator {
			break
		}

		var s string
		switch mode {
		case ModeNumeric:
			s, err = decodeNumericSegment(buf, version)
		case ModeAlphanumeric:
			s, err = decodeAlphanumericSegment(buf, version, fnc1First || fnc1Second)
		case ModeByte:
			var raw []byte
			s, raw, err = decodeByteSegment(buf, version, eci, opts.CharacterSet)
			if err == nil {
				result.ByteSegments = append(result.ByteSegments, raw)
			}
		case ModeKanji:
			s, err = decodeKanjiSegment(buf, version)
		case ModeHanzi:
			s, err = decodeHanziSegment(buf, version)
		case ModeStructuredAppend:
			if buf.Available() < 16 {
				return nil, formatErrorf("structured append needs 16 bits, %d left", buf.Available())
			}
			result.StructuredAppendSequence, _ = buf.Read(8)
			result.StructuredAppendParity, _ = buf.Read(8)
		case ModeFNC1FirstPosition:
			fnc1First = true
		case ModeFNC1SecondPosition:
			fnc1Second = true
		case ModeECI:
			var cs charset.ECICharset
			cs, err = parseECIDesignator(buf)
			eci = &cs
		default:
			return nil, formatErrorf("unhandled mode %s", mode)
		}
		if err != nil {
			return nil, err
		}
		text.WriteString(s)
	}

	if afterECI {
		return nil, formatErrorf("ECI designator at end of data")
	}

	result.Text = text.String()
	result.SymbologyModifier = symbologyModifier(eci != nil, fnc1First, fnc1Second)
	return result, nil
}

// symbologyModifier returns the AIM modifier for ]Q identifiers.
func symbologyModifier(eci, fnc1First, fnc1Second bool) int {
	m := 1
	switch {
	case fnc1First:
		m = 3
	case fnc1Second:
		m = 5
	}
	if eci {
		m++
	}
	return m
}
