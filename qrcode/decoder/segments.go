package decoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/bitutil"
	"github.com/ericlevine/qrdecode/charset"
)

const alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// gb2312Subset is the only Hanzi subset indicator in use.
const gb2312Subset = 1

// readBits reads n bits, reporting a short buffer as a format error.
func readBits(buf *bitutil.BitBuffer, n int) (int, error) {
	v, err := buf.Read(n)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", qrdecode.ErrFormat, err)
	}
	return v, nil
}

// readCount reads the character count indicator of mode.
func readCount(buf *bitutil.BitBuffer, mode Mode, version *Version) (int, error) {
	return readBits(buf, mode.CharacterCountBits(version))
}

func decodeNumericSegment(buf *bitutil.BitBuffer, version *Version) (string, error) {
	count, err := readCount(buf, ModeNumeric, version)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(count)
	for count > 0 {
		// three digits in 10 bits, a trailing two in 7, a single one in 4
		digits, width := 3, 10
		switch count {
		case 2:
			digits, width = 2, 7
		case 1:
			digits, width = 1, 4
		}
		v, err := readBits(buf, width)
		if err != nil {
			return "", err
		}
		s := strconv.Itoa(v)
		if len(s) > digits {
			return "", formatErrorf("numeric group %d exceeds %d digits", v, digits)
		}
		sb.WriteString(strings.Repeat("0", digits-len(s)))
		sb.WriteString(s)
		count -= digits
	}
	return sb.String(), nil
}

func alphanumericChar(v int) (byte, error) {
	if v >= len(alphanumericChars) {
		return 0, formatErrorf("alphanumeric value %d out of range", v)
	}
	return alphanumericChars[v], nil
}

// decodeAlphanumericSegment reads pairs of characters from 11 bits and a
// trailing single one from 6 bits. With FNC1 in effect, the GS control
// byte is rendered as "%" and "%%" collapses to a single "%".
func decodeAlphanumericSegment(buf *bitutil.BitBuffer, version *Version, fnc1 bool) (string, error) {
	count, err := readCount(buf, ModeAlphanumeric, version)
	if err != nil {
		return "", err
	}
	out := make([]byte, 0, count)
	for ; count > 1; count -= 2 {
		v, err := readBits(buf, 11)
		if err != nil {
			return "", err
		}
		c1, err := alphanumericChar(v / 45)
		if err != nil {
			return "", err
		}
		c2, err := alphanumericChar(v % 45)
		if err != nil {
			return "", err
		}
		out = append(out, c1, c2)
	}
	if count == 1 {
		v, err := readBits(buf, 6)
		if err != nil {
			return "", err
		}
		c, err := alphanumericChar(v)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}
	if !fnc1 {
		return string(out), nil
	}

	text := strings.ReplaceAll(string(out), "\x1d", "%")
	return strings.ReplaceAll(text, "%%", "%"), nil
}

// decodeByteSegment returns the decoded text and the raw bytes. Without
// an ECI designator in effect the character set is guessed, preferring
// hint when it names one.
func decodeByteSegment(buf *bitutil.BitBuffer, version *Version, eci *charset.ECICharset, hint string) (string, []byte, error) {
	count, err := readCount(buf, ModeByte, version)
	if err != nil {
		return "", nil, err
	}
	if 8*count > buf.Available() {
		return "", nil, formatErrorf("byte segment of %d bytes, %d bits left", count, buf.Available())
	}
	raw := make([]byte, count)
	for i := range raw {
		v, _ := buf.Read(8)
		raw[i] = byte(v)
	}

	cs := charset.Guess(raw, hint)
	if eci != nil {
		cs = *eci
	}
	text, err := cs.Decode(raw)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", qrdecode.ErrFormat, err)
	}
	return text, raw, nil
}

// decodeDoubleByte reads count 13-bit values, expands each to a
// two-byte code and decodes the result with cs.
func decodeDoubleByte(buf *bitutil.BitBuffer, count int, cs charset.ECICharset, expand func(int) int) (string, error) {
	if 13*count > buf.Available() {
		return "", formatErrorf("%d double-byte characters, %d bits left", count, buf.Available())
	}
	raw := make([]byte, 0, 2*count)
	for i := 0; i < count; i++ {
		v, _ := buf.Read(13)
		code := expand(v)
		raw = append(raw, byte(code>>8), byte(code))
	}
	text, err := cs.Decode(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", qrdecode.ErrFormat, err)
	}
	return text, nil
}

func decodeKanjiSegment(buf *bitutil.BitBuffer, version *Version) (string, error) {
	count, err := readCount(buf, ModeKanji, version)
	if err != nil {
		return "", err
	}
	return decodeDoubleByte(buf, count, charset.ShiftJIS, func(v int) int {
		code := (v/0xC0)<<8 | v%0xC0
		if code < 0x1F00 {
			return code + 0x8140
		}
		return code + 0xC140
	})
}

// decodeHanziSegment reads the subset indicator, then GB2312 characters.
func decodeHanziSegment(buf *bitutil.BitBuffer, version *Version) (string, error) {
	subset, err := readBits(buf, 4)
	if err != nil {
		return "", err
	}
	if subset != gb2312Subset {
		return "", formatErrorf("unknown hanzi subset %d", subset)
	}
	count, err := readCount(buf, ModeHanzi, version)
	if err != nil {
		return "", err
	}
	return decodeDoubleByte(buf, count, charset.GB18030, func(v int) int {
		code := (v/0x60)<<8 | v%0x60
		if code < 0xA00 {
			return code + 0xA1A1
		}
		return code + 0xA6A1
	})
}

// parseECIDesignator reads a one, two or three byte ECI designator.
func parseECIDesignator(buf *bitutil.BitBuffer) (charset.ECICharset, error) {
	first, err := readBits(buf, 8)
	if err != nil {
		return 0, err
	}
	var id int
	switch {
	case first&0x80 == 0:
		id = first & 0x7F
	case first&0xC0 == 0x80:
		next, err := readBits(buf, 8)
		if err != nil {
			return 0, err
		}
		id = (first&0x3F)<<8 | next
	case first&0xE0 == 0xC0:
		next, err := readBits(buf, 16)
		if err != nil {
			return 0, err
		}
		id = (first&0x1F)<<16 | next
	default:
		return 0, formatErrorf("bad ECI designator %08b", first)
	}
	cs, err := charset.NewECICharset(id)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", qrdecode.ErrFormat, err)
	}
	return cs, nil
}
