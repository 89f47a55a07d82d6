// Package charset maps Extended Channel Interpretation (ECI) character
// set ids to text encodings and guesses the encoding of untagged bytes.
package charset

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidECI is returned for charset ids outside 0..999999.
var ErrInvalidECI = errors.New("charset: invalid ECI charset id")

// ErrUnsupported is returned when decoding with a charset that has no
// known encoding.
var ErrUnsupported = errors.New("charset: unsupported character set")

// ECICharset is an ECI character set id, 0 to 999999.
type ECICharset int

// Assigned ECI charset ids.
const (
	CP437           ECICharset = 0
	ISO8859_1GLI    ECICharset = 1
	CP437WithoutGLI ECICharset = 2
	ISO8859_1       ECICharset = 3
	ISO8859_2       ECICharset = 4
	ISO8859_3       ECICharset = 5
	ISO8859_4       ECICharset = 6
	ISO8859_5       ECICharset = 7
	ISO8859_6       ECICharset = 8
	ISO8859_7       ECICharset = 9
	ISO8859_8       ECICharset = 10
	ISO8859_9       ECICharset = 11
	ISO8859_10      ECICharset = 12
	ISO8859_11      ECICharset = 13
	ISO8859_13      ECICharset = 15
	ISO8859_14      ECICharset = 16
	ISO8859_15      ECICharset = 17
	ISO8859_16      ECICharset = 18
	ShiftJIS        ECICharset = 20
	Windows1250     ECICharset = 21
	Windows1251     ECICharset = 22
	Windows1252     ECICharset = 23
	Windows1256     ECICharset = 24
	UTF16BE         ECICharset = 25
	UTF8            ECICharset = 26
	ASCII           ECICharset = 27
	Big5            ECICharset = 28
	GB18030         ECICharset = 29
	EUCKR           ECICharset = 30
)

type charsetInfo struct {
	name string
	enc  encoding.Encoding
}

var charsets = map[ECICharset]charsetInfo{
	CP437:           {"CP437", charmap.CodePage437},
	ISO8859_1GLI:    {"ISO-8859-1", charmap.ISO8859_1},
	CP437WithoutGLI: {"CP437", charmap.CodePage437},
	ISO8859_1:       {"ISO-8859-1", charmap.ISO8859_1},
	ISO8859_2:       {"ISO-8859-2", charmap.ISO8859_2},
	ISO8859_3:       {"ISO-8859-3", charmap.ISO8859_3},
	ISO8859_4:       {"ISO-8859-4", charmap.ISO8859_4},
	ISO8859_5:       {"ISO-8859-5", charmap.ISO8859_5},
	ISO8859_6:       {"ISO-8859-6", charmap.ISO8859_6},
	ISO8859_7:       {"ISO-8859-7", charmap.ISO8859_7},
	ISO8859_8:       {"ISO-8859-8", charmap.ISO8859_8},
	ISO8859_9:       {"ISO-8859-9", charmap.ISO8859_9},
	ISO8859_10:      {"ISO-8859-10", charmap.ISO8859_10},
	ISO8859_11:      {"ISO-8859-11", charmap.Windows874},
	ISO8859_13:      {"ISO-8859-13", charmap.ISO8859_13},
	ISO8859_14:      {"ISO-8859-14", charmap.ISO8859_14},
	ISO8859_15:      {"ISO-8859-15", charmap.ISO8859_15},
	ISO8859_16:      {"ISO-8859-16", charmap.ISO8859_16},
	ShiftJIS:        {"Shift_JIS", japanese.ShiftJIS},
	Windows1250:     {"windows-1250", charmap.Windows1250},
	Windows1251:     {"windows-1251", charmap.Windows1251},
	Windows1252:     {"windows-1252", charmap.Windows1252},
	Windows1256:     {"windows-1256", charmap.Windows1256},
	UTF16BE:         {"UTF-16BE", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)},
	UTF8:            {"UTF-8", unicode.UTF8},
	ASCII:           {"US-ASCII", encoding.Nop},
	Big5:            {"Big5", traditionalchinese.Big5},
	GB18030:         {"GB18030", simplifiedchinese.GB18030},
	EUCKR:           {"EUC-KR", korean.EUCKR},
}

// names accepted by ForName, including common aliases
var byName = map[string]ECICharset{
	"SJIS":        ShiftJIS,
	"UTF8":        UTF8,
	"ISO8859_1":   ISO8859_1,
	"ASCII":       ASCII,
	"GB2312":      GB18030,
	"GBK":         GB18030,
	"EUC_CN":      GB18030,
	"EUC_KR":      EUCKR,
	"UnicodeBig":  UTF16BE,
	"UTF-16":      UTF16BE,
	"Cp1252":      Windows1252,
	"BIG-5":       Big5,
	"WINDOWS-874": ISO8859_11,
}

func init() {
	for id, info := range charsets {
		if id == ISO8859_1GLI || id == CP437WithoutGLI {
			continue
		}
		byName[info.name] = id
	}
}

// NewECICharset validates id.
func NewECICharset(id int) (ECICharset, error) {
	if id < 0 || id > 999999 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidECI, id)
	}
	return ECICharset(id), nil
}

// ForName looks up a charset by its name or a common alias.
func ForName(name string) (ECICharset, bool) {
	c, ok := byName[name]
	return c, ok
}

// ID returns the numeric id.
func (c ECICharset) ID() int { return int(c) }

// Name returns the name of the character set, or "" for ids without an
// assignment.
func (c ECICharset) Name() string {
	return charsets[c].name
}

// Encoding returns the text encoding for c, or nil.
func (c ECICharset) Encoding() encoding.Encoding {
	return charsets[c].enc
}

// Decode converts data in this character set to a UTF-8 string.
func (c ECICharset) Decode(data []byte) (string, error) {
	enc := c.Encoding()
	if enc == nil {
		return "", fmt.Errorf("%w: ECI %d", ErrUnsupported, int(c))
	}
	if enc == encoding.Nop {
		return string(data), nil
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("charset: decoding %s: %w", c.Name(), err)
	}
	return string(out), nil
}

func (c ECICharset) String() string {
	if name := c.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("ECI(%d)", int(c))
}
