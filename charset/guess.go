package charset

// Guess picks the most plausible character set for bytes that arrived
// without an ECI designator: UTF-8 when a BOM or valid multi-byte
// sequences are present, Shift_JIS when long runs of double-byte or
// katakana characters appear, otherwise ISO-8859-1. A non-empty hint
// that names a known character set wins.
func Guess(data []byte, hint string) ECICharset {
	if hint != "" {
		if c, ok := ForName(hint); ok {
			return c
		}
	}
	if len(data) > 2 && (data[0] == 0xFE && data[1] == 0xFF || data[0] == 0xFF && data[1] == 0xFE) {
		return UTF16BE
	}

	var g guesser
	g.reset()
	for _, b := range data {
		if !g.utf8 && !g.sjis && !g.latin1 {
			break
		}
		g.scanUTF8(b)
		g.scanLatin1(b)
		g.scanShiftJIS(b)
	}
	if g.utf8Left > 0 {
		g.utf8 = false
	}
	if g.sjisLeft > 0 {
		g.sjis = false
	}

	hasBOM := len(data) > 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF
	switch {
	case g.utf8 && (hasBOM || g.utf8MultiByte > 0):
		return UTF8
	case g.sjis && (g.maxKatakanaRun >= 3 || g.maxDoubleByteRun >= 3):
		return ShiftJIS
	case g.latin1 && g.sjis:
		if g.maxKatakanaRun == 2 && g.katakana == 2 || g.latin1HighOther*10 >= len(data) {
			return ShiftJIS
		}
		return ISO8859_1
	case g.latin1:
		return ISO8859_1
	case g.sjis:
		return ShiftJIS
	}
	return UTF8
}

type guesser struct {
	utf8, sjis, latin1 bool

	utf8Left      int
	utf8MultiByte int

	latin1HighOther int

	sjisLeft         int
	katakana         int
	katakanaRun      int
	doubleByteRun    int
	maxKatakanaRun   int
	maxDoubleByteRun int
}

func (g *guesser) reset() {
	*g = guesser{utf8: true, sjis: true, latin1: true}
}

func (g *guesser) scanUTF8(b byte) {
	if !g.utf8 {
		return
	}
	switch {
	case g.utf8Left > 0:
		if b&0x80 == 0 {
			g.utf8 = false
		} else {
			g.utf8Left--
		}
	case b&0x80 == 0:
	case b&0x40 == 0:
		g.utf8 = false
	case b&0x20 == 0:
		g.utf8Left, g.utf8MultiByte = 1, g.utf8MultiByte+1
	case b&0x10 == 0:
		g.utf8Left, g.utf8MultiByte = 2, g.utf8MultiByte+1
	case b&0x08 == 0:
		g.utf8Left, g.utf8MultiByte = 3, g.utf8MultiByte+1
	default:
		g.utf8 = false
	}
}

func (g *guesser) scanLatin1(b byte) {
	if !g.latin1 {
		return
	}
	if b > 0x7F && b < 0xA0 {
		g.latin1 = false
	} else if b > 0x9F && (b < 0xC0 || b == 0xD7 || b == 0xF7) {
		g.latin1HighOther++
	}
}

func (g *guesser) scanShiftJIS(b byte) {
	if !g.sjis {
		return
	}
	switch {
	case g.sjisLeft > 0:
		if b < 0x40 || b == 0x7F || b > 0xFC {
			g.sjis = false
		} else {
			g.sjisLeft--
		}
	case b == 0x80 || b == 0xA0 || b > 0xEF:
		g.sjis = false
	case b > 0xA0 && b < 0xE0:
		g.katakana++
		g.doubleByteRun = 0
		g.katakanaRun++
		g.maxKatakanaRun = max(g.maxKatakanaRun, g.katakanaRun)
	case b > 0x7F:
		g.sjisLeft++
		g.katakanaRun = 0
		g.doubleByteRun++
		g.maxDoubleByteRun = max(g.maxDoubleByteRun, g.doubleByteRun)
	default:
		g.katakanaRun = 0
		g.doubleByteRun = 0
	}
}
