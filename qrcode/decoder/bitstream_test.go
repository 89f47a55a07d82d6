package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/bitutil"
	"github.com/ericlevine/qrdecode/charset"
)

func decodeStream(t *testing.T, buf *bitutil.BitBuffer) (*DecodedResult, error) {
	t.Helper()
	v1, err := VersionForNumber(1)
	require.NoError(t, err)
	return DecodeBitStream(buf.Bytes(), v1, EccLevelM, 0, DecodeOptions{})
}

func putBytes(buf *bitutil.BitBuffer, s string) *bitutil.BitBuffer {
	for i := 0; i < len(s); i++ {
		buf.Put(int(s[i]), 8)
	}
	return buf
}

func TestDecodeStructuredAppend(t *testing.T) {
	buf := bitutil.NewBitBuffer(nil).
		Put(int(ModeStructuredAppend), 4).Put(2, 8).Put(0x41, 8).
		Put(int(ModeByte), 4).Put(2, 8)
	putBytes(buf, "AB").Put(int(ModeTerminator), 4)

	result, err := decodeStream(t, buf)
	require.NoError(t, err)
	assert.True(t, result.HasStructuredAppend())
	assert.Equal(t, 2, result.StructuredAppendSequence)
	assert.Equal(t, 0x41, result.StructuredAppendParity)
	assert.Equal(t, "AB", result.Text)
	assert.Equal(t, [][]byte{[]byte("AB")}, result.ByteSegments)
}

func TestDecodeStructuredAppendTruncated(t *testing.T) {
	buf := bitutil.NewBitBuffer(nil).Put(int(ModeStructuredAppend), 4).Put(0xFF, 8)
	_, err := decodeStream(t, buf)
	assert.ErrorIs(t, err, qrdecode.ErrFormat)
}

func TestDecodeNumericSegment(t *testing.T) {
	buf := bitutil.NewBitBuffer(nil).
		Put(int(ModeNumeric), 4).Put(8, 10).
		Put(12, 10).Put(345, 10).Put(67, 7)

	result, err := decodeStream(t, buf)
	require.NoError(t, err)
	assert.Equal(t, "01234567", result.Text)

	buf = bitutil.NewBitBuffer(nil).Put(int(ModeNumeric), 4).Put(3, 10).Put(1000, 10)
	_, err = decodeStream(t, buf)
	assert.ErrorIs(t, err, qrdecode.ErrFormat)

	buf = bitutil.NewBitBuffer(nil).Put(int(ModeNumeric), 4).Put(1, 10).Put(12, 4)
	_, err = decodeStream(t, buf)
	assert.ErrorIs(t, err, qrdecode.ErrFormat)
}

func TestDecodeAlphanumericSegment(t *testing.T) {
	buf := bitutil.NewBitBuffer(nil).
		Put(int(ModeAlphanumeric), 4).Put(5, 9).
		Put(10*45+12, 11).Put(41*45+4, 11).Put(2, 6)

	result, err := decodeStream(t, buf)
	require.NoError(t, err)
	assert.Equal(t, "AC-42", result.Text)
}

func TestDecodeAlphanumericFNC1(t *testing.T) {
	buf := bitutil.NewBitBuffer(nil).
		Put(int(ModeFNC1FirstPosition), 4).
		Put(int(ModeAlphanumeric), 4).Put(4, 9).
		Put(38*45+38, 11).Put(10*45+38, 11)

	result, err := decodeStream(t, buf)
	require.NoError(t, err)
	assert.Equal(t, "%A%", result.Text)
	assert.Equal(t, 3, result.SymbologyModifier)

	buf = bitutil.NewBitBuffer(nil).
		Put(int(ModeFNC1FirstPosition), 4).
		Put(int(ModeAlphanumeric), 4).Put(3, 9).
		Put(10*45+38, 11).Put(11, 6)
	result, err = decodeStream(t, buf)
	require.NoError(t, err)
	assert.Equal(t, "A%B", result.Text)

	buf = bitutil.NewBitBuffer(nil).
		Put(int(ModeAlphanumeric), 4).Put(4, 9).
		Put(38*45+38, 11).Put(10*45+38, 11)
	result, err = decodeStream(t, buf)
	require.NoError(t, err)
	assert.Equal(t, "%%A%", result.Text)
}

func TestDecodeKanjiSegment(t *testing.T) {
	// 0x935F and 0xE4AA in Shift_JIS
	buf := bitutil.NewBitBuffer(nil).
		Put(int(ModeKanji), 4).Put(2, 8).
		Put(0x12*0xC0+0x1F, 13).Put(0x23*0xC0+0x6A, 13)

	result, err := decodeStream(t, buf)
	require.NoError(t, err)
	assert.Equal(t, "点茗", result.Text)
}

func TestDecodeHanziSegment(t *testing.T) {
	// 0xD6D0 in GB2312
	buf := bitutil.NewBitBuffer(nil).
		Put(int(ModeHanzi), 4).Put(gb2312Subset, 4).Put(1, 8).
		Put(0x30*0x60+0x2F, 13)

	result, err := decodeStream(t, buf)
	require.NoError(t, err)
	assert.Equal(t, "中", result.Text)

	buf = bitutil.NewBitBuffer(nil).Put(int(ModeHanzi), 4).Put(2, 4).Put(1, 8).Put(0, 13)
	_, err = decodeStream(t, buf)
	assert.ErrorIs(t, err, qrdecode.ErrFormat)
}

func TestDecodeECI(t *testing.T) {
	buf := bitutil.NewBitBuffer(nil).
		Put(int(ModeECI), 4).Put(int(charset.UTF8), 8).
		Put(int(ModeByte), 4).Put(3, 8)
	putBytes(buf, "\xc3\xa9!")

	result, err := decodeStream(t, buf)
	require.NoError(t, err)
	assert.Equal(t, "é!", result.Text)
	assert.Equal(t, 2, result.SymbologyModifier)

	// the designator applies to later byte segments, not earlier ones
	buf = bitutil.NewBitBuffer(nil).Put(int(ModeByte), 4).Put(1, 8)
	putBytes(buf, "\xe9").
		Put(int(ModeECI), 4).Put(int(charset.Windows1251), 8).
		Put(int(ModeByte), 4).Put(1, 8)
	putBytes(buf, "\xe9")
	result, err = decodeStream(t, buf)
	require.NoError(t, err)
	assert.Equal(t, "éй", result.Text)
}

func TestDecodeECIRequiresByteSegment(t *testing.T) {
	buf := bitutil.NewBitBuffer(nil).
		Put(int(ModeECI), 4).Put(int(charset.UTF8), 8).
		Put(int(ModeNumeric), 4).Put(3, 10).Put(123, 10)
	_, err := decodeStream(t, buf)
	require.ErrorIs(t, err, qrdecode.ErrFormat)
	assert.Contains(t, err.Error(), "ECI designator followed by invalid mode")

	buf = bitutil.NewBitBuffer(nil).
		Put(int(ModeECI), 4).Put(int(charset.UTF8), 8).
		Put(int(ModeTerminator), 4)
	_, err = decodeStream(t, buf)
	assert.ErrorIs(t, err, qrdecode.ErrFormat)

	buf = bitutil.NewBitBuffer(nil).Put(int(ModeECI), 4).Put(int(charset.UTF8), 8)
	_, err = decodeStream(t, buf)
	assert.ErrorIs(t, err, qrdecode.ErrFormat)
}

func TestParseECIDesignator(t *testing.T) {
	tests := []struct {
		bits, width int
		want        charset.ECICharset
	}{
		{26, 8, 26},
		{0x8080, 16, 128},
		{0xBFFF, 16, 16383},
		{0xC04000, 24, 16384},
		{0xCF423F, 24, 999999},
	}
	for _, tt := range tests {
		cs, err := parseECIDesignator(bitutil.NewBitBuffer(nil).Put(tt.bits, tt.width))
		require.NoError(t, err)
		assert.Equal(t, tt.want, cs)
	}

	_, err := parseECIDesignator(bitutil.NewBitBuffer(nil).Put(0xE0, 8))
	assert.ErrorIs(t, err, qrdecode.ErrFormat)
	_, err = parseECIDesignator(bitutil.NewBitBuffer(nil).Put(0xDFFFFF, 24))
	assert.ErrorIs(t, err, qrdecode.ErrFormat)
	_, err = parseECIDesignator(bitutil.NewBitBuffer(nil).Put(0x80, 8))
	assert.ErrorIs(t, err, bitutil.ErrNotEnoughBits)
}

func TestDecodeInvalidMode(t *testing.T) {
	buf := bitutil.NewBitBuffer(nil).Put(0x6, 4).Put(0, 12)
	_, err := decodeStream(t, buf)
	assert.ErrorIs(t, err, ErrInvalidMode)
}

func TestDecodeByteSegmentTruncated(t *testing.T) {
	buf := bitutil.NewBitBuffer(nil).Put(int(ModeByte), 4).Put(5, 8)
	putBytes(buf, "A")
	_, err := decodeStream(t, buf)
	assert.ErrorIs(t, err, qrdecode.ErrFormat)
}

func TestDecodeStopsOnShortTail(t *testing.T) {
	// three leftover bits are padding, not a mode tag
	buf := bitutil.NewBitBuffer(nil).Put(int(ModeNumeric), 4).Put(2, 10).Put(42, 7).Put(0b111, 3)
	result, err := decodeStream(t, buf)
	require.NoError(t, err)
	assert.Equal(t, "42", result.Text)
}

func TestSymbologyModifier(t *testing.T) {
	assert.Equal(t, 1, symbologyModifier(false, false, false))
	assert.Equal(t, 2, symbologyModifier(true, false, false))
	assert.Equal(t, 3, symbologyModifier(false, true, false))
	assert.Equal(t, 4, symbologyModifier(true, true, false))
	assert.Equal(t, 5, symbologyModifier(false, false, true))
	assert.Equal(t, 6, symbologyModifier(true, false, true))
}
