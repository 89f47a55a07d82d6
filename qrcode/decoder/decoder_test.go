package decoder

import (
	"strings"
	"testing"

	goqrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/qrdecode"
)

func TestDecodeHelloWorld(t *testing.T) {
	m := encodeSymbol(t, "HELLO WORLD", goqrcode.High)

	result, err := NewDecoder(DecodeOptions{}).Decode(m)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", result.Text)
	assert.Equal(t, EccLevelQ, result.EccLevel)
	assert.Equal(t, 1, result.Version.Number)
	assert.Len(t, result.RawBytes, 13)
	assert.Equal(t, 104, result.NumBits)
	assert.Zero(t, result.ErrorsCorrected)
	assert.False(t, result.Mirrored)
	assert.False(t, result.HasStructuredAppend())
	assert.Equal(t, 1, result.SymbologyModifier)
}

func TestDecodeMirrored(t *testing.T) {
	m := encodeSymbol(t, "HELLO WORLD", goqrcode.High).MirrorDiagonal()

	result, err := NewDecoder(DecodeOptions{}).Decode(m)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", result.Text)
	assert.Equal(t, EccLevelQ, result.EccLevel)
	assert.True(t, result.Mirrored)

	// the caller's matrix is left alone
	assert.True(t, m.Mirrored())
	assert.Nil(t, m.Version())
}

func TestDecodeCorrectsDamagedModules(t *testing.T) {
	m := encodeSymbol(t, "HELLO WORLD", goqrcode.High)
	// first and second codeword
	for _, p := range []point{{20, 20}, {19, 19}, {20, 16}} {
		m.Set(p.x, p.y, !m.Get(p.x, p.y))
	}

	result, err := NewDecoder(DecodeOptions{}).Decode(m)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", result.Text)
	assert.Equal(t, 2, result.ErrorsCorrected)
}

func TestDecodeReportsFirstError(t *testing.T) {
	m, err := NewSymbolMatrix(21)
	require.NoError(t, err)
	m.SetFormatInfo(EccLevelQ, 0)

	_, err = NewDecoder(DecodeOptions{}).Decode(m)
	require.Error(t, err)
	assert.ErrorIs(t, err, qrdecode.ErrChecksum)
}

func TestDecodeContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		level   goqrcode.RecoveryLevel
	}{
		{"numeric", "0123456789012345", goqrcode.Medium},
		{"utf8 bytes", "héllo wörld", goqrcode.Low},
		{"mixed", "https://example.com/QR?id=12345", goqrcode.Highest},
		{"large", strings.Repeat("qrdecode ", 30), goqrcode.Medium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := encodeSymbol(t, tt.content, tt.level)
			result, err := NewDecoder(DecodeOptions{}).Decode(m)
			require.NoError(t, err)
			assert.Equal(t, tt.content, result.Text)
			assert.Equal(t, m.Dimension(), result.Version.Dimension())
		})
	}
}

func TestDecodeCharacterSetHint(t *testing.T) {
	// ISO-8859-1 bytes without an ECI designator
	m := encodeSymbol(t, "caf\xe9", goqrcode.Low)

	result, err := NewDecoder(DecodeOptions{}).Decode(m)
	require.NoError(t, err)
	assert.Equal(t, "café", result.Text)
	require.Len(t, result.ByteSegments, 1)
	assert.Equal(t, []byte("caf\xe9"), result.ByteSegments[0])

	result, err = NewDecoder(DecodeOptions{CharacterSet: "windows-1252"}).Decode(m)
	require.NoError(t, err)
	assert.Equal(t, "café", result.Text)
}
