package decoder

import (
	"testing"

	goqrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/require"
)

// quietZone is the border go-qrcode draws around every symbol.
const quietZone = 4

// encodeSymbol renders content with go-qrcode and returns its modules
// without the quiet zone.
func encodeSymbol(t *testing.T, content string, level goqrcode.RecoveryLevel) *SymbolMatrix {
	t.Helper()
	q, err := goqrcode.New(content, level)
	require.NoError(t, err)
	bitmap := q.Bitmap()

	m, err := NewSymbolMatrix(len(bitmap) - 2*quietZone)
	require.NoError(t, err)
	for y := 0; y < m.Dimension(); y++ {
		for x := 0; x < m.Dimension(); x++ {
			m.Set(x, y, bitmap[y+quietZone][x+quietZone])
		}
	}
	return m
}

func sequence(n, step int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*step + 1)
	}
	return b
}
