package reedsolomon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpLogBijection(t *testing.T) {
	for a := 1; a < 256; a++ {
		assert.Equal(t, a, Exp(Log(a)), "exp(log(%d))", a)
	}
	seen := make(map[int]bool)
	for i := 0; i < 255; i++ {
		seen[Exp(i)] = true
	}
	assert.Len(t, seen, 255)
	assert.Equal(t, 1, Exp(0))
	assert.Equal(t, 2, Exp(1))
	// 2^8 reduced by 0x11D
	assert.Equal(t, 0x1D, Exp(8))
}

func TestFieldAlgebra(t *testing.T) {
	for a := 0; a < 256; a++ {
		assert.Equal(t, 0, Multiply(a, 0))
		assert.Equal(t, 0, Multiply(0, a))
		assert.Equal(t, a, Multiply(a, 1))
		assert.Equal(t, 0, AddOrSubtract(a, a))
		for b := 0; b < 256; b += 17 {
			assert.Equal(t, Multiply(a, b), Multiply(b, a))
		}
		if a != 0 {
			assert.Equal(t, 1, Multiply(a, Inverse(a)), "a=%d", a)
		}
	}
}

func TestInvalidElementsPanic(t *testing.T) {
	assert.Panics(t, func() { Log(0) })
	assert.Panics(t, func() { Log(-3) })
	assert.Panics(t, func() { Inverse(0) })
	assert.Panics(t, func() { BuildMonomial(-1, 5) })
}

func TestBuildMonomial(t *testing.T) {
	m := BuildMonomial(3, 7)
	require.Equal(t, 3, m.Degree())
	assert.Equal(t, 7, m.Coefficient(3))
	assert.Equal(t, 0, m.Coefficient(0))
	assert.True(t, BuildMonomial(4, 0).IsZero())
}
