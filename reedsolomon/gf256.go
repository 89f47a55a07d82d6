// Package reedsolomon implements arithmetic over GF(256) and the
// Reed-Solomon error correction used by QR codes.
package reedsolomon

// QR codes use the field generated by x^8 + x^4 + x^3 + x^2 + 1 with a
// generator base of 0.
const (
	fieldSize     = 256
	primitive     = 0x011D
	generatorBase = 0
)

var (
	expTable [fieldSize]int
	logTable [fieldSize]int

	zeroPoly = &Poly{coefficients: []int{0}}
	onePoly  = &Poly{coefficients: []int{1}}
)

func init() {
	x := 1
	for i := 0; i < fieldSize; i++ {
		expTable[i] = x
		x <<= 1
		if x >= fieldSize {
			x ^= primitive
			x &= fieldSize - 1
		}
	}
	for i := 0; i < fieldSize-1; i++ {
		logTable[expTable[i]] = i
	}
}

// Zero returns the zero polynomial.
func Zero() *Poly { return zeroPoly }

// One returns the constant polynomial 1.
func One() *Poly { return onePoly }

// AddOrSubtract adds or subtracts two field elements. Both are XOR in
// characteristic 2.
func AddOrSubtract(a, b int) int {
	return a ^ b
}

// Exp returns 2 raised to the power a. a must be in [0, 255].
func Exp(a int) int {
	return expTable[a]
}

// Log returns the base 2 logarithm of a. It panics if a < 1.
func Log(a int) int {
	if a < 1 {
		panic("reedsolomon: log of non-positive element")
	}
	return logTable[a]
}

// Inverse returns the multiplicative inverse of a. It panics if a is 0.
func Inverse(a int) int {
	if a == 0 {
		panic("reedsolomon: inverse of zero")
	}
	return expTable[fieldSize-logTable[a]-1]
}

// Multiply returns a*b in the field.
func Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[(logTable[a]+logTable[b])%(fieldSize-1)]
}

// BuildMonomial returns coefficient * x^degree. It panics if degree < 0.
func BuildMonomial(degree, coefficient int) *Poly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return zeroPoly
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return newPoly(coefficients)
}
