package reedsolomon

import (
	"errors"
	"fmt"
)

// ErrDecode indicates that a block holds more errors than its
// error-correction codewords can repair.
var ErrDecode = errors.New("reedsolomon: decoding error")

func decodeError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDecode, reason)
}

// Decode corrects received in place. The last numECCodewords values are
// the error-correction codewords. It returns the number of corrected
// codewords.
func Decode(received []int, numECCodewords int) (int, error) {
	poly, err := NewPoly(received)
	if err != nil {
		return 0, err
	}

	syndromes := make([]int, numECCodewords)
	clean := true
	for i := 0; i < numECCodewords; i++ {
		eval := poly.EvaluateAt(Exp(i + generatorBase))
		syndromes[numECCodewords-1-i] = eval
		if eval != 0 {
			clean = false
		}
	}
	if clean {
		return 0, nil
	}

	sigma, omega, err := runEuclideanAlgorithm(BuildMonomial(numECCodewords, 1), newPoly(syndromes), numECCodewords)
	if err != nil {
		return 0, err
	}
	locations, err := findErrorLocations(sigma)
	if err != nil {
		return 0, err
	}
	magnitudes := findErrorMagnitudes(omega, locations)
	for i, loc := range locations {
		position := len(received) - 1 - Log(loc)
		if position < 0 {
			return 0, decodeError("bad error location")
		}
		received[position] = AddOrSubtract(received[position], magnitudes[i])
	}
	return len(locations), nil
}

// runEuclideanAlgorithm returns the error locator and error evaluator
// polynomials, both normalized so that sigma(0) == 1.
func runEuclideanAlgorithm(a, b *Poly, twoS int) (sigma, omega *Poly, err error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	rLast, r := a, b
	tLast, t := zeroPoly, onePoly

	for 2*r.Degree() >= twoS {
		rLastLast, tLastLast := rLast, tLast
		rLast, tLast = r, t
		if rLast.IsZero() {
			return nil, nil, decodeError("r_{i-1} was zero")
		}

		q, remainder, err := rLastLast.Divide(rLast)
		if err != nil {
			return nil, nil, err
		}
		r = remainder
		t = q.Multiply(tLast).AddOrSubtract(tLastLast)

		if r.Degree() >= rLast.Degree() {
			return nil, nil, decodeError("division algorithm failed to reduce polynomial")
		}
	}

	sigmaTildeAtZero := t.Coefficient(0)
	if sigmaTildeAtZero == 0 {
		return nil, nil, decodeError("sigma tilde(0) was zero")
	}
	inverse := Inverse(sigmaTildeAtZero)
	return t.MultiplyScalar(inverse), r.MultiplyScalar(inverse), nil
}

// findErrorLocations runs a Chien search over every non-zero element.
func findErrorLocations(locator *Poly) ([]int, error) {
	numErrors := locator.Degree()
	if numErrors == 1 {
		return []int{locator.Coefficient(1)}, nil
	}
	result := make([]int, 0, numErrors)
	for i := 1; i < fieldSize && len(result) < numErrors; i++ {
		if locator.EvaluateAt(i) == 0 {
			result = append(result, Inverse(i))
		}
	}
	if len(result) != numErrors {
		return nil, decodeError("error locator degree does not match number of roots")
	}
	return result, nil
}

// findErrorMagnitudes applies Forney's formula.
func findErrorMagnitudes(evaluator *Poly, locations []int) []int {
	result := make([]int, len(locations))
	for i, loc := range locations {
		xiInverse := Inverse(loc)
		denominator := 1
		for j, other := range locations {
			if i == j {
				continue
			}
			// 1 + other*xiInverse, written as a bit flip of the low bit.
			term := Multiply(other, xiInverse)
			denominator = Multiply(denominator, term^1)
		}
		result[i] = Multiply(evaluator.EvaluateAt(xiInverse), Inverse(denominator))
	}
	return result
}
