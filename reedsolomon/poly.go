package reedsolomon

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyPolynomial is returned when a polynomial is built from no
	// coefficients.
	ErrEmptyPolynomial = errors.New("reedsolomon: empty coefficients")
	// ErrDivideByZero is returned when dividing by the zero polynomial.
	ErrDivideByZero = errors.New("reedsolomon: divide by zero polynomial")
)

// Poly is a polynomial over GF(256). Coefficients are stored from the
// highest degree term down to the constant term. Values are immutable;
// every operation returns a new Poly.
type Poly struct {
	coefficients []int
}

// NewPoly builds a polynomial, stripping leading zero coefficients.
func NewPoly(coefficients []int) (*Poly, error) {
	if len(coefficients) == 0 {
		return nil, ErrEmptyPolynomial
	}
	c := make([]int, len(coefficients))
	copy(c, coefficients)
	return newPoly(c), nil
}

// newPoly takes ownership of coefficients.
func newPoly(coefficients []int) *Poly {
	if len(coefficients) > 1 && coefficients[0] == 0 {
		first := 1
		for first < len(coefficients) && coefficients[first] == 0 {
			first++
		}
		if first == len(coefficients) {
			return zeroPoly
		}
		coefficients = coefficients[first:]
	}
	return &Poly{coefficients: coefficients}
}

// Coefficients returns a copy of the coefficients, highest degree first.
func (p *Poly) Coefficients() []int {
	c := make([]int, len(p.coefficients))
	copy(c, p.coefficients)
	return c
}

// Degree returns the degree of the polynomial.
func (p *Poly) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero reports whether p is the zero polynomial.
func (p *Poly) IsZero() bool {
	return p.coefficients[0] == 0
}

// Coefficient returns the coefficient of the x^degree term.
func (p *Poly) Coefficient(degree int) int {
	return p.coefficients[len(p.coefficients)-1-degree]
}

// EvaluateAt evaluates the polynomial at point.
func (p *Poly) EvaluateAt(point int) int {
	switch point {
	case 0:
		return p.Coefficient(0)
	case 1:
		sum := 0
		for _, c := range p.coefficients {
			sum = AddOrSubtract(sum, c)
		}
		return sum
	}
	result := p.coefficients[0]
	for _, c := range p.coefficients[1:] {
		result = AddOrSubtract(Multiply(point, result), c)
	}
	return result
}

// AddOrSubtract returns p + other, which equals p - other.
func (p *Poly) AddOrSubtract(other *Poly) *Poly {
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}

	smaller, larger := p.coefficients, other.coefficients
	if len(smaller) > len(larger) {
		smaller, larger = larger, smaller
	}
	sum := make([]int, len(larger))
	diff := len(larger) - len(smaller)
	copy(sum, larger[:diff])
	for i := diff; i < len(larger); i++ {
		sum[i] = AddOrSubtract(smaller[i-diff], larger[i])
	}
	return newPoly(sum)
}

// Multiply returns p * other.
func (p *Poly) Multiply(other *Poly) *Poly {
	if p.IsZero() || other.IsZero() {
		return zeroPoly
	}
	product := make([]int, len(p.coefficients)+len(other.coefficients)-1)
	for i, a := range p.coefficients {
		for j, b := range other.coefficients {
			product[i+j] = AddOrSubtract(product[i+j], Multiply(a, b))
		}
	}
	return newPoly(product)
}

// MultiplyScalar returns p * scalar.
func (p *Poly) MultiplyScalar(scalar int) *Poly {
	switch scalar {
	case 0:
		return zeroPoly
	case 1:
		return p
	}
	product := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		product[i] = Multiply(c, scalar)
	}
	return newPoly(product)
}

// MultiplyByMonomial returns p * coefficient * x^degree. It panics if
// degree < 0.
func (p *Poly) MultiplyByMonomial(degree, coefficient int) *Poly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return zeroPoly
	}
	product := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = Multiply(c, coefficient)
	}
	return newPoly(product)
}

// Divide returns the quotient and remainder of p / other.
func (p *Poly) Divide(other *Poly) (quotient, remainder *Poly, err error) {
	if other.IsZero() {
		return nil, nil, ErrDivideByZero
	}

	quotient = zeroPoly
	remainder = p
	inverseLeading := Inverse(other.Coefficient(other.Degree()))

	for remainder.Degree() >= other.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - other.Degree()
		scale := Multiply(remainder.Coefficient(remainder.Degree()), inverseLeading)
		quotient = quotient.AddOrSubtract(BuildMonomial(degreeDiff, scale))
		remainder = remainder.AddOrSubtract(other.MultiplyByMonomial(degreeDiff, scale))
	}
	return quotient, remainder, nil
}

// Mod returns the remainder of p / other.
func (p *Poly) Mod(other *Poly) (*Poly, error) {
	if other.IsZero() {
		return nil, ErrDivideByZero
	}
	if p.Degree() < other.Degree() || p.IsZero() {
		return p, nil
	}
	scale := Multiply(p.Coefficient(p.Degree()), Inverse(other.Coefficient(other.Degree())))
	next := p.AddOrSubtract(other.MultiplyByMonomial(p.Degree()-other.Degree(), scale))
	return next.Mod(other)
}

// Equal reports whether p and other have the same coefficients.
func (p *Poly) Equal(other *Poly) bool {
	if len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i, c := range p.coefficients {
		if other.coefficients[i] != c {
			return false
		}
	}
	return true
}

func (p *Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for degree := p.Degree(); degree >= 0; degree-- {
		c := p.Coefficient(degree)
		if c == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" + ")
		}
		if c != 1 || degree == 0 {
			fmt.Fprintf(&sb, "a^%d", Log(c))
		}
		switch degree {
		case 0:
		case 1:
			sb.WriteString("x")
		default:
			fmt.Fprintf(&sb, "x^%d", degree)
		}
	}
	return sb.String()
}
