package reedsolomon

import "sync"

// Encoder appends Reed-Solomon error-correction codewords to data. It is
// used to build known-good blocks for exercising the decoder.
type Encoder struct {
	mu         sync.Mutex
	generators []*Poly
}

// NewEncoder returns an Encoder with an empty generator cache.
func NewEncoder() *Encoder {
	return &Encoder{generators: []*Poly{onePoly}}
}

func (e *Encoder) generator(degree int) *Poly {
	e.mu.Lock()
	defer e.mu.Unlock()
	for d := len(e.generators); d <= degree; d++ {
		last := e.generators[d-1]
		e.generators = append(e.generators, last.Multiply(newPoly([]int{1, Exp(d - 1 + generatorBase)})))
	}
	return e.generators[degree]
}

// Encode fills the last numECCodewords entries of block with
// error-correction codewords computed over the preceding data.
func (e *Encoder) Encode(block []int, numECCodewords int) {
	if numECCodewords <= 0 {
		panic("reedsolomon: no error correction codewords")
	}
	numData := len(block) - numECCodewords
	if numData <= 0 {
		panic("reedsolomon: no data codewords")
	}

	info := make([]int, numData)
	copy(info, block[:numData])
	_, remainder, _ := newPoly(info).MultiplyByMonomial(numECCodewords, 1).Divide(e.generator(numECCodewords))

	coefficients := remainder.coefficients
	pad := numECCodewords - len(coefficients)
	for i := 0; i < pad; i++ {
		block[numData+i] = 0
	}
	copy(block[numData+pad:], coefficients)
}
