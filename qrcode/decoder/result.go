package decoder

// DecodedResult is the outcome of decoding one symbol.
type DecodedResult struct {
	// RawBytes are the corrected data codewords.
	RawBytes []byte
	NumBits  int
	Text     string
	// ByteSegments holds the raw bytes of each BYTE segment.
	ByteSegments [][]byte

	Version     *Version
	EccLevel    EccLevel
	MaskPattern MaskPattern

	// StructuredAppendSequence and StructuredAppendParity are -1 unless
	// the symbol is part of a structured append sequence.
	StructuredAppendSequence int
	StructuredAppendParity   int

	// SymbologyModifier is the AIM symbology identifier modifier, 1 to 6.
	SymbologyModifier int
	ErrorsCorrected   int
	// Mirrored is set when the symbol only decoded after mirroring.
	Mirrored bool
}

// HasStructuredAppend reports whether the symbol carried a structured
// append header.
func (r *DecodedResult) HasStructuredAppend() bool {
	return r.StructuredAppendSequence >= 0 && r.StructuredAppendParity >= 0
}
