package decoder

// Decoder turns symbol matrices into decoded results.
type Decoder struct {
	opts DecodeOptions
}

// NewDecoder returns a Decoder using opts for bitstream decoding.
func NewDecoder(opts DecodeOptions) *Decoder {
	return &Decoder{opts: opts}
}

// Decode decodes m. If that fails, the diagonal mirror of m is tried
// once with all metadata forgotten; if the mirror fails as well, the
// error of the first attempt is returned. m itself is not modified.
func (d *Decoder) Decode(m *SymbolMatrix) (*DecodedResult, error) {
	result, err := d.decodeMatrix(m.Clone())
	if err == nil {
		return result, nil
	}

	mirrored := m.Clone().ResetVersionInfo().MirrorDiagonal()
	result, mirrorErr := d.decodeMatrix(mirrored)
	if mirrorErr != nil {
		return nil, err
	}
	result.Mirrored = true
	return result, nil
}

func (d *Decoder) decodeMatrix(m *SymbolMatrix) (*DecodedResult, error) {
	codewords, fi, err := m.ReadCodewords()
	if err != nil {
		return nil, err
	}
	version := m.Version()

	data, corrected, err := NewReedSolomonDecoder(version, fi.EccLevel).Decode(codewords)
	if err != nil {
		return nil, err
	}
	result, err := DecodeBitStream(data, version, fi.EccLevel, fi.MaskPattern, d.opts)
	if err != nil {
		return nil, err
	}
	result.ErrorsCorrected = corrected
	return result, nil
}
