// Package qrcode reads QR codes from images: it binarizes luminance,
// detects the symbol and decodes it.
package qrcode

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/binarizer"
	"github.com/ericlevine/qrdecode/bitutil"
	"github.com/ericlevine/qrdecode/qrcode/decoder"
	"github.com/ericlevine/qrdecode/qrcode/detector"
)

// Detector extracts an oriented symbol from a binarized image.
type Detector interface {
	Detect(image *bitutil.BitMatrix) (*decoder.SymbolMatrix, error)
}

// BinarizerFunc builds a binarizer over a luminance source.
type BinarizerFunc func(qrdecode.LuminanceSource) qrdecode.Binarizer

// Hybrid and Histogram are the available binarizers.
var (
	Hybrid    BinarizerFunc = func(s qrdecode.LuminanceSource) qrdecode.Binarizer { return binarizer.NewHybrid(s) }
	Histogram BinarizerFunc = func(s qrdecode.LuminanceSource) qrdecode.Binarizer { return binarizer.NewGlobalHistogram(s) }
)

// Reader decodes QR codes. It holds no per-image state and may be used
// from several goroutines.
type Reader struct {
	binarizer    BinarizerFunc
	detector     Detector
	decoder      *decoder.Decoder
	alsoInverted bool
	logger       *slog.Logger
}

// Option configures a Reader.
type Option func(*readerConfig)

type readerConfig struct {
	binarizer    BinarizerFunc
	detector     Detector
	opts         decoder.DecodeOptions
	alsoInverted bool
	logger       *slog.Logger
}

// WithBinarizer selects how luminance is thresholded. The default is
// Hybrid.
func WithBinarizer(b BinarizerFunc) Option {
	return func(c *readerConfig) { c.binarizer = b }
}

// WithDetector replaces the pure symbol detector.
func WithDetector(d Detector) Option {
	return func(c *readerConfig) { c.detector = d }
}

// WithCharacterSet sets the character set assumed for byte segments
// without an ECI designator.
func WithCharacterSet(name string) Option {
	return func(c *readerConfig) { c.opts.CharacterSet = name }
}

// WithAlsoInverted retries with light and dark swapped, for light
// symbols on a dark background.
func WithAlsoInverted() Option {
	return func(c *readerConfig) { c.alsoInverted = true }
}

// WithLogger sets the logger for debug output. By default nothing is
// logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *readerConfig) { c.logger = l }
}

// NewReader returns a Reader.
func NewReader(opts ...Option) *Reader {
	c := readerConfig{
		binarizer: Hybrid,
		detector:  detector.NewPure(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(&c)
	}
	return &Reader{
		binarizer:    c.binarizer,
		detector:     c.detector,
		decoder:      decoder.NewDecoder(c.opts),
		alsoInverted: c.alsoInverted,
		logger:       c.logger,
	}
}

// Decode binarizes source and decodes the symbol in it.
func (r *Reader) Decode(source qrdecode.LuminanceSource) (*decoder.DecodedResult, error) {
	return r.DecodeBitmap(qrdecode.NewBinaryBitmap(r.binarizer(source)))
}

// DecodeBitmap decodes the symbol in an already binarized image.
func (r *Reader) DecodeBitmap(image *qrdecode.BinaryBitmap) (*decoder.DecodedResult, error) {
	matrix, err := image.BlackMatrix()
	if err != nil {
		return nil, err
	}
	result, err := r.decodeMatrix(matrix)
	if err == nil || !r.alsoInverted {
		return result, err
	}

	r.logger.Debug("retrying inverted", "error", err)
	result, invErr := r.decodeMatrix(invert(matrix))
	if invErr != nil {
		return nil, err
	}
	return result, nil
}

func (r *Reader) decodeMatrix(matrix *bitutil.BitMatrix) (*decoder.DecodedResult, error) {
	symbol, err := r.detector.Detect(matrix)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("symbol detected", "dimension", symbol.Dimension())

	result, err := r.decoder.Decode(symbol)
	if err != nil {
		return nil, fmt.Errorf("qrcode: decoding %dx%d symbol: %w", symbol.Dimension(), symbol.Dimension(), err)
	}
	if result.Mirrored {
		r.logger.Debug("decoded mirrored symbol")
	}
	r.logger.Debug("symbol decoded",
		"version", result.Version.Number,
		"ecc", result.EccLevel.String(),
		"mask", int(result.MaskPattern),
		"errors_corrected", result.ErrorsCorrected)
	return result, nil
}

func invert(m *bitutil.BitMatrix) *bitutil.BitMatrix {
	inv := m.Clone()
	for y := 0; y < inv.Height(); y++ {
		for x := 0; x < inv.Width(); x++ {
			inv.Flip(x, y)
		}
	}
	return inv
}

// SymbologyIdentifier returns the AIM identifier, "]Q" followed by the
// modifier, for a decoded result.
func SymbologyIdentifier(r *decoder.DecodedResult) string {
	return fmt.Sprintf("]Q%d", r.SymbologyModifier)
}
