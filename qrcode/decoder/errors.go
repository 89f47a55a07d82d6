package decoder

import (
	"errors"
	"fmt"

	"github.com/ericlevine/qrdecode"
)

var (
	// ErrFormatInfo is returned when neither copy of the format
	// information is within correcting distance of a valid pattern.
	ErrFormatInfo = fmt.Errorf("%w: unreadable format information", qrdecode.ErrFormat)

	// ErrVersionInfo is returned when the version information cannot be
	// read or disagrees with the symbol size.
	ErrVersionInfo = fmt.Errorf("%w: unreadable version information", qrdecode.ErrFormat)

	// ErrCodewordCount is returned when the zigzag walk does not yield the
	// number of codewords the version defines.
	ErrCodewordCount = fmt.Errorf("%w: codeword count mismatch", qrdecode.ErrFormat)

	// ErrInvalidMode is returned for a 4-bit mode tag outside the defined set.
	ErrInvalidMode = fmt.Errorf("%w: invalid data mode", qrdecode.ErrFormat)

	// ErrDimension is returned for grids whose side is not 4*v+17 for a
	// version v in 1..40.
	ErrDimension = fmt.Errorf("%w: invalid symbol dimension", qrdecode.ErrFormat)

	errInvalidEccLevel    = errors.New("qrcode/decoder: invalid ecc level")
	errInvalidMaskPattern = errors.New("qrcode/decoder: invalid mask pattern")
	errInvalidVersion     = errors.New("qrcode/decoder: invalid version number")
)

// formatErrorf wraps qrdecode.ErrFormat with detail.
func formatErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{qrdecode.ErrFormat}, args...)...)
}
