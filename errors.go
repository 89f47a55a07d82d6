package qrdecode

import "errors"

// Decode failures wrap one of these, so callers can classify them with
// errors.Is.
var (
	// ErrNotFound is returned when no symbol can be located, or when the
	// image has no usable contrast.
	ErrNotFound = errors.New("qr code not found")

	// ErrChecksum is returned when error correction cannot repair the
	// codewords.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when the symbol metadata or bitstream is
	// malformed.
	ErrFormat = errors.New("format error")
)
