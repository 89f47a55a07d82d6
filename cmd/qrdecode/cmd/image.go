package cmd

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/afero"

	// Formats beyond the standard library's.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// loadImage decodes the image in name, undoing zstd or gzip compression
// chosen by extension and any EXIF orientation. Images larger than
// maxDimension on either side are shrunk to fit; 0 disables that.
func loadImage(fs afero.Fs, name string, maxDimension int) (image.Image, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		r = dec
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if maxDimension > 0 {
		b := img.Bounds()
		if b.Dx() > maxDimension || b.Dy() > maxDimension {
			img = imaging.Fit(img, maxDimension, maxDimension, imaging.Box)
		}
	}
	return img, nil
}
