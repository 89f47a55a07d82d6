package cmd

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/ericlevine/qrdecode"
	"github.com/ericlevine/qrdecode/internal/metrics"
	"github.com/ericlevine/qrdecode/qrcode"
	"github.com/ericlevine/qrdecode/qrcode/decoder"
	"github.com/liyue201/goqr"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newScanCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [files...]",
		Short: "Decode the QR code in each image file",
		Long: `Decode the QR code in each image file. Files are decoded concurrently
and results are printed in argument order. The exit status is non-zero
when any file could not be decoded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.scan(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}

	flags := cmd.Flags()
	flags.StringP("format", "f", "text", "output format (text, json, yaml)")
	flags.String("binarizer", "hybrid", "binarizer (hybrid, histogram)")
	flags.String("charset", "", "character set for byte segments without ECI (default is to guess)")
	flags.Bool("inverted", false, "also try light symbols on a dark background")
	flags.IntP("concurrency", "j", 4, "number of files decoded in parallel")
	flags.Int("max-dimension", 0, "shrink larger images to this many pixels per side (0 keeps the original)")
	flags.Bool("cross-check", false, "compare every result with a second, independent decoder")
	flags.String("metrics-file", "", "write Prometheus metrics to this textfile after the scan")

	v := a.loader.GetViper()
	_ = v.BindPFlag("output.format", flags.Lookup("format"))
	_ = v.BindPFlag("scan.binarizer", flags.Lookup("binarizer"))
	_ = v.BindPFlag("scan.character_set", flags.Lookup("charset"))
	_ = v.BindPFlag("scan.also_inverted", flags.Lookup("inverted"))
	_ = v.BindPFlag("scan.concurrency", flags.Lookup("concurrency"))
	_ = v.BindPFlag("scan.max_dimension", flags.Lookup("max-dimension"))
	_ = v.BindPFlag("scan.cross_check", flags.Lookup("cross-check"))
	_ = v.BindPFlag("metrics.file", flags.Lookup("metrics-file"))

	return cmd
}

func (a *app) scan(ctx context.Context, out io.Writer, files []string) error {
	reader := qrcode.NewReader(a.cfg.ReaderOptions(a.logger)...)
	m := metrics.NewScan()
	results := make([]scanResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Scan.Concurrency)
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = a.scanFile(reader, m, name)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeResults(out, a.cfg.Output.Format, results); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	if a.cfg.Metrics.File != "" {
		if err := m.WriteToTextfile(a.cfg.Metrics.File); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}

func (a *app) scanFile(reader *qrcode.Reader, m *metrics.Scan, name string) scanResult {
	start := time.Now()
	img, result, err := a.decodeFile(reader, name)
	elapsed := time.Since(start)
	if err != nil {
		m.ObserveFailed(elapsed, err)
		a.logger.Warn("scan failed", "file", name, "status", metrics.Status(err), "error", err)
		return scanResult{File: name, Error: err.Error()}
	}

	m.ObserveDecoded(elapsed, result.EccLevel.String(), result.ErrorsCorrected)
	a.logger.Info("decoded", "file", name, "version", result.Version.Number, "duration", elapsed)
	if a.cfg.Scan.CrossCheck {
		a.crossCheck(m, name, img, result.Text)
	}
	return scanResult{File: name, Symbol: newSymbolInfo(result)}
}

func (a *app) decodeFile(reader *qrcode.Reader, name string) (image.Image, *decoder.DecodedResult, error) {
	img, err := loadImage(a.fs, name, a.cfg.Scan.MaxDimension)
	if err != nil {
		return nil, nil, err
	}
	result, err := reader.Decode(qrdecode.NewImageLuminanceSource(img))
	if err != nil {
		return nil, nil, err
	}
	return img, result, nil
}

// crossCheck decodes img again with goqr. Disagreement is logged, not
// treated as a failure.
func (a *app) crossCheck(m *metrics.Scan, name string, img image.Image, text string) {
	codes, err := goqr.Recognize(img)
	if err != nil || len(codes) == 0 {
		m.ObserveCrossCheck("unavailable")
		a.logger.Warn("cross-check found no symbol", "file", name, "error", err)
		return
	}
	payload := make([]byte, 0, len(codes[0].Payload))
	for _, b := range codes[0].Payload {
		payload = append(payload, byte(b))
	}
	if string(payload) != text {
		m.ObserveCrossCheck("mismatch")
		a.logger.Warn("cross-check mismatch", "file", name, "text", text, "other", string(payload))
		return
	}
	m.ObserveCrossCheck("match")
}

func newSymbolInfo(r *decoder.DecodedResult) *symbolInfo {
	info := &symbolInfo{
		Text:                r.Text,
		Version:             r.Version.Number,
		EccLevel:            r.EccLevel.String(),
		MaskPattern:         int(r.MaskPattern),
		SymbologyIdentifier: qrcode.SymbologyIdentifier(r),
		ErrorsCorrected:     r.ErrorsCorrected,
		Mirrored:            r.Mirrored,
	}
	if r.HasStructuredAppend() {
		info.StructuredAppend = &structuredAppend{
			Index:  r.StructuredAppendSequence >> 4,
			Total:  r.StructuredAppendSequence&0x0F + 1,
			Parity: r.StructuredAppendParity,
		}
	}
	return info
}
