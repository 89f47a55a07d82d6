package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type scanResult struct {
	File   string      `json:"file" yaml:"file"`
	Symbol *symbolInfo `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

type symbolInfo struct {
	Text                string            `json:"text" yaml:"text"`
	Version             int               `json:"version" yaml:"version"`
	EccLevel            string            `json:"ecc_level" yaml:"ecc_level"`
	MaskPattern         int               `json:"mask_pattern" yaml:"mask_pattern"`
	SymbologyIdentifier string            `json:"symbology_identifier" yaml:"symbology_identifier"`
	ErrorsCorrected     int               `json:"errors_corrected" yaml:"errors_corrected"`
	Mirrored            bool              `json:"mirrored,omitempty" yaml:"mirrored,omitempty"`
	StructuredAppend    *structuredAppend `json:"structured_append,omitempty" yaml:"structured_append,omitempty"`
}

type structuredAppend struct {
	Index  int `json:"index" yaml:"index"`
	Total  int `json:"total" yaml:"total"`
	Parity int `json:"parity" yaml:"parity"`
}

func writeResults(w io.Writer, format string, results []scanResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(results)
	default:
		for _, r := range results {
			var err error
			if r.Symbol != nil {
				_, err = fmt.Fprintf(w, "%s: %s\n", r.File, r.Symbol.Text)
			} else {
				_, err = fmt.Fprintf(w, "%s: error: %s\n", r.File, r.Error)
			}
			if err != nil {
				return err
			}
		}
		return nil
	}
}
