package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Write encodes v in format f. JSON output is indented; YAML uses
// two-space indentation.
func Write(w io.Writer, v any, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
}

// WriteRegion encodes a region document. The output can be re-imported
// with [ReadRegion].
func WriteRegion(w io.Writer, doc RegionDoc, f Format) error {
	return Write(w, doc, f)
}

// Export writes v to path, picking the format from the extension.
func Export(v any, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, v, FormatFromPath(path)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportRegion writes a region document to path.
func ExportRegion(doc RegionDoc, path string) error {
	return Export(doc, path)
}
