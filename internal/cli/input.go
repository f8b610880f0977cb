package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	dgio "github.com/dwthomas77/dropgrid/pkg/io"
	"github.com/dwthomas77/dropgrid/pkg/pipeline"
	"github.com/dwthomas77/dropgrid/pkg/region"
	"github.com/dwthomas77/dropgrid/pkg/render"
	"github.com/dwthomas77/dropgrid/pkg/validate"
)

// stdinPath names standard input in file arguments.
const stdinPath = "-"

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// =============================================================================
// Documents
// =============================================================================

// loadRegion reads a region document from path, or from in when path is "-".
func loadRegion(in io.Reader, path string) (dgio.RegionDoc, error) {
	if path == stdinPath {
		return dgio.ReadRegion(in, dgio.FormatJSON)
	}
	return dgio.ImportRegion(path)
}

// loadItems reads an item list from path, or from in when path is "-".
func loadItems(in io.Reader, path string) ([]region.Item, error) {
	if path == stdinPath {
		return dgio.ReadItems(in, dgio.FormatJSON)
	}
	return dgio.ImportItems(path)
}

// loadScenario reads a scenario document from path, or from in when path is "-".
func loadScenario(in io.Reader, path string) (dgio.Scenario, error) {
	if path == stdinPath {
		return dgio.ReadScenario(in, dgio.FormatJSON)
	}
	return dgio.ImportScenario(path)
}

// loadAreas reads an area document from path, or from in when path is "-".
func loadAreas(in io.Reader, path string) ([]hotspot.Area, error) {
	if path == stdinPath {
		return dgio.ReadAreas(in, dgio.FormatJSON)
	}
	return dgio.ImportAreas(path)
}

// writeDoc writes v to path, or to w when path is empty.
func writeDoc(w io.Writer, path string, v any, format string) error {
	if path == "" {
		f, err := dgio.ParseFormat(format)
		if err != nil {
			return err
		}
		return dgio.Write(w, v, f)
	}
	return dgio.Export(v, path)
}

// writeArtifacts writes each artifact to base.format and returns the paths
// in the order of formats.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := artifactPath(base, format)
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath names the file for one rendered format. The graph format is
// an SVG and gets a distinguishing suffix.
func artifactPath(base, format string) string {
	if format == render.FormatGraph {
		return base + ".graph.svg"
	}
	return base + "." + format
}

// basePath derives an output base from an explicit output or the input file.
func basePath(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input == "" || input == stdinPath {
		return "region"
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// =============================================================================
// Flag Values
// =============================================================================

// parseItem parses "ID:SIZE". A bare ID has size 1.
func parseItem(s string) (region.Item, error) {
	id, size, found := strings.Cut(s, ":")
	it := region.Item{ID: strings.TrimSpace(id), Size: 1}
	if found {
		v, err := strconv.ParseFloat(strings.TrimSpace(size), 64)
		if err != nil || v < 0 {
			return region.Item{}, errors.New(errors.ErrCodeInvalidInput, "invalid item size in %q", s)
		}
		it.Size = v
	}
	if err := validate.ID(it.ID); err != nil {
		return region.Item{}, err
	}
	return it, nil
}

// parseLocation parses "ROW[:POS][:new]". Zero parts are left unset.
func parseLocation(s string) (region.Location, error) {
	var loc region.Location
	if s == "" {
		return loc, nil
	}
	parts := strings.Split(s, ":")
	if last := parts[len(parts)-1]; last == "new" {
		loc.NewRow = true
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 || len(parts) > 2 {
		return loc, errors.New(errors.ErrCodeInvalidInput, "location %q: want ROW[:POS][:new]", s)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return loc, errors.New(errors.ErrCodeInvalidInput, "location %q: %q is not a row or position", s, p)
		}
		nums[i] = n
	}
	loc.Row = nums[0]
	if len(nums) == 2 {
		loc.Position = nums[1]
	}
	return loc, nil
}

// parsePoint parses "X,Y".
func parsePoint(s string) (render.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return render.Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q: want X,Y", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return render.Point{}, errors.New(errors.ErrCodeInvalidInput, "point %q: coordinates must be numbers", s)
	}
	return render.Point{X: x, Y: y}, nil
}

// parseFormats splits a comma-separated format list and validates it.
func parseFormats(s string) ([]string, error) {
	if s == "" {
		return []string{render.FormatSVG}, nil
	}
	formats := strings.Split(s, ",")
	for i := range formats {
		formats[i] = strings.TrimSpace(formats[i])
	}
	return formats, pipeline.ValidateFormats(formats)
}

// =============================================================================
// Lookups
// =============================================================================

// requireIDs checks that every id is in r. Unknown ids fail with the
// closest known ids as suggestions.
func requireIDs(r region.Region, ids []string) error {
	known := r.IDs()
	for _, id := range ids {
		if _, ok := r.Find(id); ok {
			continue
		}
		return &errors.NotFoundError{ID: id, Suggestions: suggest(id, known)}
	}
	return nil
}

// suggest returns up to maxSuggestions ids that fuzzily match query.
func suggest(query string, ids []string) []string {
	matches := fuzzy.Find(query, ids)
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// =============================================================================
// Shared Flags
// =============================================================================

// packingFlags override the configured packing settings.
type packingFlags struct {
	maxSize float64
	sizer   string
}

func (f *packingFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.maxSize, "max-size", 0, "row capacity (default from config)")
	cmd.Flags().StringVar(&f.sizer, "sizer", "", "sizer: field, const:N, payload:KEY or js:EXPR (default from config)")
}

func (f *packingFlags) apply(opts *pipeline.Options) {
	if f.maxSize > 0 {
		opts.MaxSize = f.maxSize
	}
	if f.sizer != "" {
		opts.Sizer = f.sizer
	}
}

// outputFlags choose where and how documents are written.
type outputFlags struct {
	output  string
	format  string
	noCache bool
	refresh bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&f.format, "format", "json", "stdout format: json or yaml")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even when cached")
}
