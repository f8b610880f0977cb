// Package pipeline runs region operations for the CLI and the API.
//
// It wraps the pure core (region.Rebuild, region.Pack, hotspot testing)
// with validation, caching, hooks and rendering, so every entry point
// behaves the same way.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Region:  prior,
//	    Action:  region.Remove("hero"),
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// Stages can run on their own:
//
//	rebuilt, err := runner.Rebuild(ctx, opts)
//	packed, err := runner.Pack(ctx, opts)
//	artifacts, err := runner.Render(ctx, rebuilt, opts)
//
// The core keeps no state between calls. Caching happens only here, keyed
// by a hash of every input, so a cached result always equals a fresh one.
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dwthomas77/dropgrid/pkg/cache"
	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/measure"
	"github.com/dwthomas77/dropgrid/pkg/region"
	"github.com/dwthomas77/dropgrid/pkg/render"
	"github.com/dwthomas77/dropgrid/pkg/sizing"
	"github.com/dwthomas77/dropgrid/pkg/validate"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSizer reads Item.Size.
	DefaultSizer = "field"

	// DefaultBatchLimit bounds concurrent jobs in Batch.
	DefaultBatchLimit = 4
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	render.FormatSVG:   true,
	render.FormatPNG:   true,
	render.FormatDOT:   true,
	render.FormatGraph: true,
}

// =============================================================================
// Options
// =============================================================================

// Options contains all inputs for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Rebuild inputs
	Region region.Region `json:"region"`
	Action region.Action `json:"action"`

	// Pack input
	Items []region.Item `json:"items,omitempty"`

	// Packing
	MaxSize float64 `json:"maxSize,omitempty"`
	Sizer   string  `json:"sizer,omitempty"`

	// Measuring and hit-testing
	Metrics  measure.Metrics   `json:"metrics"`
	Hotspots hotspot.Overrides `json:"hotspots"`

	// Render options
	Formats  []string      `json:"formats,omitempty"`
	Pointer  *render.Point `json:"pointer,omitempty"`
	ActiveID string        `json:"activeId,omitempty"`
	Detailed bool          `json:"detailed,omitempty"`

	// Refresh skips cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	sizer     region.Sizer
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Region is the rebuilt region.
	Region region.Region

	// RegionHash is the content hash of Region.
	RegionHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains run statistics.
type Stats struct {
	ItemCount   int
	RowCount    int
	RebuildTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	RebuildHit bool // Whether the rebuilt region came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, dot, graph)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetPackingDefaults fills MaxSize, Sizer, Metrics and Logger.
func (o *Options) SetPackingDefaults() {
	if o.MaxSize <= 0 {
		o.MaxSize = region.DefaultMaxSize
	}
	if o.Sizer == "" {
		o.Sizer = DefaultSizer
	}
	if o.Metrics == (measure.Metrics{}) {
		o.Metrics = measure.DefaultMetrics()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	o.SetPackingDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{render.FormatSVG}
	}
}

// PackingConfig resolves the sizer expression. The compiled sizer is kept
// on the options so repeated stages share it.
func (o *Options) PackingConfig() (region.PackingConfig, error) {
	o.SetPackingDefaults()
	if o.sizer == nil {
		s, err := sizing.Parse(o.Sizer)
		if err != nil {
			return region.PackingConfig{}, err
		}
		o.sizer = s
	}
	return region.PackingConfig{MaxSize: o.MaxSize, Sizer: o.sizer}, nil
}

// ValidateForRebuild checks the region and action and applies defaults.
func (o *Options) ValidateForRebuild() error {
	if o.validated {
		return nil
	}
	if _, err := o.PackingConfig(); err != nil {
		return err
	}
	if err := validate.Region(o.Region); err != nil {
		return err
	}
	if err := validate.ActionFor(o.Region, o.Action); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForPack checks the item list and applies defaults.
func (o *Options) ValidateForPack() error {
	if _, err := o.PackingConfig(); err != nil {
		return err
	}
	return validate.Region(region.Region{o.Items})
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if _, err := o.PackingConfig(); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// RebuildKeyOpts returns cache key options for a rebuild.
func (o *Options) RebuildKeyOpts() (cache.RebuildKeyOpts, error) {
	actionHash, err := cache.HashJSON(o.Action)
	if err != nil {
		return cache.RebuildKeyOpts{}, fmt.Errorf("hash action: %w", err)
	}
	return cache.RebuildKeyOpts{ActionHash: actionHash, MaxSize: o.MaxSize, Sizer: o.Sizer}, nil
}

// PackKeyOpts returns cache key options for packing.
func (o *Options) PackKeyOpts() cache.PackKeyOpts {
	return cache.PackKeyOpts{MaxSize: o.MaxSize, Sizer: o.Sizer}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) (cache.ArtifactKeyOpts, error) {
	metricsHash, err := cache.HashJSON(struct {
		Metrics  measure.Metrics
		Hotspots hotspot.Overrides
		Detailed bool
		MaxSize  float64
	}{o.Metrics, o.Hotspots, o.Detailed, o.MaxSize})
	if err != nil {
		return cache.ArtifactKeyOpts{}, err
	}
	k := cache.ArtifactKeyOpts{Format: format, MetricsHash: metricsHash, Sizer: o.Sizer}
	if o.Pointer != nil {
		k.Pointer = fmt.Sprintf("%g,%g,%s", o.Pointer.X, o.Pointer.Y, o.ActiveID)
	}
	return k, nil
}
