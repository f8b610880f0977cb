// Package stats summarizes how well a region's rows are filled.
package stats

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/dwthomas77/dropgrid/pkg/region"
)

// Summary describes row fill, where fill is a row's summed size divided by
// the row capacity.
type Summary struct {
	Rows      int `json:"rows"`
	Items     int `json:"items"`
	EmptyRows int `json:"emptyRows"`
	// Oversized counts rows over capacity. Only a row holding a single
	// oversized item can be.
	Oversized int `json:"oversized"`

	MaxSize  float64   `json:"maxSize"`
	Fill     []float64 `json:"fill"`
	MeanFill float64   `json:"meanFill"`
	StdDev   float64   `json:"stdDev"`
	Median   float64   `json:"median"`
	MinFill  float64   `json:"minFill"`
	MaxFill  float64   `json:"maxFill"`
	// Slack is the total unused capacity across non-empty rows.
	Slack float64 `json:"slack"`
}

// Summarize computes fill statistics for r.
func Summarize(r region.Region, cfg region.PackingConfig) Summary {
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = region.DefaultMaxSize
	}

	sizes := r.RowSizes(cfg)
	s := Summary{
		Rows:    len(r),
		Items:   r.Len(),
		MaxSize: maxSize,
		Fill:    make([]float64, len(sizes)),
	}
	for i, size := range sizes {
		s.Fill[i] = size / maxSize
		switch {
		case len(r[i]) == 0:
			s.EmptyRows++
		case size > maxSize:
			s.Oversized++
		default:
			s.Slack += maxSize - size
		}
	}
	if len(s.Fill) == 0 {
		return s
	}

	s.MeanFill, s.StdDev = stat.MeanStdDev(s.Fill, nil)
	if len(s.Fill) == 1 {
		s.StdDev = 0
	}
	sorted := slices.Clone(s.Fill)
	slices.Sort(sorted)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.MinFill = floats.Min(s.Fill)
	s.MaxFill = floats.Max(s.Fill)
	return s
}
