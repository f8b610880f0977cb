package stats

import (
	"math"
	"testing"

	"github.com/dwthomas77/dropgrid/pkg/region"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSummarize(t *testing.T) {
	r := region.Region{
		{{ID: "a", Size: 4}, {ID: "b", Size: 4}},
		{{ID: "c", Size: 2}},
		{{ID: "d", Size: 10}},
		{{ID: "e", Size: 6}},
	}
	s := Summarize(r, region.PackingConfig{})

	if s.Rows != 4 || s.Items != 5 || s.EmptyRows != 0 || s.Oversized != 1 {
		t.Errorf("counts = %+v", s)
	}
	want := []float64{1, 0.25, 1.25, 0.75}
	for i := range want {
		if !near(s.Fill[i], want[i]) {
			t.Errorf("Fill[%d] = %v, want %v", i, s.Fill[i], want[i])
		}
	}
	if !near(s.MeanFill, 0.8125) {
		t.Errorf("MeanFill = %v, want 0.8125", s.MeanFill)
	}
	// sorted fill: 0.25 0.75 1 1.25; the empirical median is the lower middle.
	if !near(s.Median, 0.75) {
		t.Errorf("Median = %v, want 0.75", s.Median)
	}
	if !near(s.MinFill, 0.25) || !near(s.MaxFill, 1.25) {
		t.Errorf("MinFill/MaxFill = %v/%v", s.MinFill, s.MaxFill)
	}
	// slack: 0 + 6 + 2, the oversized row contributes nothing
	if !near(s.Slack, 8) {
		t.Errorf("Slack = %v, want 8", s.Slack)
	}
	if s.StdDev <= 0 {
		t.Errorf("StdDev = %v, want positive", s.StdDev)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		r      region.Region
		cfg    region.PackingConfig
		empty  int
		mean   float64
		stddev float64
	}{
		{"no rows", region.Region{}, region.PackingConfig{}, 0, 0, 0},
		{"placeholder", region.Region{{}}, region.PackingConfig{}, 1, 0, 0},
		{"single row", region.Region{{{ID: "a", Size: 5}}}, region.PackingConfig{MaxSize: 10}, 0, 0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(tt.r, tt.cfg)
			if s.EmptyRows != tt.empty || !near(s.MeanFill, tt.mean) || !near(s.StdDev, tt.stddev) {
				t.Errorf("Summarize() = %+v", s)
			}
		})
	}
}
