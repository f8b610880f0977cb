// Package measure lays a region out on a plane and produces the hotspot
// areas a pointer is tested against.
//
// Rows stack top to bottom from (OriginX, OriginY). Each item is
// Size × UnitWidth wide and as tall as its row; a row is RowHeight tall
// unless one of its items asks for more through its payload:
//
//	height                    explicit pixel height
//	imageWidth, imageHeight   natural image size, scaled to fit the item
//
// Heights are snapped to whole rows with HeightInRows.
package measure

import (
	"math"
	"strconv"

	"github.com/dwthomas77/dropgrid/pkg/geom"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/region"
	"github.com/dwthomas77/dropgrid/pkg/sizing"
)

// Metrics converts packing units to pixels.
type Metrics struct {
	OriginX   float64 `json:"originX" toml:"origin_x" yaml:"originX"`
	OriginY   float64 `json:"originY" toml:"origin_y" yaml:"originY"`
	UnitWidth float64 `json:"unitWidth" toml:"unit_width" yaml:"unitWidth"`
	ItemGap   float64 `json:"itemGap" toml:"item_gap" yaml:"itemGap"`
	RowHeight float64 `json:"rowHeight" toml:"row_height" yaml:"rowHeight"`
	RowGap    float64 `json:"rowGap" toml:"row_gap" yaml:"rowGap"`
}

// DefaultMetrics returns a layout of 40px units and 60px rows 10px apart.
func DefaultMetrics() Metrics {
	return Metrics{UnitWidth: 40, RowHeight: 60, RowGap: 10}
}

// Specs measures every row of r. Empty rows keep their full width so they
// remain drop targets.
func Specs(r region.Region, m Metrics, cfg region.PackingConfig) []hotspot.Spec {
	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = region.DefaultMaxSize
	}
	sizer := cfg.Sizer
	if sizer == nil {
		sizer = region.FieldSizer
	}

	specs := make([]hotspot.Spec, len(r))
	y := m.OriginY
	for i, row := range r {
		widths := make([]float64, len(row))
		height := m.RowHeight
		for j, it := range row {
			widths[j] = sizer.Size(it) * m.UnitWidth
			height = math.Max(height, HeightInRows(itemHeight(it, widths[j], m), m.RowHeight, m.RowGap))
		}

		x := m.OriginX
		children := make([]hotspot.ChildSpec, len(row))
		for j, it := range row {
			children[j] = hotspot.ChildSpec{ID: it.ID, Position: geom.Rect(x, y, widths[j], height)}
			x += widths[j] + m.ItemGap
		}

		width := maxSize * m.UnitWidth
		if len(row) > 0 {
			width = math.Max(width, x-m.ItemGap-m.OriginX)
		}
		specs[i] = hotspot.Spec{
			ID:       rowID(i),
			Position: geom.Rect(m.OriginX, y, width, height),
			Children: children,
		}
		y += height + m.RowGap
	}
	return specs
}

// Areas measures r and builds hotspot areas with adjacency flags set.
func Areas(r region.Region, m Metrics, cfg region.PackingConfig) []hotspot.Area {
	return hotspot.BuildAreas(Specs(r, m, cfg))
}

// Bounds returns the rectangle enclosing every area.
func Bounds(areas []hotspot.Area) geom.Position {
	if len(areas) == 0 {
		return geom.Position{}
	}
	b := areas[0].Position
	for _, a := range areas[1:] {
		b.Top = math.Min(b.Top, a.Position.Top)
		b.Bottom = math.Max(b.Bottom, a.Position.Bottom)
		b.Left = math.Min(b.Left, a.Position.Left)
		b.Right = math.Max(b.Right, a.Position.Right)
	}
	return b
}

func rowID(i int) string {
	return "row-" + strconv.Itoa(i+1)
}

// itemHeight is the height an item asks for before snapping to rows.
func itemHeight(it region.Item, width float64, m Metrics) float64 {
	if h, ok := sizing.Number(it.Payload["height"]); ok && h > 0 {
		return h
	}
	w, okW := sizing.Number(it.Payload["imageWidth"])
	h, okH := sizing.Number(it.Payload["imageHeight"])
	if okW && okH && w > 0 && h > 0 {
		return ImageDisplaySize(width, m.RowHeight, w, h, w/h, m.RowGap).Height
	}
	return m.RowHeight
}

// HeightInRows rounds height up to a whole number of rows, counting the
// margins between them. Heights up to one row take exactly one row.
func HeightInRows(height, rowHeight, rowMargin float64) float64 {
	rows := 1.0
	if height > rowHeight {
		rows = math.Ceil(height / (rowHeight + rowMargin))
	}
	return rows*rowHeight + (rows-1)*rowMargin
}

// ImageSize is a displayed image size in pixels.
type ImageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ImageDisplaySize scales an image of natural size width×height into a
// slot elWidth wide. Images shorter than a row keep their height; taller
// ones are fitted to the slot width and snapped down to whole rows, with
// rowMargin added between rows. The width follows the aspect ratio.
func ImageDisplaySize(elWidth, rowHeight, width, height, aspectRatio, rowMargin float64) ImageSize {
	auto := height
	if height >= rowHeight {
		auto = math.Min(width, elWidth) / aspectRatio
	}

	display := auto
	if auto >= rowHeight {
		display = rowHeight * math.Floor(auto/rowHeight)
	}

	rows := math.Floor(display / rowHeight)
	if rows < 1 {
		rows = 1
	}
	display += (rows - 1) * rowMargin

	return ImageSize{Width: display * aspectRatio, Height: display}
}
