package render

import (
	"fmt"

	"github.com/dwthomas77/dropgrid/pkg/geom"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/measure"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

// Format names accepted by renderers and the pipeline.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatDOT = "dot"
	// FormatGraph is the DOT description laid out by Graphviz as SVG.
	FormatGraph = "graph"
)

// Formats lists every supported format.
var Formats = []string{FormatSVG, FormatPNG, FormatDOT, FormatGraph}

// IndicatorWidth is the thickness of a drop indicator line.
const IndicatorWidth = 4.0

// Point is a pointer position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scene is a measured region ready to draw.
type Scene struct {
	Areas  []hotspot.Area
	Bounds geom.Position
	// Labels maps item identifiers to display text. Missing entries fall
	// back to the identifier.
	Labels map[string]string

	Pointer *Point
	Drop    *hotspot.DragResult
	Hover   string
}

// NewScene measures r into a scene with one label per item. An item's
// label is its payload "title" when that is a string.
func NewScene(r region.Region, m measure.Metrics, cfg region.PackingConfig) Scene {
	areas := measure.Areas(r, m, cfg)
	labels := make(map[string]string)
	for _, it := range r.Items() {
		if s, ok := it.Payload["title"].(string); ok && s != "" {
			labels[it.ID] = s
		}
	}
	return Scene{Areas: areas, Bounds: measure.Bounds(areas), Labels: labels}
}

// At returns a copy of s with the pointer at p and the drag and hover
// results resolved against set.
func (s Scene) At(p Point, set hotspot.Set, activeID string) Scene {
	s.Pointer = &p
	s.Drop = nil
	s.Hover = ""
	if r, ok := set.CheckDrag(p.X, p.Y); ok {
		s.Drop = &r
	}
	if id, ok := set.CheckHover(p.X, p.Y, hotspot.Meta{ActiveID: activeID}); ok {
		s.Hover = id
	}
	return s
}

// WithoutLabels returns a copy of s that shows item ids in place of
// labels, in the caption as well as on items.
func (s Scene) WithoutLabels() Scene {
	s.Labels = nil
	return s
}

// Label returns the display text for an item.
func (s Scene) Label(id string) string {
	if l, ok := s.Labels[id]; ok {
		return l
	}
	return id
}

// Area returns the area with the given 1-based index.
func (s Scene) Area(index int) (hotspot.Area, bool) {
	if index < 1 || index > len(s.Areas) {
		return hotspot.Area{}, false
	}
	return s.Areas[index-1], true
}

// Target returns the rectangle the current drop refers to: the child
// for a child-level drop, otherwise the whole row.
func (s Scene) Target() (geom.Position, hotspot.Modifier, bool) {
	if s.Drop == nil {
		return geom.Position{}, "", false
	}
	area, ok := s.Area(s.Drop.ID)
	if !ok {
		return geom.Position{}, "", false
	}
	if s.Drop.ChildID > 0 && s.Drop.ChildID <= len(area.Children) {
		return area.Children[s.Drop.ChildID-1].Position, s.Drop.Modifier, true
	}
	return area.Position, s.Drop.Modifier, true
}

// Indicator returns the line a renderer draws for the current drop, as a
// thin rectangle on the matching edge of [Scene.Target].
func (s Scene) Indicator() (geom.Position, bool) {
	target, mod, ok := s.Target()
	if !ok {
		return geom.Position{}, false
	}
	return edge(target, mod), true
}

func edge(p geom.Position, m hotspot.Modifier) geom.Position {
	const half = IndicatorWidth / 2
	switch m {
	case hotspot.ModifierTop:
		return geom.Position{Top: p.Top - half, Bottom: p.Top + half, Left: p.Left, Right: p.Right}
	case hotspot.ModifierBottom:
		return geom.Position{Top: p.Bottom - half, Bottom: p.Bottom + half, Left: p.Left, Right: p.Right}
	case hotspot.ModifierRight:
		return geom.Position{Top: p.Top, Bottom: p.Bottom, Left: p.Right - half, Right: p.Right + half}
	default:
		return geom.Position{Top: p.Top, Bottom: p.Bottom, Left: p.Left - half, Right: p.Left + half}
	}
}

// Caption describes the pointer state in one line.
func (s Scene) Caption() string {
	if s.Pointer == nil {
		return ""
	}
	text := fmt.Sprintf("(%.0f, %.0f)", s.Pointer.X, s.Pointer.Y)
	if s.Drop != nil {
		text += " drop: " + DescribeDrop(*s.Drop)
	}
	if s.Hover != "" {
		text += " hover: " + s.Label(s.Hover)
	}
	return text
}

// DescribeDrop formats a drag result for people.
func DescribeDrop(r hotspot.DragResult) string {
	if r.ChildID > 0 {
		return fmt.Sprintf("row %d child %d %s", r.ID, r.ChildID, r.Modifier)
	}
	return fmt.Sprintf("row %d %s", r.ID, r.Modifier)
}

// Margin is the padding renderers leave around the bounds.
const Margin = 20.0

// Canvas returns the drawing size and the offset that moves Bounds to
// (Margin, Margin). Extra space at the bottom holds the caption.
func (s Scene) Canvas() (width, height, dx, dy float64) {
	b := s.Bounds
	width = b.Width() + 2*Margin
	height = b.Height() + 2*Margin
	if s.Pointer != nil {
		height += Margin
	}
	return width, height, Margin - b.Left, Margin - b.Top
}
