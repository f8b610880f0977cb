package hotspot

import "github.com/dwthomas77/dropgrid/pkg/geom"

// Modifier names the side of a target a dragged item would land on.
type Modifier string

const (
	ModifierTop    Modifier = "top"
	ModifierBottom Modifier = "bottom"
	ModifierLeft   Modifier = "left"
	ModifierRight  Modifier = "right"
)

// DragResult is the drop zone under the pointer. ID is the area index and
// ChildID the child index, or 0 when the zone is the whole area.
type DragResult struct {
	ID       int      `json:"id"`
	ChildID  int      `json:"childId,omitempty"`
	Modifier Modifier `json:"modifier"`
}

// DragHotspot classifies points against one area. It is a plain value:
// testing never mutates it and it can be shared between goroutines.
type DragHotspot struct {
	Area   Area
	Config DragConfig
}

// NewDragHotspot builds the drag tester for area.
func NewDragHotspot(area Area, cfg DragConfig) DragHotspot {
	return DragHotspot{Area: area, Config: cfg}
}

// Test returns the drop zone for (x, y), or false when the point is
// outside the area grown by OffsetHighlight. Meta is ignored.
func (h DragHotspot) Test(x, y float64, _ Meta) (DragResult, bool) {
	return Drag(h.Area, h.Config, x, y)
}

// Drag classifies (x, y) against area.
//
// Inside the middle band the point is matched against child folds. In the
// top fold the whole area is the target only when it is the first row or
// a non-empty row below another non-empty row; otherwise the row above
// already highlights that boundary, so the point is treated like the
// middle band. The bottom fold mirrors this with the row below.
func Drag(area Area, cfg DragConfig, x, y float64) (DragResult, bool) {
	p := area.Position
	if !geom.Inside(x, y, p, cfg.OffsetHighlight) {
		return DragResult{}, false
	}

	foldHeight := p.Height() * cfg.OffsetY

	switch geom.VerticalBand(y, p, foldHeight, cfg.OffsetHighlight) {
	case geom.BandMiddle:
		return dragMiddle(area, cfg, x), true
	case geom.BandTop:
		if area.IsFirstRow || (area.HasChildren() && !area.EmptyRowAbove) {
			return DragResult{ID: area.Index, Modifier: ModifierTop}, true
		}
		return dragMiddle(area, cfg, x), true
	case geom.BandBottom:
		if area.IsLastRow || (area.HasChildren() && !area.EmptyRowBelow) {
			return DragResult{ID: area.Index, Modifier: ModifierBottom}, true
		}
		return dragMiddle(area, cfg, x), true
	}
	return DragResult{}, false
}

// dragMiddle picks a child slot, the default first slot of an empty row,
// or the left/right half of the whole area.
func dragMiddle(area Area, cfg DragConfig, x float64) DragResult {
	if !area.HasChildren() {
		return DragResult{ID: area.Index, ChildID: 1, Modifier: ModifierLeft}
	}
	if r, ok := dragChildren(area, cfg, x); ok {
		return r
	}
	foldWidth := area.Position.Width() * cfg.OffsetX
	if geom.HalfSide(x, area.Position, foldWidth) == geom.SideLeft {
		return DragResult{ID: area.Index, Modifier: ModifierLeft}
	}
	return DragResult{ID: area.Index, Modifier: ModifierRight}
}

// dragChildren scans children left to right; the first fold hit wins.
func dragChildren(area Area, cfg DragConfig, x float64) (DragResult, bool) {
	for _, child := range area.Children {
		switch geom.ChildSide(x, child.Position, cfg.OffsetX, cfg.OffsetHighlight) {
		case geom.SideLeft:
			return DragResult{ID: area.Index, ChildID: child.Index, Modifier: ModifierLeft}, true
		case geom.SideRight:
			return DragResult{ID: area.Index, ChildID: child.Index, Modifier: ModifierRight}, true
		}
	}
	return DragResult{}, false
}
