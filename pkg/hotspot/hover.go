package hotspot

import "github.com/dwthomas77/dropgrid/pkg/geom"

// Meta carries per-call interaction state shared by all testers.
type Meta struct {
	// ActiveID is the identifier of the currently hovered child, if any.
	ActiveID string `json:"activeId,omitempty"`
}

// HoverHotspot finds the hovered child of one area.
type HoverHotspot struct {
	Area   Area
	Config HoverConfig
}

// NewHoverHotspot builds the hover tester for area.
func NewHoverHotspot(area Area, cfg HoverConfig) HoverHotspot {
	return HoverHotspot{Area: area, Config: cfg}
}

// Test returns the identifier of the child under (x, y).
func (h HoverHotspot) Test(x, y float64, meta Meta) (string, bool) {
	return Hover(h.Area, h.Config, x, y, meta.ActiveID)
}

// Hover returns the child of area containing (x, y). The active child is
// checked first against its rectangle grown by OffsetActive so the
// pointer can wander slightly past its edge; every other child, and the
// active one on a second pass, must contain the point exactly.
func Hover(area Area, cfg HoverConfig, x, y float64, activeID string) (string, bool) {
	if activeID != "" {
		if active, ok := area.Child(activeID); ok && geom.Inside(x, y, active.Position, cfg.OffsetActive) {
			return active.ID, true
		}
	}
	for _, child := range area.Children {
		if geom.Inside(x, y, child.Position, 0) {
			return child.ID, true
		}
	}
	return "", false
}
