package hotspot

// Tester classifies a point. R is DragResult for drag testers and the
// child identifier for hover testers.
type Tester[R any] interface {
	Test(x, y float64, meta Meta) (R, bool)
}

// TesterFunc adapts a function to the Tester interface.
type TesterFunc[R any] func(x, y float64, meta Meta) (R, bool)

// Test calls f.
func (f TesterFunc[R]) Test(x, y float64, meta Meta) (R, bool) { return f(x, y, meta) }

// Check runs every tester against (x, y) and returns the last match.
// Testers later in the list override earlier ones, so nested hotspots
// should be listed after the areas that contain them.
func Check[R any, T Tester[R]](x, y float64, testers []T, meta Meta) (R, bool) {
	var (
		result R
		found  bool
	)
	for _, t := range testers {
		if r, ok := t.Test(x, y, meta); ok {
			result, found = r, true
		}
	}
	return result, found
}

// Type selects which testers Generate builds.
type Type string

const (
	TypeDrag  Type = "drag"
	TypeHover Type = "hover"
)

// Set holds the testers produced by Generate, one per area per type.
type Set struct {
	Drag  []DragHotspot
	Hover []HoverHotspot
}

// CheckDrag aggregates the drag testers.
func (s Set) CheckDrag(x, y float64) (DragResult, bool) {
	return Check[DragResult](x, y, s.Drag, Meta{})
}

// CheckHover aggregates the hover testers.
func (s Set) CheckHover(x, y float64, meta Meta) (string, bool) {
	return Check[string](x, y, s.Hover, meta)
}

// Generate builds testers of the requested types for every area, using
// the defaults merged with o. Unknown types are ignored.
func Generate(types []Type, areas []Area, o Overrides) Set {
	cfg := DefaultConfig().Apply(o)

	var set Set
	for _, t := range types {
		switch t {
		case TypeDrag:
			set.Drag = make([]DragHotspot, len(areas))
			for i, a := range areas {
				set.Drag[i] = NewDragHotspot(a, cfg.Drag)
			}
		case TypeHover:
			set.Hover = make([]HoverHotspot, len(areas))
			for i, a := range areas {
				set.Hover[i] = NewHoverHotspot(a, cfg.Hover)
			}
		}
	}
	return set
}
