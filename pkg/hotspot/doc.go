// Package hotspot classifies pointer positions against measured areas.
//
// Two kinds of tester exist:
//
//   - [DragHotspot] answers "where would a dragged item land?" with a
//     [DragResult]: the row index, an optional child index and a modifier
//     (top, bottom, left or right).
//   - [HoverHotspot] answers "which item is under the pointer?" with the
//     child identifier, keeping the currently active child selected while
//     the pointer stays within OffsetActive of it.
//
// Testers are values holding an [Area] and its config; they keep no state
// between calls, so a pointer-move stream can call them as often as it
// likes from any goroutine.
//
// # Usage
//
//	areas := hotspot.BuildAreas(specs)
//	set := hotspot.Generate([]hotspot.Type{hotspot.TypeDrag, hotspot.TypeHover}, areas, hotspot.Overrides{})
//
//	if r, ok := set.CheckDrag(x, y); ok {
//	    // highlight r.Modifier of row r.ID (child r.ChildID)
//	}
//	if id, ok := set.CheckHover(x, y, hotspot.Meta{ActiveID: current}); ok {
//	    current = id
//	}
//
// [Check] returns the last matching tester's result, so testers appended
// later take precedence.
package hotspot
