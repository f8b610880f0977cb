// Package render draws measured regions for inspection.
//
// # Scenes
//
// A [Scene] is the set of hotspot areas for one region plus an optional
// pointer. [NewScene] measures the region; [Scene.At] resolves the drop
// zone and hovered item under a pointer:
//
//	scene := render.NewScene(r, measure.DefaultMetrics(), cfg)
//	set := hotspot.Generate([]hotspot.Type{hotspot.TypeDrag, hotspot.TypeHover}, scene.Areas, hotspot.Overrides{})
//	scene = scene.At(render.Point{X: 120, Y: 35}, set, "")
//	fmt.Println(scene.Caption()) // (120, 35) drop: row 1 child 1 left hover: hero
//
// Scenes are plain values; renderers never mutate them.
//
// # Formats
//
// The subpackages draw the same scene in different formats:
//
//   - [svg]: vector drawing with the drop indicator, via ajstarks/svgo
//   - [png]: raster snapshot, via fogleman/gg
//   - [dot]: Graphviz description of the row and item tree, laid out
//     with go-graphviz for the "graph" format
//
// # Drop Indicator
//
// [Scene.Target] and [Scene.Indicator] locate the edge a drop would land
// on: the left or right edge of a child for a child hit, and the top,
// bottom, left or right edge of the row otherwise. Every renderer draws
// the indicator at the same place so outputs can be compared.
//
// [svg]: github.com/dwthomas77/dropgrid/pkg/render/svg
// [png]: github.com/dwthomas77/dropgrid/pkg/render/png
// [dot]: github.com/dwthomas77/dropgrid/pkg/render/dot
package render
