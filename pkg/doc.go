// Package pkg holds the dropgrid libraries.
//
// # Overview
//
// dropgrid lays out sized items in rows for row-based editors and answers
// the two questions a drag-and-drop editor asks on every pointer move:
// where would a dropped item land, and which item is under the pointer.
// The pkg directory is organized into three areas:
//
//  1. Layout: [region], [sizing], [measure], [geom], [hotspot]
//  2. Orchestration: [pipeline], [render], [stats], [io]
//  3. Infrastructure: [cache], [config], [errors], [validate], [observability], [api]
//
// # Data Flow
//
//	items or region + action
//	         ↓
//	    [region] (pack or rebuild rows)
//	         ↓
//	    [measure] (rows to rectangles)
//	         ↓
//	    [hotspot] (drag and hover testers)
//	         ↓
//	    drop zone / hovered item, or [render] output
//
// # Quick Start
//
// Rebuild a region after a drop and resolve the next pointer position:
//
//	import (
//	    "github.com/dwthomas77/dropgrid/pkg/hotspot"
//	    "github.com/dwthomas77/dropgrid/pkg/measure"
//	    "github.com/dwthomas77/dropgrid/pkg/region"
//	)
//
//	cfg := region.PackingConfig{MaxSize: 8}
//
//	// 1. Insert an item before the first item of row 2
//	next := region.Rebuild(r, region.Add(item, region.Location{Row: 2, Position: 1}), cfg)
//
//	// 2. Measure rows into areas
//	areas := measure.Areas(next, measure.DefaultMetrics(), cfg)
//
//	// 3. Hit-test the pointer
//	set := hotspot.Generate([]hotspot.Type{hotspot.TypeDrag}, areas, hotspot.Overrides{})
//	drop, ok := set.CheckDrag(x, y)
//
// # Packages
//
//   - [region]: items, rows, the greedy packer and the rebuilder
//   - [sizing]: sizer expressions (field, const, payload key, JavaScript)
//   - [measure]: row and item rectangles from sizes and metrics
//   - [geom]: rectangles and the inside test
//   - [hotspot]: drag and hover hit-testing with configurable margins
//   - [pipeline]: cached rebuild, pack and render stages shared by CLI and API
//   - [render]: SVG, PNG and Graphviz diagnostics with the drop indicator
//   - [stats]: row fill statistics
//   - [io]: region, action and scenario documents in JSON or YAML
//   - [cache]: null, file and Redis result caches
//   - [config]: TOML configuration
//   - [errors]: coded errors
//   - [validate]: region, action and area checks
//   - [observability]: optional metrics hooks
//   - [api]: HTTP JSON API over the pipeline
//
// [region]: github.com/dwthomas77/dropgrid/pkg/region
// [sizing]: github.com/dwthomas77/dropgrid/pkg/sizing
// [measure]: github.com/dwthomas77/dropgrid/pkg/measure
// [geom]: github.com/dwthomas77/dropgrid/pkg/geom
// [hotspot]: github.com/dwthomas77/dropgrid/pkg/hotspot
// [pipeline]: github.com/dwthomas77/dropgrid/pkg/pipeline
// [render]: github.com/dwthomas77/dropgrid/pkg/render
// [stats]: github.com/dwthomas77/dropgrid/pkg/stats
// [io]: github.com/dwthomas77/dropgrid/pkg/io
// [cache]: github.com/dwthomas77/dropgrid/pkg/cache
// [config]: github.com/dwthomas77/dropgrid/pkg/config
// [errors]: github.com/dwthomas77/dropgrid/pkg/errors
// [validate]: github.com/dwthomas77/dropgrid/pkg/validate
// [observability]: github.com/dwthomas77/dropgrid/pkg/observability
// [api]: github.com/dwthomas77/dropgrid/pkg/api
package pkg
