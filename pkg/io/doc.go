// Package io reads and writes region, action and scenario documents as
// JSON or YAML.
//
// # Region Document
//
//	{
//	  "name": "landing",
//	  "rows": [
//	    [{"id": "hero", "size": 8}],
//	    [{"id": "a", "size": 4}, {"id": "b", "size": 4, "payload": {"width": 320}}]
//	  ]
//	}
//
// Item fields:
//   - id: unique identifier; a random UUID is assigned when omitted
//   - size: packing size, read by the default sizer
//   - row, position: written on export, ignored on import
//   - payload: freeform object carried through untouched
//
// # Action Document
//
//	{"type": "add", "item": {"id": "n", "size": 2}, "location": {"row": 1, "position": 2}}
//	{"type": "addGroup", "items": [...], "location": {"row": 2, "newRow": true}}
//	{"type": "remove", "id": "hero"}
//	{"type": "removeGroup", "ids": ["a", "b"]}
//	{"type": "removeRow", "location": {"row": 3}}
//
// # Scenario Document
//
// A scenario bundles a region, one action and packing settings:
//
//	{"region": {...}, "action": {...}, "packing": {"maxSize": 8, "sizer": "payload:width"}}
//
// # Area Document
//
// Measured rows as hit-tested by the hotspot package, with adjacency flags
// already set:
//
//	{"areas": [{"index": 1, "id": "row-1", "isFirstRow": true,
//	  "position": {"top": 0, "bottom": 60, "left": 0, "right": 320},
//	  "children": [{"index": 1, "id": "hero", "position": {...}}]}]}
//
// # Formats
//
// [FormatFromPath] picks the format from the file extension (.json, .yaml,
// .yml). Readers and writers take the format explicitly so stdin and HTTP
// bodies work the same way.
//
// Nothing in this package validates identifiers or numbering beyond
// filling in missing ids; see [validate.Region].
//
// [validate.Region]: github.com/dwthomas77/dropgrid/pkg/validate.Region
package io
