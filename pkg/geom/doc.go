// Package geom provides the rectangle type and the stateless predicates the
// hotspot testers are built from.
//
// Every function here is a pure comparison over numbers; nothing allocates
// and nothing needs an Area. The predicates split a rectangle into zones:
//
//	      spacing  ┌──────────────────────┐
//	top fold       │  top + foldHeight     │
//	middle         │  left │ right         │  split at left + foldWidth
//	bottom fold    │  bottom - foldHeight  │
//	      spacing  └──────────────────────┘
//
// foldHeight is offsetY times the height and foldWidth is offsetX times the
// width; spacing (offsetHighlight) widens the outer edges so a pointer that
// is a few pixels outside still counts.
//
// # Boundaries
//
// A point exactly on a boundary belongs to the zone above or left of it:
// y == top+foldHeight is in the top fold, y == bottom-foldHeight is in the
// middle band and x == left+foldWidth is on the left.
package geom
