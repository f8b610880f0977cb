// Package validate checks documents and actions before they reach the
// rebuilder or the hit testers. Failures carry the codes of package errors.
package validate

import (
	"strings"
	"unicode"

	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

// maxIDLength bounds item identifiers. Identifiers end up in cache keys,
// file names of rendered diagrams and terminal output.
const maxIDLength = 256

// ID validates an item identifier.
//
// The validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters
//   - No path separators
//   - Maximum length of 256 characters
func ID(id string) error {
	if id == "" {
		return errors.New(errors.ErrCodeInvalidInput, "item id cannot be empty")
	}

	if len(id) > maxIDLength {
		return errors.New(errors.ErrCodeInvalidInput, "item id too long (max %d characters)", maxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return errors.New(errors.ErrCodeInvalidInput, "item id contains invalid control characters")
		}
	}

	if strings.ContainsAny(id, "/\\") {
		return errors.New(errors.ErrCodeInvalidInput, "item id cannot contain path separators: %q", id)
	}

	return nil
}

// Region checks a region document before it reaches the rebuilder.
//
// Rules:
//   - Every item has a valid, unique identifier
//   - Sizes are not negative
//   - Empty rows only appear as the lone placeholder row
//
// Row and position fields are not checked: the rebuilder reassigns them.
func Region(r region.Region) error {
	seen := make(map[string]int, r.Len())
	for i, row := range r {
		if len(row) == 0 && !r.IsPlaceholder() {
			return errors.New(errors.ErrCodeInvalidRegion, "row %d is empty", i+1)
		}
		for _, it := range row {
			if err := ID(it.ID); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRegion, err, "row %d", i+1)
			}
			if prev, ok := seen[it.ID]; ok {
				return errors.New(errors.ErrCodeInvalidRegion, "duplicate item id %q in rows %d and %d", it.ID, prev, i+1)
			}
			seen[it.ID] = i + 1
			if it.Size < 0 {
				return errors.New(errors.ErrCodeInvalidRegion, "item %q has negative size %v", it.ID, it.Size)
			}
		}
	}
	return nil
}

// Numbering reports the first item whose row or position does not
// match its place in r.
func Numbering(r region.Region) error {
	for i, row := range r {
		for j, it := range row {
			if it.Row != i+1 || it.Position != j+1 {
				return errors.New(errors.ErrCodeInvalidRegion, "item %q numbered %d:%d, expected %d:%d",
					it.ID, it.Row, it.Position, i+1, j+1)
			}
		}
	}
	return nil
}

// Action checks that a carries the fields its kind needs.
func Action(a region.Action) error {
	if !a.Kind.Valid() {
		return errors.New(errors.ErrCodeInvalidAction, "unknown action type %q", a.Kind)
	}

	switch a.Kind {
	case region.KindAdd:
		if a.Item == nil {
			return errors.New(errors.ErrCodeInvalidAction, "add requires an item")
		}
		if err := ID(a.Item.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidAction, err, "add")
		}
	case region.KindAddGroup:
		if len(a.Items) == 0 {
			return errors.New(errors.ErrCodeInvalidAction, "addGroup requires at least one item")
		}
		seen := make(map[string]bool, len(a.Items))
		for _, it := range a.Items {
			if err := ID(it.ID); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidAction, err, "addGroup")
			}
			if seen[it.ID] {
				return errors.New(errors.ErrCodeInvalidAction, "addGroup lists %q twice", it.ID)
			}
			seen[it.ID] = true
		}
	case region.KindRemove:
		if a.ID == "" {
			return errors.New(errors.ErrCodeInvalidAction, "remove requires an id")
		}
	case region.KindRemoveGroup:
		if len(a.IDs) == 0 {
			return errors.New(errors.ErrCodeInvalidAction, "removeGroup requires at least one id")
		}
	case region.KindRemoveRow:
		if a.Location.Row < 1 {
			return errors.New(errors.ErrCodeInvalidAction, "removeRow requires a row of 1 or more, got %d", a.Location.Row)
		}
	}

	if a.Location.Row < 0 || a.Location.Position < 0 {
		return errors.New(errors.ErrCodeInvalidAction, "location cannot be negative")
	}
	return nil
}

// ActionFor checks a against the region it will be applied to.
// Adding an identifier that already exists is rejected.
func ActionFor(r region.Region, a region.Action) error {
	if err := Action(a); err != nil {
		return err
	}
	var added []region.Item
	switch a.Kind {
	case region.KindAdd:
		added = []region.Item{*a.Item}
	case region.KindAddGroup:
		added = a.Items
	}
	for _, it := range added {
		if _, ok := r.Find(it.ID); ok {
			return errors.New(errors.ErrCodeInvalidAction, "item %q is already in the region", it.ID)
		}
	}
	return nil
}

// Area checks that an area and its children have well-formed
// rectangles and that children do not nest further.
func Area(a hotspot.Area) error {
	if !a.Position.Valid() {
		return errors.New(errors.ErrCodeInvalidArea, "area %d has an inverted rectangle %+v", a.Index, a.Position)
	}
	for _, c := range a.Children {
		if !c.Position.Valid() {
			return errors.New(errors.ErrCodeInvalidArea, "child %q of area %d has an inverted rectangle", c.ID, a.Index)
		}
		if c.HasChildren() {
			return errors.New(errors.ErrCodeInvalidArea, "child %q of area %d has children of its own", c.ID, a.Index)
		}
	}
	return nil
}
