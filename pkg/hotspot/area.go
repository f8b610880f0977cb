package hotspot

import "github.com/dwthomas77/dropgrid/pkg/geom"

// Area is a rectangle a hotspot is generated from.
//
// Top-level areas are rows: Index is the 1-based row number and Children
// are the row's items, each with its 1-based position as Index. The
// adjacency flags are computed once by [BuildAreas] and read by the drag
// tester; they are never inferred while testing.
type Area struct {
	Position geom.Position `json:"position" yaml:"position"`
	Index    int           `json:"index" yaml:"index"`
	ID       string        `json:"id" yaml:"id"`
	Children []Area        `json:"children,omitempty" yaml:"children,omitempty"`

	IsFirstRow    bool `json:"isFirstRow,omitempty" yaml:"isFirstRow,omitempty"`
	IsLastRow     bool `json:"isLastRow,omitempty" yaml:"isLastRow,omitempty"`
	EmptyRowAbove bool `json:"emptyRowAbove,omitempty" yaml:"emptyRowAbove,omitempty"`
	EmptyRowBelow bool `json:"emptyRowBelow,omitempty" yaml:"emptyRowBelow,omitempty"`
}

// HasChildren reports whether the area owns any child areas.
func (a Area) HasChildren() bool { return len(a.Children) > 0 }

// Child returns the child with the given identifier.
func (a Area) Child(id string) (Area, bool) {
	for _, c := range a.Children {
		if c.ID == id {
			return c, true
		}
	}
	return Area{}, false
}

// Spec describes one row before adjacency is known.
type Spec struct {
	ID       string
	Position geom.Position
	Children []ChildSpec
}

// ChildSpec describes one item inside a row.
type ChildSpec struct {
	ID       string
	Position geom.Position
}

// BuildAreas turns ordered row specs into areas. Indices are assigned from
// order starting at 1, and each area records whether it is the first or
// last row and whether the rows around it are empty.
func BuildAreas(specs []Spec) []Area {
	areas := make([]Area, len(specs))
	for i, s := range specs {
		a := Area{
			Position:   s.Position,
			Index:      i + 1,
			ID:         s.ID,
			IsFirstRow: i == 0,
			IsLastRow:  i == len(specs)-1,
		}
		if i > 0 {
			a.EmptyRowAbove = len(specs[i-1].Children) == 0
		}
		if i < len(specs)-1 {
			a.EmptyRowBelow = len(specs[i+1].Children) == 0
		}
		if len(s.Children) > 0 {
			a.Children = make([]Area, len(s.Children))
			for j, c := range s.Children {
				a.Children[j] = Area{Position: c.Position, Index: j + 1, ID: c.ID}
			}
		}
		areas[i] = a
	}
	return areas
}
