package hotspot

import (
	"testing"

	"github.com/dwthomas77/dropgrid/pkg/geom"
)

// row builds a 200x50 area at y=top with two 100-wide children.
func row(index int, top float64, children bool) Area {
	a := Area{
		Position: geom.Position{Top: top, Bottom: top + 50, Left: 0, Right: 200},
		Index:    index,
		ID:       "row",
	}
	if children {
		a.Children = []Area{
			{Position: geom.Position{Top: top, Bottom: top + 50, Left: 0, Right: 100}, Index: 1, ID: "a"},
			{Position: geom.Position{Top: top, Bottom: top + 50, Left: 100, Right: 200}, Index: 2, ID: "b"},
		}
	}
	return a
}

func TestDragOutside(t *testing.T) {
	cfg := DefaultConfig().Drag
	a := row(1, 0, true)

	for _, pt := range [][2]float64{{-10, 25}, {210, 25}, {100, -5}, {100, 55}} {
		if r, ok := Drag(a, cfg, pt[0], pt[1]); ok {
			t.Errorf("Drag(%v) = %+v, want no match", pt, r)
		}
	}
}

func TestDragMiddleBand(t *testing.T) {
	cfg := DefaultConfig().Drag

	tests := []struct {
		name string
		area Area
		x    float64
		want DragResult
	}{
		{
			name: "first child left fold",
			area: row(2, 0, true),
			x:    20,
			want: DragResult{ID: 2, ChildID: 1, Modifier: ModifierLeft},
		},
		{
			name: "first child right fold",
			area: row(2, 0, true),
			x:    80,
			want: DragResult{ID: 2, ChildID: 1, Modifier: ModifierRight},
		},
		{
			name: "shared edge resolves to earlier child",
			area: row(2, 0, true),
			x:    102,
			want: DragResult{ID: 2, ChildID: 1, Modifier: ModifierRight},
		},
		{
			name: "second child left fold",
			area: row(2, 0, true),
			x:    130,
			want: DragResult{ID: 2, ChildID: 2, Modifier: ModifierLeft},
		},
		{
			name: "empty row defaults to first slot",
			area: row(3, 0, false),
			x:    190,
			want: DragResult{ID: 3, ChildID: 1, Modifier: ModifierLeft},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Drag(tt.area, cfg, tt.x, 25)
			if !ok {
				t.Fatal("Drag() found no zone")
			}
			if got != tt.want {
				t.Errorf("Drag() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDragFallsBackToAreaHalves(t *testing.T) {
	// One narrow child at the far left leaves most of the row uncovered.
	a := Area{
		Position: geom.Position{Top: 0, Bottom: 50, Left: 0, Right: 400},
		Index:    1,
		Children: []Area{
			{Position: geom.Position{Top: 0, Bottom: 50, Left: 0, Right: 40}, Index: 1, ID: "a"},
		},
	}
	cfg := DefaultConfig().Drag

	got, _ := Drag(a, cfg, 150, 25)
	if want := (DragResult{ID: 1, Modifier: ModifierLeft}); got != want {
		t.Errorf("left half = %+v, want %+v", got, want)
	}
	got, _ = Drag(a, cfg, 300, 25)
	if want := (DragResult{ID: 1, Modifier: ModifierRight}); got != want {
		t.Errorf("right half = %+v, want %+v", got, want)
	}
}

func TestDragTopFold(t *testing.T) {
	cfg := DefaultConfig().Drag

	tests := []struct {
		name string
		area Area
		want DragResult
	}{
		{
			name: "first row without children",
			area: func() Area { a := row(1, 0, false); a.IsFirstRow = true; return a }(),
			want: DragResult{ID: 1, Modifier: ModifierTop},
		},
		{
			name: "first row with children",
			area: func() Area { a := row(1, 0, true); a.IsFirstRow = true; return a }(),
			want: DragResult{ID: 1, Modifier: ModifierTop},
		},
		{
			name: "filled row under filled row",
			area: row(2, 0, true),
			want: DragResult{ID: 2, Modifier: ModifierTop},
		},
		{
			name: "filled row under empty row delegates to children",
			area: func() Area { a := row(2, 0, true); a.EmptyRowAbove = true; return a }(),
			want: DragResult{ID: 2, ChildID: 1, Modifier: ModifierLeft},
		},
		{
			name: "empty row delegates to default slot",
			area: row(2, 0, false),
			want: DragResult{ID: 2, ChildID: 1, Modifier: ModifierLeft},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Drag(tt.area, cfg, 20, 3)
			if !ok {
				t.Fatal("Drag() found no zone")
			}
			if got != tt.want {
				t.Errorf("Drag() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDragBottomFold(t *testing.T) {
	cfg := DefaultConfig().Drag

	last := row(4, 100, true)
	last.IsLastRow = true
	got, _ := Drag(last, cfg, 150, 148)
	if want := (DragResult{ID: 4, Modifier: ModifierBottom}); got != want {
		t.Errorf("last row = %+v, want %+v", got, want)
	}

	aboveEmpty := row(4, 100, true)
	aboveEmpty.EmptyRowBelow = true
	got, _ = Drag(aboveEmpty, cfg, 150, 148)
	if want := (DragResult{ID: 4, ChildID: 2, Modifier: ModifierLeft}); got != want {
		t.Errorf("row above empty = %+v, want %+v", got, want)
	}
}

func TestDragScenarioD(t *testing.T) {
	cfg := DefaultConfig().Drag
	for _, children := range []bool{false, true} {
		a := row(7, 0, children)
		a.IsFirstRow = true
		a.EmptyRowAbove = true
		got, ok := Drag(a, cfg, 150, 8)
		if !ok || got != (DragResult{ID: 7, Modifier: ModifierTop}) {
			t.Errorf("children=%v: Drag() = %+v, %v; want top of 7", children, got, ok)
		}
	}
}

func TestDragTotality(t *testing.T) {
	cfg := DefaultConfig().Drag
	areas := []Area{row(1, 0, true), row(2, 60, false)}
	areas[0].IsFirstRow = true
	areas[1].IsLastRow = true

	valid := map[Modifier]bool{ModifierTop: true, ModifierBottom: true, ModifierLeft: true, ModifierRight: true}
	for _, a := range areas {
		for x := -20.0; x <= 220; x += 3.5 {
			for y := -20.0; y <= 130; y += 2.5 {
				r, ok := Drag(a, cfg, x, y)
				if !ok {
					continue
				}
				if r.ID != a.Index || !valid[r.Modifier] {
					t.Fatalf("Drag(%v, %v) = %+v: invalid result", x, y, r)
				}
			}
		}
	}
}

func TestDragHotspotIsValue(t *testing.T) {
	h := NewDragHotspot(row(1, 0, true), DefaultConfig().Drag)
	first, _ := h.Test(20, 25, Meta{})
	second, _ := h.Test(20, 25, Meta{ActiveID: "b"})
	if first != second {
		t.Errorf("repeated Test() = %+v then %+v", first, second)
	}
}
