package measure

import (
	"testing"

	"github.com/dwthomas77/dropgrid/pkg/geom"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

func TestHeightInRows(t *testing.T) {
	tests := []struct {
		height, row, margin float64
		want                float64
	}{
		{0, 60, 10, 60},
		{40, 60, 10, 60},
		{60, 60, 10, 60},
		{61, 60, 10, 60},
		{71, 60, 10, 130},
		{130, 60, 10, 130},
		{200, 60, 10, 200},
		{141, 60, 10, 200},
	}
	for _, tt := range tests {
		if got := HeightInRows(tt.height, tt.row, tt.margin); got != tt.want {
			t.Errorf("HeightInRows(%v, %v, %v) = %v, want %v", tt.height, tt.row, tt.margin, got, tt.want)
		}
	}
}

func TestImageDisplaySize(t *testing.T) {
	tests := []struct {
		name                            string
		elWidth, rowHeight, w, h, ratio float64
		want                            ImageSize
	}{
		{"shorter than a row", 400, 100, 200, 50, 4, ImageSize{Width: 200, Height: 50}},
		{"two rows", 400, 100, 250, 250, 1, ImageSize{Width: 205, Height: 205}},
		{"wider than slot", 200, 100, 800, 400, 2, ImageSize{Width: 200, Height: 100}},
		{"three rows", 400, 100, 350, 350, 1, ImageSize{Width: 310, Height: 310}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ImageDisplaySize(tt.elWidth, tt.rowHeight, tt.w, tt.h, tt.ratio, 5)
			if got != tt.want {
				t.Errorf("ImageDisplaySize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAreas(t *testing.T) {
	r := region.Pack([]region.Item{
		{ID: "a", Size: 2},
		{ID: "b", Size: 3},
		{ID: "c", Size: 6},
	}, region.PackingConfig{})
	// [[a b] [c]]
	m := Metrics{OriginX: 10, OriginY: 20, UnitWidth: 10, ItemGap: 2, RowHeight: 50, RowGap: 5}

	areas := Areas(r, m, region.PackingConfig{})
	if len(areas) != 2 {
		t.Fatalf("Areas() = %d areas, want 2", len(areas))
	}

	first := areas[0]
	if want := geom.Rect(10, 20, 80, 50); first.Position != want {
		t.Errorf("row 1 = %+v, want %+v", first.Position, want)
	}
	if !first.IsFirstRow || first.IsLastRow || first.Index != 1 || first.ID != "row-1" {
		t.Errorf("row 1 flags = %+v", first)
	}
	if want := geom.Rect(10, 20, 20, 50); first.Children[0].Position != want {
		t.Errorf("child a = %+v, want %+v", first.Children[0].Position, want)
	}
	if want := geom.Rect(32, 20, 30, 50); first.Children[1].Position != want {
		t.Errorf("child b = %+v, want %+v", first.Children[1].Position, want)
	}
	if c := first.Children[1]; c.ID != "b" || c.Index != 2 {
		t.Errorf("child b id/index = %q/%d", c.ID, c.Index)
	}

	second := areas[1]
	if second.Position.Top != 75 || !second.IsLastRow {
		t.Errorf("row 2 = %+v", second)
	}
	if b := Bounds(areas); b != (geom.Position{Top: 20, Bottom: 125, Left: 10, Right: 90}) {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestAreasTallItems(t *testing.T) {
	r := region.Region{
		{{ID: "tall", Size: 2, Payload: map[string]any{"height": 100.0}}, {ID: "short", Size: 2}},
		{{ID: "img", Size: 4, Payload: map[string]any{"imageWidth": 1000.0, "imageHeight": 500.0}}},
	}
	m := Metrics{UnitWidth: 40, RowHeight: 60, RowGap: 10}
	areas := Areas(r, m, region.PackingConfig{})

	// 100px snaps to two rows: 60 + 10 + 60.
	if h := areas[0].Position.Height(); h != 130 {
		t.Errorf("row 1 height = %v, want 130", h)
	}
	if h := areas[0].Children[1].Position.Height(); h != 130 {
		t.Errorf("short child height = %v, want row height 130", h)
	}
	// 160px slot, 2:1 image: 80px tall, snapped to one 60px row.
	if h := areas[1].Position.Height(); h != 60 {
		t.Errorf("row 2 height = %v, want 60", h)
	}
}

func TestAreasEmptyRows(t *testing.T) {
	areas := Areas(region.Region{{}}, DefaultMetrics(), region.PackingConfig{MaxSize: 4})
	if len(areas) != 1 {
		t.Fatalf("Areas() = %d areas, want 1", len(areas))
	}
	a := areas[0]
	if a.HasChildren() || a.Position.Width() != 160 || a.Position.Height() != 60 {
		t.Errorf("placeholder area = %+v", a)
	}
	if Bounds(nil) != (geom.Position{}) {
		t.Errorf("Bounds(nil) not zero")
	}
}

func TestAreasDriveHotspots(t *testing.T) {
	r := region.Pack([]region.Item{{ID: "a", Size: 4}, {ID: "b", Size: 4}}, region.PackingConfig{})
	areas := Areas(r, DefaultMetrics(), region.PackingConfig{})
	set := hotspot.Generate([]hotspot.Type{hotspot.TypeDrag, hotspot.TypeHover}, areas, hotspot.Overrides{})

	// b spans x 160..320 in the first row.
	if id, ok := set.CheckHover(200, 30, hotspot.Meta{}); !ok || id != "b" {
		t.Errorf("CheckHover() = %q, %v; want b", id, ok)
	}
	got, ok := set.CheckDrag(300, 30)
	if want := (hotspot.DragResult{ID: 1, ChildID: 2, Modifier: hotspot.ModifierRight}); !ok || got != want {
		t.Errorf("CheckDrag() = %+v, %v; want %+v", got, ok, want)
	}
}
