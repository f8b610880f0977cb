package validate

import (
	"strings"
	"testing"

	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/geom"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "hero", false},
		{"valid with dash", "hero-image", false},
		{"valid uuid", "5f2b1c1e-8d4a-4d7b-9a0e-1b2c3d4e5f60", false},
		{"valid unicode", "héros", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRegion(t *testing.T) {
	tests := []struct {
		name    string
		input   region.Region
		wantErr bool
	}{
		{"nil", nil, false},
		{"placeholder", region.Region{{}}, false},
		{"valid", region.Region{{{ID: "a", Size: 1}, {ID: "b", Size: 2}}, {{ID: "c", Size: 3}}}, false},
		{"numbering ignored", region.Region{{{ID: "a", Row: 9, Position: 4}}}, false},

		{"duplicate across rows", region.Region{{{ID: "a"}}, {{ID: "a"}}}, true},
		{"duplicate in row", region.Region{{{ID: "a"}, {ID: "a"}}}, true},
		{"empty id", region.Region{{{ID: ""}}}, true},
		{"negative size", region.Region{{{ID: "a", Size: -1}}}, true},
		{"empty row among others", region.Region{{{ID: "a"}}, {}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Region(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Region() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidRegion) {
				t.Errorf("Region() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidRegion)
			}
		})
	}
}

func TestValidateNumbering(t *testing.T) {
	good := region.Pack([]region.Item{{ID: "a", Size: 5}, {ID: "b", Size: 5}}, region.PackingConfig{})
	if err := Numbering(good); err != nil {
		t.Errorf("Numbering(packed) = %v", err)
	}
	bad := region.Region{{{ID: "a", Row: 1, Position: 2}}}
	if err := Numbering(bad); err == nil {
		t.Error("Numbering(gap) = nil, want error")
	}
}

func TestValidateAction(t *testing.T) {
	tests := []struct {
		name    string
		input   region.Action
		wantErr bool
	}{
		{"none", region.None(), false},
		{"zero value", region.Action{}, false},
		{"add", region.Add(region.Item{ID: "a"}, region.Location{Row: 1}), false},
		{"add group", region.AddGroup([]region.Item{{ID: "a"}, {ID: "b"}}, region.Location{}), false},
		{"remove", region.Remove("a"), false},
		{"remove group", region.RemoveGroup("a", "b"), false},
		{"remove row", region.RemoveRow(2), false},

		{"unknown type", region.Action{Kind: "move"}, true},
		{"add without item", region.Action{Kind: region.KindAdd}, true},
		{"add empty id", region.Add(region.Item{}, region.Location{}), true},
		{"empty group", region.AddGroup(nil, region.Location{}), true},
		{"group duplicate", region.AddGroup([]region.Item{{ID: "a"}, {ID: "a"}}, region.Location{}), true},
		{"remove without id", region.Remove(""), true},
		{"remove group empty", region.RemoveGroup(), true},
		{"remove row zero", region.RemoveRow(0), true},
		{"negative position", region.Add(region.Item{ID: "a"}, region.Location{Row: 1, Position: -1}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Action(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("Action() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateActionFor(t *testing.T) {
	r := region.Region{{{ID: "a"}}}
	if err := ActionFor(r, region.Add(region.Item{ID: "b"}, region.Location{})); err != nil {
		t.Errorf("adding new id: %v", err)
	}
	if err := ActionFor(r, region.Add(region.Item{ID: "a"}, region.Location{})); err == nil {
		t.Error("adding existing id: want error")
	}
	if err := ActionFor(r, region.AddGroup([]region.Item{{ID: "x"}, {ID: "a"}}, region.Location{})); err == nil {
		t.Error("group with existing id: want error")
	}
}

func TestValidateArea(t *testing.T) {
	ok := hotspot.Area{
		Position: geom.Rect(0, 0, 100, 50),
		Children: []hotspot.Area{{ID: "a", Position: geom.Rect(0, 0, 50, 50)}},
	}
	if err := Area(ok); err != nil {
		t.Errorf("Area(valid) = %v", err)
	}

	tests := []struct {
		name string
		area hotspot.Area
	}{
		{"inverted", hotspot.Area{Position: geom.Position{Top: 10, Bottom: 0, Right: 5}}},
		{"inverted child", hotspot.Area{
			Position: geom.Rect(0, 0, 100, 50),
			Children: []hotspot.Area{{ID: "a", Position: geom.Position{Left: 10, Right: 0, Bottom: 5}}},
		}},
		{"nested too deep", hotspot.Area{
			Position: geom.Rect(0, 0, 100, 50),
			Children: []hotspot.Area{{
				ID:       "a",
				Position: geom.Rect(0, 0, 50, 50),
				Children: []hotspot.Area{{ID: "b", Position: geom.Rect(0, 0, 10, 10)}},
			}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Area(tt.area); !errors.Is(err, errors.ErrCodeInvalidArea) {
				t.Errorf("Area() = %v, want %v", err, errors.ErrCodeInvalidArea)
			}
		})
	}
}
