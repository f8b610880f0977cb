package png

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/measure"
	"github.com/dwthomas77/dropgrid/pkg/region"
	"github.com/dwthomas77/dropgrid/pkg/render"
)

func TestRender(t *testing.T) {
	r := region.Region{{{ID: "a", Size: 2}, {ID: "b", Size: 3}}, {}}
	s := render.NewScene(r, measure.DefaultMetrics(), region.PackingConfig{})
	set := hotspot.Generate([]hotspot.Type{hotspot.TypeDrag}, s.Areas, hotspot.Overrides{})

	tests := []struct {
		name          string
		scene         render.Scene
		opts          []Option
		width, height int
	}{
		// Bounds are 320x130 plus a 20px margin on every side.
		{"default scale", s, nil, 720, 340},
		{"unit scale", s, []Option{WithScale(1)}, 360, 170},
		{"ignores bad scale", s, []Option{WithScale(-1)}, 720, 340},
		{"pointer adds caption", s.At(render.Point{X: 40, Y: 30}, set, ""), []Option{WithScale(1), WithoutLabels()}, 360, 190},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Render(tt.scene, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.width || b.Dy() != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.width, tt.height)
			}
		})
	}
}
