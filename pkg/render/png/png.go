// Package png draws a render.Scene as a PNG image.
package png

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/dwthomas77/dropgrid/pkg/geom"
	"github.com/dwthomas77/dropgrid/pkg/render"
)

// DefaultScale renders at twice the measured size for high-DPI screens.
const DefaultScale = 2.0

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	scale  float64
	labels bool
}

// WithScale sets the pixel scale factor.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithoutLabels omits item labels.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// Render draws s and encodes it as PNG.
func Render(s render.Scene, opts ...Option) ([]byte, error) {
	r := renderer{scale: DefaultScale, labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.labels {
		s = s.WithoutLabels()
	}

	width, height, dx, dy := s.Canvas()
	dc := gg.NewContext(int(math.Ceil(width*r.scale)), int(math.Ceil(height*r.scale)))
	dc.Scale(r.scale, r.scale)
	dc.Translate(dx, dy)

	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, area := range s.Areas {
		if area.HasChildren() {
			fillRect(dc, area.Position, "#f6f8fa")
		} else {
			dc.SetDash(6, 4)
		}
		strokeRect(dc, area.Position, "#d0d7de", 1)
		dc.SetDash()

		for _, child := range area.Children {
			fill, stroke, lw := "#ffffff", "#57606a", 1.0
			if child.ID == s.Hover {
				fill, stroke, lw = "#ddf4ff", "#0969da", 2
			}
			fillRect(dc, child.Position, fill)
			strokeRect(dc, child.Position, stroke, lw)
			if r.labels {
				dc.SetHexColor("#24292f")
				dc.DrawStringAnchored(s.Label(child.ID), child.Position.CenterX(), child.Position.CenterY(), 0.5, 0.5)
			}
		}
	}

	if ind, ok := s.Indicator(); ok {
		fillRect(dc, ind, "#cf222e")
	}
	if s.Pointer != nil {
		dc.SetHexColor("#cf222e")
		dc.DrawCircle(s.Pointer.X, s.Pointer.Y, 4)
		dc.Fill()
		dc.SetHexColor("#57606a")
		dc.DrawString(s.Caption(), render.Margin/2-dx, height-render.Margin/2-dy)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func fillRect(dc *gg.Context, p geom.Position, color string) {
	dc.SetHexColor(color)
	dc.DrawRectangle(p.Left, p.Top, p.Width(), p.Height())
	dc.Fill()
}

func strokeRect(dc *gg.Context, p geom.Position, color string, width float64) {
	dc.SetHexColor(color)
	dc.SetLineWidth(width)
	dc.DrawRectangle(p.Left, p.Top, p.Width(), p.Height())
	dc.Stroke()
}
