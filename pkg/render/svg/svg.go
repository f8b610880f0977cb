// Package svg draws a render.Scene as SVG.
package svg

import (
	"bytes"
	"fmt"
	"html"
	"math"

	svgo "github.com/ajstarks/svgo"

	"github.com/dwthomas77/dropgrid/pkg/geom"
	"github.com/dwthomas77/dropgrid/pkg/render"
)

const (
	rowStyle       = "fill:#f6f8fa;stroke:#d0d7de;stroke-width:1"
	emptyRowStyle  = "fill:none;stroke:#d0d7de;stroke-width:1;stroke-dasharray:6,4"
	itemStyle      = "fill:#ffffff;stroke:#57606a;stroke-width:1"
	hoverStyle     = "fill:#ddf4ff;stroke:#0969da;stroke-width:2"
	indicatorStyle = "fill:#cf222e"
	labelStyle     = "font-family:sans-serif;font-size:12px;fill:#24292f;text-anchor:middle;dominant-baseline:middle"
	captionStyle   = "font-family:monospace;font-size:12px;fill:#57606a"
	pointerStyle   = "fill:#cf222e;stroke:#ffffff;stroke-width:1"
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	labels bool
	title  string
}

// WithoutLabels omits item labels.
func WithoutLabels() Option { return func(r *renderer) { r.labels = false } }

// WithTitle sets the document title.
func WithTitle(t string) Option { return func(r *renderer) { r.title = t } }

// Render draws s. Rows are drawn as groups with id "row-N" and items as
// rectangles with id "item-<id>".
func Render(s render.Scene, opts ...Option) []byte {
	r := renderer{labels: true}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.labels {
		s = s.WithoutLabels()
	}

	width, height, dx, dy := s.Canvas()
	var buf bytes.Buffer
	canvas := svgo.New(&buf)
	canvas.Start(px(width), px(height))
	if r.title != "" {
		canvas.Title(r.title)
	}

	for _, area := range s.Areas {
		canvas.Gid(fmt.Sprintf("row-%d", area.Index))
		style := rowStyle
		if !area.HasChildren() {
			style = emptyRowStyle
		}
		rect(canvas, area.Position, dx, dy, style)

		for _, child := range area.Children {
			style := itemStyle
			if child.ID == s.Hover {
				style = hoverStyle
			}
			p := child.Position
			canvas.Rect(px(p.Left+dx), px(p.Top+dy), px(p.Width()), px(p.Height()),
				fmt.Sprintf(`id="item-%s" style="%s"`, html.EscapeString(child.ID), style))
			if r.labels {
				canvas.Text(px(p.CenterX()+dx), px(p.CenterY()+dy), s.Label(child.ID), labelStyle)
			}
		}
		canvas.Gend()
	}

	if ind, ok := s.Indicator(); ok {
		rect(canvas, ind, dx, dy, indicatorStyle)
	}
	if s.Pointer != nil {
		canvas.Circle(px(s.Pointer.X+dx), px(s.Pointer.Y+dy), 4, pointerStyle)
		canvas.Text(px(render.Margin/2), px(height-render.Margin/2), s.Caption(), captionStyle)
	}

	canvas.End()
	return buf.Bytes()
}

func rect(canvas *svgo.SVG, p geom.Position, dx, dy float64, style string) {
	canvas.Rect(px(p.Left+dx), px(p.Top+dy), px(p.Width()), px(p.Height()), style)
}

func px(v float64) int {
	return int(math.Round(v))
}
