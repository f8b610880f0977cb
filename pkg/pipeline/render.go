package pipeline

import (
	"context"
	"fmt"

	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/measure"
	"github.com/dwthomas77/dropgrid/pkg/region"
	"github.com/dwthomas77/dropgrid/pkg/render"
	"github.com/dwthomas77/dropgrid/pkg/render/dot"
	"github.com/dwthomas77/dropgrid/pkg/render/png"
	"github.com/dwthomas77/dropgrid/pkg/render/svg"
)

// HitTypes are the hotspot types the pipeline builds.
var HitTypes = []hotspot.Type{hotspot.TypeDrag, hotspot.TypeHover}

// Hotspots measures reg and builds drag and hover testers for it.
func Hotspots(reg region.Region, opts Options) ([]hotspot.Area, hotspot.Set, error) {
	cfg, err := opts.PackingConfig()
	if err != nil {
		return nil, hotspot.Set{}, err
	}
	areas := measure.Areas(reg, opts.Metrics, cfg)
	return areas, hotspot.Generate(HitTypes, areas, opts.Hotspots), nil
}

// Scene measures reg and, when opts.Pointer is set, resolves the hotspot
// under it.
func Scene(reg region.Region, opts Options) (render.Scene, error) {
	cfg, err := opts.PackingConfig()
	if err != nil {
		return render.Scene{}, err
	}
	s := render.NewScene(reg, opts.Metrics, cfg)
	if opts.Pointer != nil {
		set := hotspot.Generate(HitTypes, s.Areas, opts.Hotspots)
		s = s.At(*opts.Pointer, set, opts.ActiveID)
	}
	return s, nil
}

// Render draws reg in every format of opts.Formats.
func Render(ctx context.Context, reg region.Region, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	cfg, err := opts.PackingConfig()
	if err != nil {
		return nil, err
	}
	scene, err := Scene(reg, opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case render.FormatSVG:
			data = svg.Render(scene)
		case render.FormatPNG:
			data, err = png.Render(scene)
		case render.FormatDOT:
			data = []byte(dot.ToDOT(reg, dot.Options{Detailed: opts.Detailed, Packing: cfg}))
		case render.FormatGraph:
			data, err = dot.RenderSVG(ctx, dot.ToDOT(reg, dot.Options{Detailed: opts.Detailed, Packing: cfg}))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
