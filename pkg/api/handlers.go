package api

import (
	"net/http"

	"github.com/dwthomas77/dropgrid/pkg/buildinfo"
	"github.com/dwthomas77/dropgrid/pkg/cache"
	"github.com/dwthomas77/dropgrid/pkg/geom"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/measure"
	"github.com/dwthomas77/dropgrid/pkg/pipeline"
	"github.com/dwthomas77/dropgrid/pkg/region"
	"github.com/dwthomas77/dropgrid/pkg/render"
	"github.com/dwthomas77/dropgrid/pkg/stats"
	"github.com/dwthomas77/dropgrid/pkg/validate"
)

// regionResponse is returned by rebuild and pack.
type regionResponse struct {
	Region region.Region `json:"region"`
	Hash   string        `json:"hash,omitempty"`
	Rows   int           `json:"rows"`
	Items  int           `json:"items"`
	Cached bool          `json:"cached"`
}

// measureResponse is returned by measure.
type measureResponse struct {
	Areas  []hotspot.Area `json:"areas"`
	Bounds geom.Position  `json:"bounds"`
}

// hitRequest is a hit-test request. Areas, when given, are tested as-is;
// otherwise they are measured from Region.
type hitRequest struct {
	pipeline.Options
	Areas []hotspot.Area `json:"areas,omitempty"`
	X     float64        `json:"x"`
	Y     float64        `json:"y"`
}

// dragResponse is returned by the drag hit test.
type dragResponse struct {
	Hit         bool                `json:"hit"`
	Result      *hotspot.DragResult `json:"result,omitempty"`
	Description string              `json:"description,omitempty"`
}

// hoverResponse is returned by the hover hit test.
type hoverResponse struct {
	Hit bool   `json:"hit"`
	ID  string `json:"id,omitempty"`
}

// renderResponse carries text formats as strings and PNG as base64.
type renderResponse struct {
	Artifacts map[string]any `json:"artifacts"`
	Cached    bool           `json:"cached"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, s.logger, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	opts := s.options()
	if err := s.decode(w, r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}
	out, hit, err := s.runner.RebuildWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, s.logger, newRegionResponse(out, hit))
}

func (s *Server) handlePack(w http.ResponseWriter, r *http.Request) {
	opts := s.options()
	if err := s.decode(w, r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}
	out, hit, err := s.runner.PackWithCacheInfo(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, s.logger, newRegionResponse(out, hit))
}

func (s *Server) handleMeasure(w http.ResponseWriter, r *http.Request) {
	opts := s.options()
	if err := s.decode(w, r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := validate.Region(opts.Region); err != nil {
		s.fail(w, r, err)
		return
	}
	areas, _, err := pipeline.Hotspots(opts.Region, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, s.logger, measureResponse{Areas: areas, Bounds: measure.Bounds(areas)})
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	req, set, ok := s.hitSet(w, r)
	if !ok {
		return
	}
	res, hit := set.CheckDrag(req.X, req.Y)
	if !hit {
		writeSuccess(w, s.logger, dragResponse{})
		return
	}
	writeSuccess(w, s.logger, dragResponse{Hit: true, Result: &res, Description: render.DescribeDrop(res)})
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	req, set, ok := s.hitSet(w, r)
	if !ok {
		return
	}
	id, hit := set.CheckHover(req.X, req.Y, hotspot.Meta{ActiveID: req.ActiveID})
	writeSuccess(w, s.logger, hoverResponse{Hit: hit, ID: id})
}

// hitSet decodes a hit request and builds its testers. On failure the
// error response has already been written.
func (s *Server) hitSet(w http.ResponseWriter, r *http.Request) (hitRequest, hotspot.Set, bool) {
	req := hitRequest{Options: s.options()}
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return req, hotspot.Set{}, false
	}

	if len(req.Areas) > 0 {
		for _, a := range req.Areas {
			if err := validate.Area(a); err != nil {
				s.fail(w, r, err)
				return req, hotspot.Set{}, false
			}
		}
		return req, hotspot.Generate(pipeline.HitTypes, req.Areas, req.Hotspots), true
	}

	if err := validate.Region(req.Region); err != nil {
		s.fail(w, r, err)
		return req, hotspot.Set{}, false
	}
	_, set, err := pipeline.Hotspots(req.Region, req.Options)
	if err != nil {
		s.fail(w, r, err)
		return req, hotspot.Set{}, false
	}
	return req, set, true
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	opts := s.options()
	if err := s.decode(w, r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := validate.Region(opts.Region); err != nil {
		s.fail(w, r, err)
		return
	}
	cfg, err := opts.PackingConfig()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeSuccess(w, s.logger, stats.Summarize(opts.Region, cfg))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts := s.options()
	if err := s.decode(w, r, &opts); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := validate.Region(opts.Region); err != nil {
		s.fail(w, r, err)
		return
	}
	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), opts.Region, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	out := make(map[string]any, len(artifacts))
	for format, data := range artifacts {
		if format == render.FormatPNG {
			out[format] = data
			continue
		}
		out[format] = string(data)
	}
	writeSuccess(w, s.logger, renderResponse{Artifacts: out, Cached: hit})
}

func newRegionResponse(reg region.Region, cached bool) regionResponse {
	resp := regionResponse{Region: reg, Rows: len(reg), Items: reg.Len(), Cached: cached}
	if h, err := cache.HashJSON(reg); err == nil {
		resp.Hash = h
	}
	return resp
}
