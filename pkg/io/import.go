package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown document format %q", s)
}

// FormatFromPath picks a format from the file extension. Unknown
// extensions and "-" (stdin) are JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// RegionDoc is a named region.
type RegionDoc struct {
	Name string        `json:"name,omitempty" yaml:"name,omitempty"`
	Rows region.Region `json:"rows" yaml:"rows"`
}

// Packing is the packing section of a scenario.
type Packing struct {
	MaxSize float64 `json:"maxSize,omitempty" yaml:"maxSize,omitempty"`
	Sizer   string  `json:"sizer,omitempty" yaml:"sizer,omitempty"`
}

// Scenario is a region plus one action to apply to it.
type Scenario struct {
	Region  RegionDoc     `json:"region" yaml:"region"`
	Action  region.Action `json:"action" yaml:"action"`
	Packing Packing       `json:"packing,omitempty" yaml:"packing,omitempty"`
}

// AreasDoc is a measured area tree, the shape returned by the measure
// endpoint. Hosts that measure their own elements can write it directly.
type AreasDoc struct {
	Areas []hotspot.Area `json:"areas" yaml:"areas"`
}

func decode(r io.Reader, f Format, v any) error {
	var err error
	switch f {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(v)
	default:
		err = json.NewDecoder(r).Decode(v)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return nil
}

// AssignIDs gives every item without an identifier a random UUID, in place.
func AssignIDs(items []region.Item) {
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
	}
}

func assignRegionIDs(r region.Region) {
	for _, row := range r {
		AssignIDs(row)
	}
}

func assignActionIDs(a *region.Action) {
	if a.Item != nil && a.Item.ID == "" {
		a.Item.ID = uuid.NewString()
	}
	AssignIDs(a.Items)
}

// ReadRegion decodes a region document from r. ReadRegion does not close r.
func ReadRegion(r io.Reader, f Format) (RegionDoc, error) {
	var doc RegionDoc
	if err := decode(r, f, &doc); err != nil {
		return RegionDoc{}, err
	}
	assignRegionIDs(doc.Rows)
	return doc, nil
}

// ReadItems decodes a flat list of items. A region document is accepted
// too, in which case its rows are flattened in reading order.
func ReadItems(r io.Reader, f Format) ([]region.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var items []region.Item
	if err := decode(bytes.NewReader(data), f, &items); err != nil {
		doc, docErr := ReadRegion(bytes.NewReader(data), f)
		if docErr != nil {
			return nil, err
		}
		return doc.Rows.Items(), nil
	}
	AssignIDs(items)
	return items, nil
}

// ReadAction decodes an action document.
func ReadAction(r io.Reader, f Format) (region.Action, error) {
	var a region.Action
	if err := decode(r, f, &a); err != nil {
		return region.Action{}, err
	}
	assignActionIDs(&a)
	return a, nil
}

// ReadScenario decodes a scenario document.
func ReadScenario(r io.Reader, f Format) (Scenario, error) {
	var s Scenario
	if err := decode(r, f, &s); err != nil {
		return Scenario{}, err
	}
	assignRegionIDs(s.Region.Rows)
	assignActionIDs(&s.Action)
	return s, nil
}

// ReadAreas decodes an area document. Areas are returned as written;
// see validate.Area.
func ReadAreas(r io.Reader, f Format) ([]hotspot.Area, error) {
	var doc AreasDoc
	if err := decode(r, f, &doc); err != nil {
		return nil, err
	}
	return doc.Areas, nil
}

func importFile[T any](path string, read func(io.Reader, Format) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		if os.IsNotExist(err) {
			return zero, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return read(f, FormatFromPath(path))
}

// ImportRegion reads a region document from path.
func ImportRegion(path string) (RegionDoc, error) { return importFile(path, ReadRegion) }

// ImportItems reads an item list from path.
func ImportItems(path string) ([]region.Item, error) { return importFile(path, ReadItems) }

// ImportAction reads an action document from path.
func ImportAction(path string) (region.Action, error) { return importFile(path, ReadAction) }

// ImportScenario reads a scenario document from path.
func ImportScenario(path string) (Scenario, error) { return importFile(path, ReadScenario) }

// ImportAreas reads an area document from path.
func ImportAreas(path string) ([]hotspot.Area, error) { return importFile(path, ReadAreas) }
