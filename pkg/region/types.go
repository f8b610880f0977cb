package region

import "maps"

// DefaultMaxSize is the row capacity used when PackingConfig.MaxSize is unset.
const DefaultMaxSize = 8.0

// Item is one unit placed in a row. Row and Position are 1-based and are
// only ever assigned by the packer; values supplied by callers are ignored.
type Item struct {
	ID       string         `json:"id" yaml:"id"`
	Size     float64        `json:"size" yaml:"size"`
	Row      int            `json:"row,omitempty" yaml:"row,omitempty"`
	Position int            `json:"position,omitempty" yaml:"position,omitempty"`
	Payload  map[string]any `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Clone returns a copy of it that shares no memory with the original.
// The payload is copied one level deep.
func (it Item) Clone() Item {
	it.Payload = maps.Clone(it.Payload)
	return it
}

// Row is an ordered sequence of items.
type Row []Item

// Region is an ordered sequence of rows. A region holding a single empty
// row is the placeholder for an otherwise empty region.
type Region []Row

// Clone deep-copies r.
func (r Region) Clone() Region {
	if r == nil {
		return nil
	}
	out := make(Region, len(r))
	for i, row := range r {
		out[i] = make(Row, len(row))
		for j, it := range row {
			out[i][j] = it.Clone()
		}
	}
	return out
}

// Items returns every item in reading order.
func (r Region) Items() []Item {
	var items []Item
	for _, row := range r {
		items = append(items, row...)
	}
	return items
}

// Len returns the number of items.
func (r Region) Len() int {
	n := 0
	for _, row := range r {
		n += len(row)
	}
	return n
}

// IDs returns every item identifier in reading order.
func (r Region) IDs() []string {
	ids := make([]string, 0, r.Len())
	for _, row := range r {
		for _, it := range row {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// Find returns the item with the given identifier.
func (r Region) Find(id string) (Item, bool) {
	for _, row := range r {
		for _, it := range row {
			if it.ID == id {
				return it, true
			}
		}
	}
	return Item{}, false
}

// IsPlaceholder reports whether r is the lone empty placeholder row.
func (r Region) IsPlaceholder() bool {
	return len(r) == 1 && len(r[0]) == 0
}

// Location addresses a slot in a region. Row and Position are 1-based;
// zero means unset.
type Location struct {
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Row      int    `json:"row,omitempty" yaml:"row,omitempty"`
	Position int    `json:"position,omitempty" yaml:"position,omitempty"`
	NewRow   bool   `json:"newRow,omitempty" yaml:"newRow,omitempty"`
}

// Sizer measures an item for packing.
type Sizer interface {
	Size(Item) float64
}

// SizeFunc adapts a function to the Sizer interface.
type SizeFunc func(Item) float64

// Size calls f.
func (f SizeFunc) Size(it Item) float64 { return f(it) }

// FieldSizer reads Item.Size.
var FieldSizer Sizer = SizeFunc(func(it Item) float64 { return it.Size })

// PackingConfig bounds row size. A zero value packs with DefaultMaxSize
// and FieldSizer.
type PackingConfig struct {
	MaxSize float64
	Sizer   Sizer
}

func (c PackingConfig) withDefaults() PackingConfig {
	if c.MaxSize <= 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.Sizer == nil {
		c.Sizer = FieldSizer
	}
	return c
}

// RowSizes returns the summed size of every row.
func (r Region) RowSizes(cfg PackingConfig) []float64 {
	cfg = cfg.withDefaults()
	sizes := make([]float64, len(r))
	for i, row := range r {
		for _, it := range row {
			sizes[i] += cfg.Sizer.Size(it)
		}
	}
	return sizes
}
