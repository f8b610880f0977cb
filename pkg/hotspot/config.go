package hotspot

// Default hotspot settings.
const (
	DefaultOffsetY         = 0.2
	DefaultOffsetX         = 0.50
	DefaultOffsetHighlight = 5.0
	DefaultOffsetActive    = 15.0
)

// DragConfig sizes the drop zones of a drag hotspot.
type DragConfig struct {
	// OffsetX is the fraction of a width used for left/right folds.
	OffsetX float64 `json:"offsetX" toml:"offset_x" yaml:"offsetX"`
	// OffsetY is the fraction of a height used for the top and bottom folds.
	OffsetY float64 `json:"offsetY" toml:"offset_y" yaml:"offsetY"`
	// OffsetHighlight is fixed slack in pixels around every edge.
	OffsetHighlight float64 `json:"offsetHighlight" toml:"offset_highlight" yaml:"offsetHighlight"`
}

// HoverConfig sizes the hysteresis of a hover hotspot.
type HoverConfig struct {
	// OffsetActive grows the active child's rectangle on every side.
	OffsetActive float64 `json:"offsetActive" toml:"offset_active" yaml:"offsetActive"`
}

// Config groups the per-type settings.
type Config struct {
	Drag  DragConfig  `json:"drag" toml:"drag" yaml:"drag"`
	Hover HoverConfig `json:"hover" toml:"hover" yaml:"hover"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Drag: DragConfig{
			OffsetX:         DefaultOffsetX,
			OffsetY:         DefaultOffsetY,
			OffsetHighlight: DefaultOffsetHighlight,
		},
		Hover: HoverConfig{OffsetActive: DefaultOffsetActive},
	}
}

// DragOverrides holds optional drag settings. Nil fields keep the base value.
type DragOverrides struct {
	OffsetX         *float64 `json:"offsetX,omitempty" toml:"offset_x" yaml:"offsetX,omitempty"`
	OffsetY         *float64 `json:"offsetY,omitempty" toml:"offset_y" yaml:"offsetY,omitempty"`
	OffsetHighlight *float64 `json:"offsetHighlight,omitempty" toml:"offset_highlight" yaml:"offsetHighlight,omitempty"`
}

// HoverOverrides holds optional hover settings. Nil fields keep the base value.
type HoverOverrides struct {
	OffsetActive *float64 `json:"offsetActive,omitempty" toml:"offset_active" yaml:"offsetActive,omitempty"`
}

// Overrides is a per-call shallow override of Config.
type Overrides struct {
	Drag  DragOverrides  `json:"drag" toml:"drag" yaml:"drag"`
	Hover HoverOverrides `json:"hover" toml:"hover" yaml:"hover"`
}

// Apply returns c with every non-nil override field replaced. Groups are
// merged field by field; nothing nests deeper than one level.
func (c Config) Apply(o Overrides) Config {
	if o.Drag.OffsetX != nil {
		c.Drag.OffsetX = *o.Drag.OffsetX
	}
	if o.Drag.OffsetY != nil {
		c.Drag.OffsetY = *o.Drag.OffsetY
	}
	if o.Drag.OffsetHighlight != nil {
		c.Drag.OffsetHighlight = *o.Drag.OffsetHighlight
	}
	if o.Hover.OffsetActive != nil {
		c.Hover.OffsetActive = *o.Hover.OffsetActive
	}
	return c
}

// Float returns a pointer to v, for building Overrides literals.
func Float(v float64) *float64 { return &v }
