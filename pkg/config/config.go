// Package config loads dropgrid settings from a TOML file.
//
// Settings resolve in order: built-in defaults, then the config file, then
// command-line flags. A file only needs the keys it changes:
//
//	[drag]
//	offset_y = 0.25
//
//	[packing]
//	max_size = 12
//	sizer = "payload:span"
//
//	[cache]
//	backend = "file"
//	ttl = "12h"
//
//	[server]
//	allow_scripts = true
//
// Script sizers ("js:...") run caller-supplied code, so the API server
// refuses them in requests unless allow_scripts is set.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dwthomas77/dropgrid/pkg/cache"
	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	"github.com/dwthomas77/dropgrid/pkg/measure"
	"github.com/dwthomas77/dropgrid/pkg/region"
	"github.com/dwthomas77/dropgrid/pkg/sizing"
)

// DefaultAddr is the listen address of the API server.
const DefaultAddr = "localhost:8080"

// Config is the full configuration file.
type Config struct {
	Drag    hotspot.DragConfig  `toml:"drag"`
	Hover   hotspot.HoverConfig `toml:"hover"`
	Packing Packing             `toml:"packing"`
	Measure measure.Metrics     `toml:"measure"`
	Cache   Cache               `toml:"cache"`
	Server  Server              `toml:"server"`
}

// Packing configures row packing.
type Packing struct {
	MaxSize float64 `toml:"max_size"`
	// Sizer is a sizing.Parse expression such as "field" or "const:1".
	Sizer string `toml:"sizer"`
}

// Cache selects the result cache.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir,omitempty"`
	RedisAddr string   `toml:"redis_addr,omitempty"`
	// TTL replaces every per-stage lifetime when set. Zero keeps the defaults.
	TTL       Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`
	// AllowScripts lets API requests name a js: sizer.
	AllowScripts bool `toml:"allow_scripts"`
}

// Duration is a time.Duration written as a string ("90s", "12h") in TOML.
type Duration time.Duration

// Duration returns d as a time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Default returns the built-in configuration.
func Default() Config {
	hs := hotspot.DefaultConfig()
	return Config{
		Drag:    hs.Drag,
		Hover:   hs.Hover,
		Packing: Packing{MaxSize: region.DefaultMaxSize, Sizer: "field"},
		Measure: measure.DefaultMetrics(),
		Cache:   Cache{Backend: cache.BackendNone},
		Server:  Server{Addr: DefaultAddr},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/dropgrid/config.toml or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dropgrid", "config.toml"), nil
}

// Load reads path over the defaults. A missing file at the default path is
// not an error; a missing file named explicitly is. Unknown keys are
// rejected so typos surface instead of being ignored.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := checkUndecoded(md, path); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func checkUndecoded(md toml.MetaData, source string) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", source, strings.Join(keys, ", "))
}

// Decode parses TOML text over the defaults.
func Decode(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := checkUndecoded(md, "config"); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and that the sizer and cache backend are known.
func (c Config) Validate() error {
	if c.Drag.OffsetX < 0 || c.Drag.OffsetX > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "drag.offset_x must be within [0, 1], got %v", c.Drag.OffsetX)
	}
	if c.Drag.OffsetY < 0 || c.Drag.OffsetY > 0.5 {
		return errors.New(errors.ErrCodeInvalidConfig, "drag.offset_y must be within [0, 0.5], got %v", c.Drag.OffsetY)
	}
	if c.Drag.OffsetHighlight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "drag.offset_highlight must be non-negative")
	}
	if c.Hover.OffsetActive < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "hover.offset_active must be non-negative")
	}
	if c.Packing.MaxSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "packing.max_size must be positive, got %v", c.Packing.MaxSize)
	}
	if _, err := sizing.Parse(c.Packing.Sizer); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "packing.sizer")
	}
	if c.Measure.UnitWidth <= 0 || c.Measure.RowHeight <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "measure.unit_width and measure.row_height must be positive")
	}
	switch c.Cache.Backend {
	case "", cache.BackendNone, cache.BackendFile, cache.BackendRedis:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of none, file, redis; got %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must be non-negative")
	}
	return nil
}

// Hotspots returns the drag and hover groups as a hotspot.Config.
func (c Config) Hotspots() hotspot.Config {
	return hotspot.Config{Drag: c.Drag, Hover: c.Hover}
}

// Overrides expresses the configured hotspot groups as overrides of the
// hotspot defaults, for hotspot.Generate.
func (c Config) Overrides() hotspot.Overrides {
	return hotspot.Overrides{
		Drag: hotspot.DragOverrides{
			OffsetX:         hotspot.Float(c.Drag.OffsetX),
			OffsetY:         hotspot.Float(c.Drag.OffsetY),
			OffsetHighlight: hotspot.Float(c.Drag.OffsetHighlight),
		},
		Hover: hotspot.HoverOverrides{OffsetActive: hotspot.Float(c.Hover.OffsetActive)},
	}
}

// PackingConfig resolves the sizer expression.
func (c Config) PackingConfig() (region.PackingConfig, error) {
	s, err := sizing.Parse(c.Packing.Sizer)
	if err != nil {
		return region.PackingConfig{}, err
	}
	return region.PackingConfig{MaxSize: c.Packing.MaxSize, Sizer: s}, nil
}

// CacheOptions returns the options for cache.New.
func (c Config) CacheOptions() cache.Options {
	return cache.Options{Backend: c.Cache.Backend, Dir: c.Cache.Dir, RedisAddr: c.Cache.RedisAddr}
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
