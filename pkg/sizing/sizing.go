// Package sizing provides region.Sizer strategies and parses them from
// short textual descriptions used by config files and the CLI.
//
//	field           item.Size (default)
//	const:2         every item has size 2
//	payload:width   item.Payload["width"], falling back to item.Size
//	js:<expr>       a JavaScript expression over `item`
package sizing

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

// Field sizes items by their Size field.
func Field() region.Sizer { return region.FieldSizer }

// Constant sizes every item as v.
func Constant(v float64) region.Sizer {
	return region.SizeFunc(func(region.Item) float64 { return v })
}

// Payload sizes items by a numeric payload value. Items without the key,
// or with a non-numeric value, fall back to their Size field.
func Payload(key string) region.Sizer {
	return region.SizeFunc(func(it region.Item) float64 {
		if v, ok := Number(it.Payload[key]); ok {
			return v
		}
		return it.Size
	})
}

// Number converts decoded JSON, YAML or TOML scalars to float64.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// Parse builds a sizer from its textual form. The empty string is "field".
func Parse(s string) (region.Sizer, error) {
	s = strings.TrimSpace(s)
	kind, arg, _ := strings.Cut(s, ":")

	switch kind {
	case "", "field":
		return Field(), nil
	case "const":
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil || v < 0 {
			return nil, errors.New(errors.ErrCodeInvalidSizer, "const sizer needs a non-negative number, got %q", arg)
		}
		return Constant(v), nil
	case "payload":
		key := strings.TrimSpace(arg)
		if key == "" {
			return nil, errors.New(errors.ErrCodeInvalidSizer, "payload sizer needs a key")
		}
		return Payload(key), nil
	case "js":
		script, err := NewScript(arg)
		if err != nil {
			return nil, err
		}
		return script, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidSizer, "unknown sizer %q (want field, const:N, payload:KEY or js:EXPR)", s)
}
