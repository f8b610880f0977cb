package sizing

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

func TestParse(t *testing.T) {
	it := region.Item{ID: "hero-1", Size: 3, Payload: map[string]any{"width": 640.0, "label": "x"}}

	tests := []struct {
		expr string
		want float64
	}{
		{"", 3},
		{"field", 3},
		{"const:2", 2},
		{"const: 1.5", 1.5},
		{"payload:width", 640},
		{"payload:missing", 3},
		{"payload:label", 3},
		{"js:item.size * 2", 6},
		{"js:item.payload.width / 160", 4},
		{`js:item.id.startsWith("hero") ? 8 : 1`, 8},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			s, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.expr, err)
			}
			if got := s.Size(it); got != tt.want {
				t.Errorf("Size() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, expr := range []string{"const:", "const:-1", "const:abc", "payload:", "js:(", "area", "pixels:3"} {
		t.Run(expr, func(t *testing.T) {
			s, err := Parse(expr)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", expr, s)
			}
			if !errors.Is(err, errors.ErrCodeInvalidSizer) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidSizer)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{2.5, 2.5, true},
		{float32(1.5), 1.5, true},
		{7, 7, true},
		{int64(9), 9, true},
		{uint64(4), 4, true},
		{json.Number("3.25"), 3.25, true},
		{"12", 12, true},
		{"wide", 0, false},
		{nil, 0, false},
		{true, 0, false},
	}
	for _, tt := range tests {
		got, ok := Number(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Number(%#v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScriptEvalErrors(t *testing.T) {
	tests := []struct {
		expr string
	}{
		{"undefined"},
		{"null"},
		{"'wide'"},
		{"-1"},
		{"item.payload.missing.deeper"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			s, err := NewScript(tt.expr)
			if err != nil {
				t.Fatalf("NewScript() error: %v", err)
			}
			it := region.Item{ID: "a", Size: 5}
			if _, err := s.Eval(it); err == nil {
				t.Error("Eval() = nil error, want error")
			}
			if got := s.Size(it); got != 5 {
				t.Errorf("Size() = %v, want fallback 5", got)
			}
		})
	}
}

func TestScriptConcurrent(t *testing.T) {
	s, err := NewScript("item.size + item.position")
	if err != nil {
		t.Fatal(err)
	}
	if s.Source() != "item.size + item.position" {
		t.Errorf("Source() = %q", s.Source())
	}

	var wg sync.WaitGroup
	errs := make(chan float64, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			it := region.Item{ID: "a", Size: float64(i), Position: 1}
			if got := s.Size(it); got != float64(i+1) {
				errs <- got
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent Size() returned %v", got)
	}
}

func TestScriptWithPacker(t *testing.T) {
	s, err := Parse("js:item.payload.w")
	if err != nil {
		t.Fatal(err)
	}
	items := []region.Item{
		{ID: "a", Payload: map[string]any{"w": 4.0}},
		{ID: "b", Payload: map[string]any{"w": 4.0}},
		{ID: "c", Payload: map[string]any{"w": 1.0}},
	}
	r := region.Pack(items, region.PackingConfig{MaxSize: 8, Sizer: s})
	if len(r) != 2 || len(r[0]) != 2 {
		t.Errorf("Pack() rows = %v, want [[a b] [c]]", r)
	}
}

func TestScriptTimeout(t *testing.T) {
	s, err := NewScript("item.size > 0 ? item.size : (function() { while (true) {} })()")
	if err != nil {
		t.Fatal(err)
	}
	s.SetTimeout(20 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := s.Eval(region.Item{ID: "spin"})
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, errors.ErrCodeInvalidSizer) {
			t.Fatalf("Eval() error = %v, want %v", err, errors.ErrCodeInvalidSizer)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Eval() did not return after the timeout")
	}

	// Pooled runtimes must not carry the interrupt into the next run.
	for i := 0; i < 4; i++ {
		got, err := s.Eval(region.Item{ID: "a", Size: 3})
		if err != nil || got != 3 {
			t.Fatalf("Eval() after timeout = %v, %v; want 3, nil", got, err)
		}
	}
}

func TestIsScript(t *testing.T) {
	tests := []struct {
		expr string
		want bool
	}{
		{"", false},
		{"field", false},
		{"payload:js", false},
		{"js:item.size", true},
		{"  js:1", true},
	}
	for _, tt := range tests {
		if got := IsScript(tt.expr); got != tt.want {
			t.Errorf("IsScript(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}
