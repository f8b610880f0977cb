package sizing

import (
	stderrors "errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

// Script sizes items with a JavaScript expression. The expression sees
// one global, item, with the fields id, size, row, position and payload:
//
//	item.payload.width / 100
//	item.id.startsWith("hero") ? 8 : item.size
//
// The expression is compiled once. A goja runtime is not safe for
// concurrent use, so each evaluation borrows one from a pool. An
// evaluation running longer than the timeout is interrupted.
type Script struct {
	src     string
	prog    *goja.Program
	pool    sync.Pool
	timeout time.Duration
}

// DefaultScriptTimeout bounds one evaluation of a script sizer.
const DefaultScriptTimeout = 100 * time.Millisecond

// IsScript reports whether expr selects a script sizer.
func IsScript(expr string) bool {
	kind, _, _ := strings.Cut(strings.TrimSpace(expr), ":")
	return kind == "js"
}

// NewScript compiles expr.
func NewScript(expr string) (*Script, error) {
	prog, err := goja.Compile("sizer", "("+expr+")", false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSizer, err, "compile sizer expression")
	}
	s := &Script{src: expr, prog: prog, timeout: DefaultScriptTimeout}
	s.pool.New = func() any { return goja.New() }
	return s, nil
}

// SetTimeout changes the per-evaluation limit. Zero or less disables it.
func (s *Script) SetTimeout(d time.Duration) { s.timeout = d }

// Source returns the expression as written.
func (s *Script) Source() string { return s.src }

// Eval runs the expression for it.
func (s *Script) Eval(it region.Item) (float64, error) {
	vm := s.pool.Get().(*goja.Runtime)
	defer s.pool.Put(vm)

	payload := it.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	if err := vm.Set("item", map[string]any{
		"id":       it.ID,
		"size":     it.Size,
		"row":      it.Row,
		"position": it.Position,
		"payload":  payload,
	}); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInternal, err, "bind item")
	}

	v, err := s.run(vm)
	if err != nil {
		var interrupted *goja.InterruptedError
		if stderrors.As(err, &interrupted) {
			return 0, errors.New(errors.ErrCodeInvalidSizer, "sizer for %q exceeded %v", it.ID, s.timeout)
		}
		return 0, errors.Wrap(errors.ErrCodeInvalidSizer, err, "evaluate sizer for %q", it.ID)
	}
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return 0, errors.New(errors.ErrCodeInvalidSizer, "sizer returned nothing for %q", it.ID)
	}
	f := v.ToFloat()
	if math.IsNaN(f) || f < 0 {
		return 0, errors.New(errors.ErrCodeInvalidSizer, "sizer returned %v for %q", v, it.ID)
	}
	return f, nil
}

// run executes the program under the timeout. The interrupt flag is
// cleared before the runtime goes back to the pool.
func (s *Script) run(vm *goja.Runtime) (goja.Value, error) {
	if s.timeout <= 0 {
		return vm.RunProgram(s.prog)
	}
	fired := make(chan struct{})
	timer := time.AfterFunc(s.timeout, func() {
		vm.Interrupt("timeout")
		close(fired)
	})
	v, err := vm.RunProgram(s.prog)
	if !timer.Stop() {
		<-fired
	}
	vm.ClearInterrupt()
	return v, err
}

// Size implements region.Sizer. Items the expression cannot size keep
// their Size field, so packing stays total.
func (s *Script) Size(it region.Item) float64 {
	f, err := s.Eval(it)
	if err != nil {
		return it.Size
	}
	return f
}
