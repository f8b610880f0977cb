package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	dgio "github.com/dwthomas77/dropgrid/pkg/io"
	"github.com/dwthomas77/dropgrid/pkg/pipeline"
	"github.com/dwthomas77/dropgrid/pkg/render"
)

func newTestPlayModel(t *testing.T) playModel {
	t.Helper()
	doc, err := dgio.ReadRegion(strings.NewReader(regionDoc), dgio.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	opts := pipeline.Options{
		MaxSize:  8,
		Sizer:    "field",
		Metrics:  playMetrics,
		Hotspots: playHotspots,
	}
	m := newPlayModel(context.Background(), runner, opts, doc.Rows, 2)
	if m.err != nil {
		t.Fatal(m.err)
	}
	return m
}

func send(t *testing.T, m playModel, msg tea.Msg) playModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(playModel)
}

func move(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlayPointer(t *testing.T) {
	tests := []struct {
		name      string
		x, y      int
		wantDrop  string
		wantHover string
	}{
		// Row 1 spans lines 2-4 on screen, a spans cells 0-20.
		{"left half of a", 5, 3, "row 1 child 1 left", "a"},
		{"right half of a", 15, 3, "row 1 child 1 right", "a"},
		{"c on row 2", 22, 7, "row 2 child 2 left", "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := send(t, newTestPlayModel(t), move(tt.x, tt.y))
			if m.scene.Drop == nil {
				t.Fatal("no drop zone under the pointer")
			}
			if got := describe(m); got != tt.wantDrop {
				t.Errorf("drop = %q, want %q", got, tt.wantDrop)
			}
			if m.scene.Hover != tt.wantHover {
				t.Errorf("hover = %q, want %q", m.scene.Hover, tt.wantHover)
			}
		})
	}
}

func describe(m playModel) string {
	if m.scene.Drop == nil {
		return ""
	}
	return render.DescribeDrop(*m.scene.Drop)
}

func TestPlayEditing(t *testing.T) {
	m := newTestPlayModel(t)
	m = send(t, m, move(5, 3))

	m = send(t, m, click(5, 3))
	if got := fmtRows(rowIDs(m.region)); got != "[[item-1 a] [b c]]" {
		t.Fatalf("after drop = %s", got)
	}
	if !strings.Contains(m.message, "dropped item-1") {
		t.Errorf("message = %q", m.message)
	}
	if m.scene.Hover != "item-1" {
		t.Errorf("pointer should now hover the new item, got %q", m.scene.Hover)
	}

	m = send(t, m, key("x"))
	if got := fmtRows(rowIDs(m.region)); got != "[[a] [b c]]" {
		t.Fatalf("after remove = %s", got)
	}

	m = send(t, m, key("d"))
	if got := fmtRows(rowIDs(m.region)); got != "[[b c]]" {
		t.Fatalf("after remove row = %s", got)
	}

	// Edits are not reversible: unbound keys leave the region alone.
	m = send(t, m, key("u"))
	if got := fmtRows(rowIDs(m.region)); got != "[[b c]]" {
		t.Errorf("u changed the region: %s", got)
	}
	if m.message != "removed row 1" {
		t.Errorf("message = %q, want the last edit", m.message)
	}
}

func TestPlayFreshID(t *testing.T) {
	m := newTestPlayModel(t)
	m.region[0][0].ID = "item-1"
	if id := m.freshID(); id != "item-2" {
		t.Errorf("freshID = %q, want item-2", id)
	}
	if id := m.freshID(); id != "item-3" {
		t.Errorf("second freshID = %q, want item-3", id)
	}
}

func TestPlayView(t *testing.T) {
	m := send(t, newTestPlayModel(t), move(5, 3))
	view := m.View()
	for _, want := range []string{"dropgrid play", "Alpha", "b", "drop: row 1 child 1 left", "hover: Alpha"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestPlayQuit(t *testing.T) {
	for _, k := range []tea.Msg{key("q"), tea.KeyMsg{Type: tea.KeyCtrlC}, tea.KeyMsg{Type: tea.KeyEsc}} {
		if _, cmd := newTestPlayModel(t).Update(k); cmd == nil {
			t.Errorf("%v should quit", k)
		}
	}
}

func TestCellRect(t *testing.T) {
	m := newTestPlayModel(t)
	l, top, r, b := cellRect(m.scene.Areas[1].Children[1].Position)
	if l != 20 || top != 4 || r != 28 || b != 7 {
		t.Errorf("c cell rect = (%d,%d,%d,%d), want (20,4,28,7)", l, top, r, b)
	}
}
