package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	dgio "github.com/dwthomas77/dropgrid/pkg/io"
	"github.com/dwthomas77/dropgrid/pkg/region"
	"github.com/dwthomas77/dropgrid/pkg/stats"
)

// regionDoc is [[a(5)] [b(5) c(2)]].
const regionDoc = `{"name":"page","rows":[
  [{"id":"a","size":5,"payload":{"title":"Alpha"}}],
  [{"id":"b","size":5},{"id":"c","size":2}]
]}`

const scenarioDoc = `{
  "region": ` + regionDoc + `,
  "action": {"type":"add","item":{"id":"n","size":1},"location":{"row":1,"position":1}}
}`

// testEnv is a temp directory holding a config and input documents.
type testEnv struct {
	dir    string
	config string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	writeFile(t, cfg, "[cache]\nbackend = \"file\"\ndir = \""+filepath.Join(dir, "cache")+"\"\n")
	return testEnv{dir: dir, config: cfg}
}

func (e testEnv) path(name string) string { return filepath.Join(e.dir, name) }

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// run executes the CLI with args and returns stdout and stderr.
func (e testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", e.config}, args...))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(""))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeRows(t *testing.T, data string) [][]string {
	t.Helper()
	var doc dgio.RegionDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return rowIDs(doc.Rows)
}

func rowIDs(r region.Region) [][]string {
	out := make([][]string, len(r))
	for i, row := range r {
		out[i] = []string{}
		for _, it := range row {
			out[i] = append(out[i], it.ID)
		}
	}
	return out
}

func TestRebuildCommand(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.path("page.json"), regionDoc)
	writeFile(t, env.path("scenario.json"), scenarioDoc)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"scenario", []string{"rebuild", env.path("scenario.json")}, "[[n a] [b c]]"},
		{"remove", []string{"rebuild", "-r", env.path("page.json"), "--remove", "b"}, "[[a] [c]]"},
		{"remove group", []string{"rebuild", "-r", env.path("page.json"), "--remove", "a", "--remove", "c"}, "[[b]]"},
		{"add new row", []string{"rebuild", "-r", env.path("page.json"), "--add", "x:2", "--at", "2:new"}, "[[a] [x] [b c]]"},
		{"add group", []string{"rebuild", "-r", env.path("page.json"), "--add", "x:1,y:1", "--at", "1"}, "[[a] [x] [y] [b c]]"},
		{"remove row", []string{"rebuild", "-r", env.path("page.json"), "--remove-row", "1"}, "[[b c]]"},
		{"max size", []string{"rebuild", "-r", env.path("page.json"), "--max-size", "5"}, "[[a] [b] [c]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := env.run(t, tt.args...)
			if err != nil {
				t.Fatalf("rebuild: %v", err)
			}
			if got := strings.Join(strings.Fields(fmtRows(decodeRows(t, stdout))), " "); got != tt.want {
				t.Errorf("rows = %s, want %s", got, tt.want)
			}
		})
	}
}

func fmtRows(rows [][]string) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = "[" + strings.Join(r, " ") + "]"
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func TestRebuildCommandErrors(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.path("page.json"), regionDoc)
	writeFile(t, env.path("scenario.json"), scenarioDoc)

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"no input", []string{"rebuild"}, "required"},
		{"both inputs", []string{"rebuild", env.path("scenario.json"), "-r", env.path("page.json")}, "not both"},
		{"missing file", []string{"rebuild", "-r", env.path("nope.json")}, "nope.json"},
		{"unknown id", []string{"rebuild", "-r", env.path("page.json"), "--remove", "zz"}, `item "zz" not found`},
		{"duplicate add", []string{"rebuild", "-r", env.path("page.json"), "--add", "a:1"}, "already in the region"},
		{"bad location", []string{"rebuild", "-r", env.path("page.json"), "--add", "x:1", "--at", "one"}, "location"},
		{"exclusive flags", []string{"rebuild", "-r", env.path("page.json"), "--add", "x", "--remove", "a"}, "none of the others"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestRebuildCommandOutputFile(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.path("page.json"), regionDoc)
	out := env.path("next.yaml")

	stdout, stderr, err := env.run(t, "rebuild", "-r", env.path("page.json"), "--remove", "a", "-o", out, "--render", "svg")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty with -o, got %q", stdout)
	}
	if !strings.Contains(stderr, out) {
		t.Errorf("stderr should name the output file: %q", stderr)
	}

	doc, err := dgio.ImportRegion(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := fmtRows(rowIDs(doc.Rows)); got != "[[b c]]" {
		t.Errorf("written rows = %s", got)
	}
	svg, err := os.ReadFile(env.path("next.svg"))
	if err != nil {
		t.Fatalf("svg not written: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg output is not an SVG")
	}
}

func TestPackCommand(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.path("items.yaml"), "- {id: a, size: 5}\n- {id: b, size: 5}\n- {id: c, size: 2}\n")

	stdout, _, err := env.run(t, "pack", env.path("items.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if got := fmtRows(decodeRows(t, stdout)); got != "[[a] [b c]]" {
		t.Errorf("packed = %s", got)
	}

	stdout, _, err = env.run(t, "pack", env.path("items.yaml"), "--sizer", "const:1", "--max-size", "2")
	if err != nil {
		t.Fatal(err)
	}
	if got := fmtRows(decodeRows(t, stdout)); got != "[[a b] [c]]" {
		t.Errorf("packed with const sizer = %s", got)
	}
}

func TestHitCommand(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.path("page.json"), regionDoc)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"drag child", []string{"50", "30"}, "row 1 child 1 left"},
		{"drag miss", []string{"900", "900"}, "none"},
		{"hover", []string{"250", "100", "--type", "hover"}, "c"},
		{"hover sticky", []string{"100", "65", "--type", "hover", "--active", "a"}, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"hit", env.path("page.json")}, tt.args...)
			stdout, _, err := env.run(t, args...)
			if err != nil {
				t.Fatal(err)
			}
			if got := strings.TrimSpace(stdout); got != tt.want {
				t.Errorf("hit = %q, want %q", got, tt.want)
			}
		})
	}

	stdout, _, err := env.run(t, "hit", env.path("page.json"), "50", "30", "--json")
	if err != nil {
		t.Fatal(err)
	}
	var res hitResult
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Hit || res.Drop == nil || res.Drop.ID != 1 || res.Drop.ChildID != 1 {
		t.Errorf("json hit = %+v", res)
	}

	writeFile(t, env.path("areas.json"), `{"areas": [
	  {"index": 1, "id": "row-1", "isFirstRow": true, "isLastRow": true,
	   "position": {"top": 0, "bottom": 60, "left": 0, "right": 320},
	   "children": [{"index": 1, "id": "a", "position": {"top": 0, "bottom": 60, "left": 0, "right": 200}}]}
	]}`)
	stdout, _, err = env.run(t, "hit", "--areas", env.path("areas.json"), "50", "30")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(stdout); got != "row 1 child 1 left" {
		t.Errorf("hit on area document = %q", got)
	}
	writeFile(t, env.path("inverted.json"), `{"areas": [{"index": 1, "position": {"top": 60, "bottom": 0, "left": 0, "right": 10}}]}`)
	if _, _, err := env.run(t, "hit", "--areas", env.path("inverted.json"), "5", "5"); err == nil {
		t.Error("inverted area should be rejected")
	}

	if _, _, err := env.run(t, "hit", env.path("page.json"), "1", "1", "--type", "poke"); err == nil {
		t.Error("unknown type should fail")
	}
}

func TestStatsCommand(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.path("page.json"), regionDoc)

	stdout, _, err := env.run(t, "stats", env.path("page.json"), "--json")
	if err != nil {
		t.Fatal(err)
	}
	var sum stats.Summary
	if err := json.Unmarshal([]byte(stdout), &sum); err != nil {
		t.Fatal(err)
	}
	if sum.Rows != 2 || sum.Items != 3 || sum.Slack != 4 {
		t.Errorf("summary = %+v", sum)
	}

	stdout, _, err = env.run(t, "stats", env.path("page.json"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Row", "Fill", "capacity", "slack"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("table output missing %q:\n%s", want, stdout)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.path("page.json"), regionDoc)
	base := env.path("out/page")

	_, stderr, err := env.run(t, "render", env.path("page.json"), "-f", "svg,dot", "-o", base, "--at", "50,30")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{base + ".svg", base + ".dot"} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not written: %v", p, err)
		}
	}
	if !strings.Contains(stderr, "row 1 child 1 left") {
		t.Errorf("caption missing from stderr: %q", stderr)
	}

	if _, _, err := env.run(t, "render", env.path("page.json"), "-f", "pdf"); err == nil {
		t.Error("pdf should be rejected")
	}
}

func TestBatchCommand(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.path("one.json"), scenarioDoc)
	writeFile(t, env.path("two.yaml"), "region:\n  rows: [[{id: a, size: 1}]]\naction: {type: remove, id: a}\n")
	outDir := env.path("results")

	if _, _, err := env.run(t, "batch", env.path("one.json"), env.path("two.yaml"), "--out", outDir, "-j", "2"); err != nil {
		t.Fatal(err)
	}

	one, err := dgio.ImportRegion(filepath.Join(outDir, "one.rebuilt.json"))
	if err != nil {
		t.Fatal(err)
	}
	if got := fmtRows(rowIDs(one.Rows)); got != "[[n a] [b c]]" {
		t.Errorf("one = %s", got)
	}
	two, err := dgio.ImportRegion(filepath.Join(outDir, "two.rebuilt.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !two.Rows.IsPlaceholder() {
		t.Errorf("two = %v, want the empty placeholder", fmtRows(rowIDs(two.Rows)))
	}
}

func TestConfigCommand(t *testing.T) {
	env := newTestEnv(t)
	stdout, _, err := env.run(t, "config")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[drag]", "offset_y = 0.2", "[cache]", `backend = "file"`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config output missing %q:\n%s", want, stdout)
		}
	}

	writeFile(t, env.config, "[drag]\noffset_y = 0.9\n")
	if _, _, err := env.run(t, "config"); err == nil {
		t.Error("out-of-range config should fail")
	}
}

func TestCacheCommands(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, env.path("page.json"), regionDoc)

	stdout, _, err := env.run(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(stdout); got != env.path("cache") {
		t.Errorf("cache path = %q, want %q", got, env.path("cache"))
	}

	_, stderr, err := env.run(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "empty") {
		t.Errorf("clear on missing dir: %q", stderr)
	}

	if _, _, err := env.run(t, "rebuild", "-r", env.path("page.json"), "--remove", "a"); err != nil {
		t.Fatal(err)
	}
	_, stderr, err = env.run(t, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "Cleared 1 cached entries") {
		t.Errorf("clear after rebuild: %q", stderr)
	}
}

func TestCompletionCommand(t *testing.T) {
	env := newTestEnv(t)
	stdout, _, err := env.run(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, "dropgrid") {
		t.Error("bash completion does not mention dropgrid")
	}
}
