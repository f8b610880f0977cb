package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/dwthomas77/dropgrid/pkg/geom"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	dgio "github.com/dwthomas77/dropgrid/pkg/io"
	"github.com/dwthomas77/dropgrid/pkg/measure"
	"github.com/dwthomas77/dropgrid/pkg/pipeline"
	"github.com/dwthomas77/dropgrid/pkg/region"
	"github.com/dwthomas77/dropgrid/pkg/render"
	"github.com/dwthomas77/dropgrid/pkg/validate"
)

// The playground measures in terminal cells instead of pixels.
const (
	playUnitWidth = 4 // cells per size unit
	playRowHeight = 3 // lines per row: border, label, border
	playRowGap    = 1
	playHeader    = 2 // lines above the canvas
)

// playMetrics lays rows out on the terminal grid.
var playMetrics = measure.Metrics{
	UnitWidth: playUnitWidth,
	RowHeight: playRowHeight,
	RowGap:    playRowGap,
}

// playHotspots shrink the pixel-sized defaults to cell sizes.
var playHotspots = hotspot.Overrides{
	Drag:  hotspot.DragOverrides{OffsetHighlight: hotspot.Float(0)},
	Hover: hotspot.HoverOverrides{OffsetActive: hotspot.Float(1)},
}

// Play styles
var (
	playItemStyle  = lipgloss.NewStyle().Foreground(colorWhite)
	playEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	playHoverStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	playDropStyle  = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// playOpts holds the command-line flags for the play command.
type playOpts struct {
	packingFlags

	output string
	size   float64
}

// playCommand creates the play command.
func (c *CLI) playCommand() *cobra.Command {
	opts := playOpts{size: 2}

	cmd := &cobra.Command{
		Use:   "play <region>",
		Short: "Edit a region interactively with the mouse",
		Long: `Play draws the region in the terminal and tracks the mouse.

  move    show the drop zone and hovered item
  click   drop a new item at the highlighted zone
  x       remove the hovered item
  d       remove the row under the pointer
  q       quit (writes --output if given)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlay(cmd.Context(), cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the edited region here on quit")
	cmd.Flags().Float64Var(&opts.size, "size", opts.size, "size of dropped items")
	opts.packingFlags.register(cmd)
	return cmd
}

func (c *CLI) runPlay(ctx context.Context, cmd *cobra.Command, input string, opts *playOpts) error {
	doc, err := loadRegion(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	if err := validate.Region(doc.Rows); err != nil {
		return err
	}

	po := c.baseOptions()
	opts.packingFlags.apply(&po)
	po.Metrics = playMetrics
	po.Hotspots = playHotspots
	if _, err := po.PackingConfig(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	m := newPlayModel(ctx, runner, po, doc.Rows, opts.size)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}

	edited := final.(playModel).region
	if opts.output != "" {
		if err := dgio.ExportRegion(dgio.RegionDoc{Name: doc.Name, Rows: edited}, opts.output); err != nil {
			return err
		}
		printFile(cmd.ErrOrStderr(), opts.output)
	}
	return nil
}

// =============================================================================
// playModel - interactive region editor
// =============================================================================

// playModel is the bubbletea model behind the play command.
type playModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	opts   pipeline.Options

	region region.Region
	scene  render.Scene
	set    hotspot.Set

	size    float64
	nextID  int
	active  string
	message string
	err     error
}

func newPlayModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, r region.Region, size float64) playModel {
	m := playModel{ctx: ctx, runner: runner, opts: opts, size: size, nextID: 1}
	m.setRegion(r)
	return m
}

// setRegion replaces the region and re-measures it. The new scene has no
// pointer until the next motion event or an explicit point call.
func (m *playModel) setRegion(r region.Region) {
	cfg, err := m.opts.PackingConfig()
	if err != nil {
		m.err = err
		return
	}
	m.region = r
	m.scene = render.NewScene(r, m.opts.Metrics, cfg)
	m.set = hotspot.Generate(pipeline.HitTypes, m.scene.Areas, m.opts.Hotspots)
}

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "x":
			if m.scene.Hover != "" {
				m.apply(region.Remove(m.scene.Hover), "removed "+m.scene.Hover)
			}
		case "d":
			if m.scene.Drop != nil {
				m.apply(region.RemoveRow(m.scene.Drop.ID), fmt.Sprintf("removed row %d", m.scene.Drop.ID))
			}
		}
	case tea.MouseMsg:
		p := cellPoint(msg.X, msg.Y)
		m.point(p)
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.scene.Drop != nil {
			m.drop()
		}
	}
	return m, nil
}

// point resolves the hotspots under p and tracks the hovered item for
// hysteresis on the next move.
func (m *playModel) point(p render.Point) {
	m.scene = m.scene.At(p, m.set, m.active)
	m.active = m.scene.Hover
}

// drop inserts a new item at the highlighted drop zone.
func (m *playModel) drop() {
	id := m.freshID()
	loc := pipeline.DropLocation(m.region, *m.scene.Drop)
	m.apply(region.Add(region.Item{ID: id, Size: m.size}, loc), fmt.Sprintf("dropped %s at %s", id, render.DescribeDrop(*m.scene.Drop)))
}

func (m *playModel) freshID() string {
	for {
		id := fmt.Sprintf("item-%d", m.nextID)
		m.nextID++
		if _, taken := m.region.Find(id); !taken {
			return id
		}
	}
}

// apply rebuilds the region with a and keeps the pointer where it was.
func (m *playModel) apply(a region.Action, message string) {
	opts := m.opts
	opts.Region, opts.Action = m.region, a
	out, err := m.runner.Rebuild(m.ctx, opts)
	if err != nil {
		m.err = err
		return
	}
	pointer := m.scene.Pointer
	m.setRegion(out)
	if pointer != nil {
		m.point(*pointer)
	}
	m.message, m.err = message, nil
}

// cellPoint maps a terminal cell to canvas coordinates, aiming at the cell
// centre so hits never land exactly on a boundary.
func cellPoint(x, y int) render.Point {
	return render.Point{X: float64(x) + 0.5, Y: float64(y-playHeader) + 0.5}
}

func (m playModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("dropgrid play"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render("click drop · x remove item · d remove row · q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.canvas().String())

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
	case m.scene.Pointer != nil:
		b.WriteString(StyleDim.Render(m.scene.Caption()))
	}
	if m.message != "" {
		b.WriteString("\n" + styleIconSuccess.Render(iconSuccess) + " " + m.message)
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Canvas
// =============================================================================

// cellStyle selects the style of one canvas cell.
type cellStyle int

const (
	cellPlain cellStyle = iota
	cellEmpty
	cellHover
	cellDrop
)

// cell is one terminal cell. A zero rune is the tail of a wide rune and
// is skipped when printing.
type cell struct {
	r     rune
	style cellStyle
}

// canvas is a grid of styled cells.
type canvas struct {
	cells [][]cell
}

func newCanvas(width, height int) *canvas {
	cells := make([][]cell, height)
	for y := range cells {
		cells[y] = make([]cell, width)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' '}
		}
	}
	return &canvas{cells: cells}
}

func (c *canvas) set(x, y int, r rune, s cellStyle) {
	if y < 0 || y >= len(c.cells) || x < 0 || x >= len(c.cells[y]) {
		return
	}
	c.cells[y][x] = cell{r: r, style: s}
}

// text writes s from (x, y), clipped to width cells.
func (c *canvas) text(x, y, width int, s string, st cellStyle) {
	s = runewidth.Truncate(s, width, "…")
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		c.set(x, y, r, st)
		if w == 2 {
			c.set(x+1, y, 0, st)
		}
		x += w
	}
}

// box draws a single-line border around the cells [l, r) x [t, b).
func (c *canvas) box(l, t, r, b int, st cellStyle) {
	for x := l + 1; x < r-1; x++ {
		c.set(x, t, '─', st)
		c.set(x, b-1, '─', st)
	}
	for y := t + 1; y < b-1; y++ {
		c.set(l, y, '│', st)
		c.set(r-1, y, '│', st)
	}
	c.set(l, t, '┌', st)
	c.set(r-1, t, '┐', st)
	c.set(l, b-1, '└', st)
	c.set(r-1, b-1, '┘', st)
}

// String renders the grid, grouping runs of equal style.
func (c *canvas) String() string {
	styles := map[cellStyle]lipgloss.Style{
		cellPlain: playItemStyle,
		cellEmpty: playEmptyStyle,
		cellHover: playHoverStyle,
		cellDrop:  playDropStyle,
	}

	var b strings.Builder
	for _, row := range c.cells {
		var run strings.Builder
		cur := cellPlain
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(styles[cur].Render(run.String()))
				run.Reset()
			}
		}
		for _, cl := range row {
			if cl.r == 0 {
				continue
			}
			if cl.style != cur {
				flush()
				cur = cl.style
			}
			run.WriteRune(cl.r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

// canvas draws the current scene: item boxes, dashed empty rows, the
// hovered item and the drop indicator.
func (m playModel) canvas() *canvas {
	bounds := m.scene.Bounds
	cv := newCanvas(int(math.Ceil(bounds.Right))+1, int(math.Ceil(bounds.Bottom)))

	for _, area := range m.scene.Areas {
		if !area.HasChildren() {
			l, t, r, b := cellRect(area.Position)
			mid := t + (b-t)/2
			for x := l; x < r; x++ {
				cv.set(x, mid, '┄', cellEmpty)
			}
			continue
		}
		for _, child := range area.Children {
			st := cellPlain
			if child.ID == m.scene.Hover {
				st = cellHover
			}
			l, t, r, b := cellRect(child.Position)
			cv.box(l, t, r, b, st)
			cv.text(l+1, t+(b-t)/2, r-l-2, m.scene.Label(child.ID), st)
		}
	}

	if target, mod, ok := m.scene.Target(); ok {
		drawIndicator(cv, target, mod)
	}
	return cv
}

// drawIndicator marks the edge of target a drop would land on.
func drawIndicator(cv *canvas, target geom.Position, mod hotspot.Modifier) {
	l, t, r, b := cellRect(target)
	switch mod {
	case hotspot.ModifierTop:
		for x := l; x < r; x++ {
			cv.set(x, t, '━', cellDrop)
		}
	case hotspot.ModifierBottom:
		for x := l; x < r; x++ {
			cv.set(x, b-1, '━', cellDrop)
		}
	case hotspot.ModifierRight:
		for y := t; y < b; y++ {
			cv.set(r-1, y, '┃', cellDrop)
		}
	default:
		for y := t; y < b; y++ {
			cv.set(l, y, '┃', cellDrop)
		}
	}
}

// cellRect converts a measured rectangle to half-open cell bounds.
func cellRect(p geom.Position) (l, t, r, b int) {
	return int(math.Round(p.Left)), int(math.Round(p.Top)), int(math.Round(p.Right)), int(math.Round(p.Bottom))
}
