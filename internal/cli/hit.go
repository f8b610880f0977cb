package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dwthomas77/dropgrid/pkg/errors"
	"github.com/dwthomas77/dropgrid/pkg/hotspot"
	dgio "github.com/dwthomas77/dropgrid/pkg/io"
	"github.com/dwthomas77/dropgrid/pkg/pipeline"
	"github.com/dwthomas77/dropgrid/pkg/render"
	"github.com/dwthomas77/dropgrid/pkg/validate"
)

// hitOpts holds the command-line flags for the hit command.
type hitOpts struct {
	packingFlags

	hitType  string // drag or hover
	activeID string // currently hovered item, for hover hysteresis
	areas    bool   // input is an area document, not a region
	asJSON   bool
}

// hitResult is the machine-readable output of the hit command.
type hitResult struct {
	Type  string              `json:"type"`
	X     float64             `json:"x"`
	Y     float64             `json:"y"`
	Hit   bool                `json:"hit"`
	Drop  *hotspot.DragResult `json:"drop,omitempty"`
	Hover string              `json:"hover,omitempty"`
}

// hitCommand creates the hit command.
func (c *CLI) hitCommand() *cobra.Command {
	opts := hitOpts{hitType: string(hotspot.TypeDrag)}

	cmd := &cobra.Command{
		Use:   "hit <region> <x> <y>",
		Short: "Resolve the drop zone or hovered item under a point",
		Long: `Hit measures the region with the configured metrics and tests a pointer
position against its hotspots. Drag reports the row, child and side a
dropped item would land on; hover reports the item under the pointer.

With --areas the input is an area document, such as the output of the
measure endpoint, and is hit-tested as given.`,
		Example: `  dropgrid hit page.json 120 35
  dropgrid hit page.json 120 35 --type hover --active hero
  dropgrid hit --areas measured.json 120 35`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, errX := strconv.ParseFloat(args[1], 64)
			y, errY := strconv.ParseFloat(args[2], 64)
			if errX != nil || errY != nil {
				return errors.New(errors.ErrCodeInvalidInput, "coordinates must be numbers")
			}
			return c.runHit(cmd.Context(), cmd, args[0], render.Point{X: x, Y: y}, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.hitType, "type", "t", opts.hitType, "hotspot type: drag or hover")
	cmd.Flags().StringVar(&opts.activeID, "active", "", "currently hovered item id")
	cmd.Flags().BoolVar(&opts.areas, "areas", false, "input is an area document")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	opts.packingFlags.register(cmd)
	return cmd
}

func (c *CLI) runHit(ctx context.Context, cmd *cobra.Command, input string, p render.Point, opts *hitOpts) error {
	set, err := c.hitSet(cmd.InOrStdin(), input, opts)
	if err != nil {
		return err
	}

	res := hitResult{Type: opts.hitType, X: p.X, Y: p.Y}
	switch hotspot.Type(opts.hitType) {
	case hotspot.TypeDrag:
		if drop, ok := set.CheckDrag(p.X, p.Y); ok {
			res.Hit, res.Drop = true, &drop
		}
	case hotspot.TypeHover:
		res.Hover, res.Hit = set.CheckHover(p.X, p.Y, hotspot.Meta{ActiveID: opts.activeID})
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown hotspot type %q (want drag or hover)", opts.hitType)
	}
	loggerFromContext(ctx).Debug("hit test", "type", opts.hitType, "x", p.X, "y", p.Y, "hit", res.Hit)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		return dgio.Write(out, res, dgio.FormatJSON)
	}
	switch {
	case !res.Hit:
		fmt.Fprintln(out, "none")
	case res.Drop != nil:
		fmt.Fprintln(out, render.DescribeDrop(*res.Drop))
	default:
		fmt.Fprintln(out, res.Hover)
	}
	return nil
}

// hitSet builds testers from a region, measured with the configured
// metrics, or from an area document.
func (c *CLI) hitSet(in io.Reader, input string, opts *hitOpts) (hotspot.Set, error) {
	po := c.baseOptions()
	opts.packingFlags.apply(&po)

	if opts.areas {
		areas, err := loadAreas(in, input)
		if err != nil {
			return hotspot.Set{}, err
		}
		for _, a := range areas {
			if err := validate.Area(a); err != nil {
				return hotspot.Set{}, err
			}
		}
		return hotspot.Generate(pipeline.HitTypes, areas, po.Hotspots), nil
	}

	doc, err := loadRegion(in, input)
	if err != nil {
		return hotspot.Set{}, err
	}
	if err := validate.Region(doc.Rows); err != nil {
		return hotspot.Set{}, err
	}
	_, set, err := pipeline.Hotspots(doc.Rows, po)
	return set, err
}
