package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dwthomas77/dropgrid/pkg/pipeline"
	"github.com/dwthomas77/dropgrid/pkg/validate"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	packingFlags

	output   string // output base path
	formats  string // comma-separated formats
	at       string // pointer position X,Y
	activeID string // hovered item for hover hysteresis
	detailed bool   // list items inside row clusters
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <region>",
		Short: "Draw a region's rows and hotspots",
		Long: `Render draws the measured region as a diagnostic picture.

svg and png show the rows and items as they would be laid out. With --at
they also mark the drop zone under the pointer and the hovered item. dot
writes a Graphviz description of the rows and graph lays it out as SVG.`,
		Example: `  dropgrid render page.json
  dropgrid render page.json -f svg,png --at 120,35
  dropgrid render page.json -f dot,graph --detailed -o out/page`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: input name)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, dot, graph (comma-separated)")
	cmd.Flags().StringVar(&opts.at, "at", "", "pointer position X,Y to highlight")
	cmd.Flags().StringVar(&opts.activeID, "active", "", "currently hovered item id")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list items in graph output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	opts.packingFlags.register(cmd)
	return cmd
}

func (c *CLI) runRender(ctx context.Context, cmd *cobra.Command, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	doc, err := loadRegion(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	if err := validate.Region(doc.Rows); err != nil {
		return err
	}

	po := c.baseOptions()
	opts.packingFlags.apply(&po)
	po.Detailed = opts.detailed
	po.ActiveID = opts.activeID
	po.Refresh = opts.refresh
	if po.Formats, err = parseFormats(opts.formats); err != nil {
		return err
	}
	if opts.at != "" {
		p, err := parsePoint(opts.at)
		if err != nil {
			return err
		}
		po.Pointer = &p
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	artifacts, hit, err := runner.RenderWithCacheInfo(ctx, doc.Rows, po)
	if err != nil {
		return err
	}
	prog.done("Rendered " + input)

	paths, err := writeArtifacts(basePath(opts.output, input), po.Formats, artifacts)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	for _, p := range paths {
		printFile(stderr, p)
	}
	printRegionStats(stderr, len(doc.Rows), doc.Rows.Len(), hit)
	if po.Pointer != nil {
		if scene, err := pipeline.Scene(doc.Rows, po); err == nil {
			printDetail(stderr, "%s", scene.Caption())
		}
	}
	return nil
}
