package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/dwthomas77/dropgrid/pkg/errors"
	dgio "github.com/dwthomas77/dropgrid/pkg/io"
	"github.com/dwthomas77/dropgrid/pkg/pipeline"
	"github.com/dwthomas77/dropgrid/pkg/region"
)

// rebuildOpts holds the command-line flags for the rebuild command.
type rebuildOpts struct {
	packingFlags
	outputFlags

	regionPath string   // region document, used instead of a scenario
	add        []string // items to insert, ID:SIZE
	at         string   // insertion location, ROW[:POS][:new]
	remove     []string // ids to remove
	removeRow  int      // row to remove
	render     string   // optional formats to render next to the output
}

// rebuildCommand creates the rebuild command.
func (c *CLI) rebuildCommand() *cobra.Command {
	var opts rebuildOpts

	cmd := &cobra.Command{
		Use:   "rebuild [scenario]",
		Short: "Apply one edit to a region and repack it",
		Long: `Rebuild applies an action to a region and prints the repacked region.

The region and action come from a scenario file, or from --region plus one
of the action flags. Action flags override the scenario's action.`,
		Example: `  dropgrid rebuild scenario.yaml
  dropgrid rebuild -r page.json --add promo:3 --at 2:1
  dropgrid rebuild -r page.json --add promo:3 --at 2:new
  dropgrid rebuild -r page.json --remove hero --remove footer
  dropgrid rebuild -r page.json --remove-row 3 -o page.next.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var scenario string
			if len(args) == 1 {
				scenario = args[0]
			}
			return c.runRebuild(cmd.Context(), cmd, scenario, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.regionPath, "region", "r", "", "region document (instead of a scenario)")
	cmd.Flags().StringSliceVar(&opts.add, "add", nil, "insert ID:SIZE (repeat for a group)")
	cmd.Flags().StringVar(&opts.at, "at", "", "insert location ROW[:POS][:new]")
	cmd.Flags().StringSliceVar(&opts.remove, "remove", nil, "remove item ID (repeat for a group)")
	cmd.Flags().IntVar(&opts.removeRow, "remove-row", 0, "remove row N (1-based)")
	cmd.Flags().StringVar(&opts.render, "render", "", "also render the result: svg,png,dot,graph")
	cmd.MarkFlagsMutuallyExclusive("add", "remove", "remove-row")
	opts.packingFlags.register(cmd)
	opts.outputFlags.register(cmd)

	return cmd
}

// buildRebuildOptions resolves the scenario and flags into pipeline options.
func (c *CLI) buildRebuildOptions(in io.Reader, scenario string, opts *rebuildOpts) (pipeline.Options, string, error) {
	po := c.baseOptions()
	name := scenario

	switch {
	case scenario != "" && opts.regionPath != "":
		return po, "", errors.New(errors.ErrCodeInvalidInput, "give a scenario or --region, not both")
	case scenario != "":
		s, err := loadScenario(in, scenario)
		if err != nil {
			return po, "", err
		}
		po.Region, po.Action = s.Region.Rows, s.Action
		applyScenarioPacking(&po, s.Packing)
	case opts.regionPath != "":
		doc, err := loadRegion(in, opts.regionPath)
		if err != nil {
			return po, "", err
		}
		po.Region, po.Action = doc.Rows, region.None()
		name = opts.regionPath
	default:
		return po, "", errors.New(errors.ErrCodeInvalidInput, "a scenario or --region is required")
	}

	action, ok, err := opts.action(po.Region)
	if err != nil {
		return po, "", err
	}
	if ok {
		po.Action = action
	}
	opts.packingFlags.apply(&po)
	po.Refresh = opts.refresh
	return po, name, nil
}

// action builds the action named by the flags, if any.
func (o *rebuildOpts) action(r region.Region) (region.Action, bool, error) {
	loc, err := parseLocation(o.at)
	if err != nil {
		return region.Action{}, false, err
	}

	switch {
	case len(o.add) > 0:
		items := make([]region.Item, len(o.add))
		for i, s := range o.add {
			if items[i], err = parseItem(s); err != nil {
				return region.Action{}, false, err
			}
		}
		if len(items) == 1 {
			return region.Add(items[0], loc), true, nil
		}
		return region.AddGroup(items, loc), true, nil

	case len(o.remove) > 0:
		if err := requireIDs(r, o.remove); err != nil {
			return region.Action{}, false, err
		}
		if len(o.remove) == 1 {
			return region.Remove(o.remove[0]), true, nil
		}
		return region.RemoveGroup(o.remove...), true, nil

	case o.removeRow > 0:
		return region.RemoveRow(o.removeRow), true, nil
	}
	return region.Action{}, false, nil
}

// applyScenarioPacking lets a scenario's packing section override the config.
func applyScenarioPacking(opts *pipeline.Options, p dgio.Packing) {
	if p.MaxSize > 0 {
		opts.MaxSize = p.MaxSize
	}
	if p.Sizer != "" {
		opts.Sizer = p.Sizer
	}
}

func (c *CLI) runRebuild(ctx context.Context, cmd *cobra.Command, scenario string, opts *rebuildOpts) error {
	logger := loggerFromContext(ctx)

	po, name, err := c.buildRebuildOptions(cmd.InOrStdin(), scenario, opts)
	if err != nil {
		return err
	}
	if opts.render != "" {
		if po.Formats, err = parseFormats(opts.render); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	logger.Debug("rebuilding", "input", name, "action", po.Action.Kind, "items", po.Region.Len())
	result, err := runner.Execute(ctx, po)
	if err != nil {
		return err
	}

	doc := dgio.RegionDoc{Name: name, Rows: result.Region}
	if err := writeDoc(cmd.OutOrStdout(), opts.output, doc, opts.format); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	if opts.output != "" {
		printSuccess(stderr, "Rebuilt %s", name)
		printFile(stderr, opts.output)
		printRegionStats(stderr, result.Stats.RowCount, result.Stats.ItemCount, result.CacheInfo.RebuildHit)
		if len(po.Formats) == 0 {
			printNextStep(stderr, "Draw it", "dropgrid render "+opts.output)
		}
	}
	if len(po.Formats) > 0 {
		src := name
		if opts.output != "" {
			src = opts.output
		}
		paths, err := writeArtifacts(basePath("", src), po.Formats, result.Artifacts)
		if err != nil {
			return err
		}
		for _, p := range paths {
			printFile(stderr, p)
		}
	}
	return nil
}
