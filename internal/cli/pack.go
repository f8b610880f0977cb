package cli

import (
	"context"

	"github.com/spf13/cobra"

	dgio "github.com/dwthomas77/dropgrid/pkg/io"
)

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	packingFlags
	outputFlags
}

// packCommand creates the pack command.
func (c *CLI) packCommand() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack <items>",
		Short: "Pack a flat item list into rows",
		Long: `Pack fills rows left to right in list order, starting a new row whenever
the next item would overflow the row capacity. A region document is
accepted too; its rows are flattened and repacked.`,
		Example: `  dropgrid pack items.json
  dropgrid pack items.yaml --max-size 12 --format yaml
  cat items.json | dropgrid pack -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd.Context(), cmd, args[0], &opts)
		},
	}

	opts.packingFlags.register(cmd)
	opts.outputFlags.register(cmd)
	return cmd
}

func (c *CLI) runPack(ctx context.Context, cmd *cobra.Command, input string, opts *packOpts) error {
	items, err := loadItems(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	po := c.baseOptions()
	po.Items = items
	po.Refresh = opts.refresh
	opts.packingFlags.apply(&po)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	packed, hit, err := runner.PackWithCacheInfo(ctx, po)
	if err != nil {
		return err
	}

	doc := dgio.RegionDoc{Name: input, Rows: packed}
	if err := writeDoc(cmd.OutOrStdout(), opts.output, doc, opts.format); err != nil {
		return err
	}
	if opts.output != "" {
		stderr := cmd.ErrOrStderr()
		printSuccess(stderr, "Packed %d items", len(items))
		printFile(stderr, opts.output)
		printRegionStats(stderr, len(packed), packed.Len(), hit)
	}
	return nil
}
