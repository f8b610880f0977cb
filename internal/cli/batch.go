package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	dgio "github.com/dwthomas77/dropgrid/pkg/io"
	"github.com/dwthomas77/dropgrid/pkg/pipeline"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	packingFlags

	outDir  string
	jobs    int
	render  string
	noCache bool
	refresh bool
}

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	opts := batchOpts{jobs: defaultBatchLimit}

	cmd := &cobra.Command{
		Use:   "batch <scenario>...",
		Short: "Rebuild many scenarios concurrently",
		Long: `Batch rebuilds every scenario and writes NAME.rebuilt.json next to it, or
into --out. The first failure stops the remaining scenarios.`,
		Example: `  dropgrid batch scenarios/*.yaml --out results --jobs 8
  dropgrid batch a.json b.json --render svg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), cmd, args, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.outDir, "out", "", "output directory (default: next to each scenario)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", opts.jobs, "scenarios rebuilt at once")
	cmd.Flags().StringVar(&opts.render, "render", "", "also render each result: svg,png,dot,graph")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	opts.packingFlags.register(cmd)
	return cmd
}

func (c *CLI) runBatch(ctx context.Context, cmd *cobra.Command, inputs []string, opts *batchOpts) error {
	logger := loggerFromContext(ctx)

	var formats []string
	if opts.render != "" {
		var err error
		if formats, err = parseFormats(opts.render); err != nil {
			return err
		}
	}

	jobs := make([]pipeline.Options, len(inputs))
	for i, path := range inputs {
		s, err := dgio.ImportScenario(path)
		if err != nil {
			return err
		}
		po := c.baseOptions()
		po.Region, po.Action = s.Region.Rows, s.Action
		applyScenarioPacking(&po, s.Packing)
		opts.packingFlags.apply(&po)
		po.Formats = formats
		po.Refresh = opts.refresh
		jobs[i] = po
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	stderr := cmd.ErrOrStderr()
	prog := newProgress(logger)
	spin := newSpinner(ctx, stderr, fmt.Sprintf("Rebuilding %d scenarios", len(jobs)))
	spin.Start()
	results, err := runner.Batch(ctx, jobs, opts.jobs)
	if err != nil {
		spin.StopWithError("Batch failed")
		return err
	}
	spin.Stop()

	for i, res := range results {
		base := batchBase(inputs[i], opts.outDir)
		if opts.outDir != "" {
			if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		out := base + ".rebuilt.json"
		if err := dgio.ExportRegion(dgio.RegionDoc{Name: inputs[i], Rows: res.Region}, out); err != nil {
			return err
		}
		printFile(stderr, out)
		if len(formats) > 0 {
			paths, err := writeArtifacts(base, formats, res.Artifacts)
			if err != nil {
				return err
			}
			for _, p := range paths {
				printFile(stderr, p)
			}
		}
	}
	prog.done(fmt.Sprintf("Rebuilt %d scenarios", len(results)))
	return nil
}

// batchBase strips the extension from input and moves it into dir if set.
func batchBase(input, dir string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if dir == "" {
		return base
	}
	return filepath.Join(dir, filepath.Base(base))
}
