package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	dgio "github.com/dwthomas77/dropgrid/pkg/io"
)

// watchDebounce collapses the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	packingFlags

	output string
	render string
}

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var opts watchOpts

	cmd := &cobra.Command{
		Use:   "watch <scenario>",
		Short: "Rebuild a scenario every time it changes",
		Long: `Watch rebuilds the scenario once, then again after every save, writing
the result to --output (default NAME.rebuilt.json). Errors are reported
and watching continues. Stop with Ctrl-C.`,
		Example: `  dropgrid watch scenario.yaml --render svg`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: NAME.rebuilt.json)")
	cmd.Flags().StringVar(&opts.render, "render", "", "also render the result: svg,png,dot,graph")
	opts.packingFlags.register(cmd)
	return cmd
}

func (c *CLI) runWatch(ctx context.Context, cmd *cobra.Command, input string, opts *watchOpts) error {
	logger := loggerFromContext(ctx)

	abs, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	var formats []string
	if opts.render != "" {
		if formats, err = parseFormats(opts.render); err != nil {
			return err
		}
	}
	output := opts.output
	if output == "" {
		output = batchBase(input, "") + ".rebuilt.json"
	}

	runner, err := c.newRunner(ctx, true)
	if err != nil {
		return err
	}
	defer runner.Close()

	stderr := cmd.ErrOrStderr()
	rebuild := func() {
		s, err := dgio.ImportScenario(input)
		if err != nil {
			printError(stderr, "%v", err)
			return
		}
		po := c.baseOptions()
		po.Region, po.Action = s.Region.Rows, s.Action
		applyScenarioPacking(&po, s.Packing)
		opts.packingFlags.apply(&po)
		po.Formats = formats

		res, err := runner.Execute(ctx, po)
		if err != nil {
			printError(stderr, "%v", err)
			return
		}
		if err := dgio.ExportRegion(dgio.RegionDoc{Name: input, Rows: res.Region}, output); err != nil {
			printError(stderr, "%v", err)
			return
		}
		if _, err := writeArtifacts(basePath("", output), formats, res.Artifacts); err != nil {
			printError(stderr, "%v", err)
			return
		}
		printSuccess(stderr, "%s %s %s", time.Now().Format("15:04:05"), iconArrow, output)
	}

	// Watch the directory: editors often replace the file rather than
	// writing it in place, which drops a watch on the file itself.
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", input, err)
	}

	rebuild()
	printInfo(stderr, "Watching %s", input)
	return watchLoop(ctx, w, abs, watchDebounce, func() {
		logger.Debug("scenario changed", "path", input)
		rebuild()
	})
}

// watchLoop calls fn once per burst of changes to path until ctx ends.
func watchLoop(ctx context.Context, w *fsnotify.Watcher, path string, debounce time.Duration, fn func()) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			loggerFromContext(ctx).Warn("watch error", "error", err)
		case <-timer.C:
			fn()
		}
	}
}
