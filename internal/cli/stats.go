package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	dgio "github.com/dwthomas77/dropgrid/pkg/io"
	"github.com/dwthomas77/dropgrid/pkg/region"
	"github.com/dwthomas77/dropgrid/pkg/stats"
	"github.com/dwthomas77/dropgrid/pkg/validate"
)

// statsOpts holds the command-line flags for the stats command.
type statsOpts struct {
	packingFlags
	asJSON bool
}

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var opts statsOpts

	cmd := &cobra.Command{
		Use:   "stats <region>",
		Short: "Show how full each row is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the summary as JSON")
	opts.packingFlags.register(cmd)
	return cmd
}

func (c *CLI) runStats(ctx context.Context, cmd *cobra.Command, input string, opts *statsOpts) error {
	doc, err := loadRegion(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}
	if err := validate.Region(doc.Rows); err != nil {
		return err
	}

	po := c.baseOptions()
	opts.packingFlags.apply(&po)
	cfg, err := po.PackingConfig()
	if err != nil {
		return err
	}

	sum := stats.Summarize(doc.Rows, cfg)
	loggerFromContext(ctx).Debug("summarized", "rows", sum.Rows, "mean", sum.MeanFill)

	out := cmd.OutOrStdout()
	if opts.asJSON {
		return dgio.Write(out, sum, dgio.FormatJSON)
	}
	printSummary(out, doc.Rows, cfg, sum)
	return nil
}

// printSummary prints a per-row table followed by the aggregate figures.
func printSummary(w io.Writer, r region.Region, cfg region.PackingConfig, sum stats.Summary) {
	sizes := r.RowSizes(cfg)
	rows := make([][]string, len(r))
	for i, row := range r {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(len(row)),
			strconv.FormatFloat(sizes[i], 'g', -1, 64),
			fmt.Sprintf("%.0f%%", sum.Fill[i]*100),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Row", "Items", "Size", "Fill").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if col == 3 && row < len(sum.Fill) && sum.Fill[row] > 1 {
				return style.Foreground(colorYellow)
			}
			return style
		})

	fmt.Fprintln(w, t.Render())
	printKeyValue(w, "capacity", strconv.FormatFloat(sum.MaxSize, 'g', -1, 64))
	printKeyValue(w, "mean fill", fmt.Sprintf("%.1f%% ± %.1f", sum.MeanFill*100, sum.StdDev*100))
	printKeyValue(w, "median", fmt.Sprintf("%.1f%%", sum.Median*100))
	printKeyValue(w, "slack", strconv.FormatFloat(sum.Slack, 'g', -1, 64))
	if sum.EmptyRows > 0 {
		printWarning(w, "%d empty rows", sum.EmptyRows)
	}
	if sum.Oversized > 0 {
		printWarning(w, "%d rows over capacity", sum.Oversized)
	}
}
