package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dwthomas77/dropgrid/pkg/api"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout engine over HTTP",
		Long: `Serve exposes rebuild, pack, measure, hit testing, stats and rendering
as a JSON API. Defaults for every request come from the configuration.
Use the redis cache backend to share results between servers.`,
		Example: `  dropgrid serve --addr :8080`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	if addr == "" {
		addr = c.cfg.Server.Addr
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := api.New(runner, c.cfg, loggerFromContext(ctx))
	return srv.ListenAndServe(ctx, addr)
}
