package cli

import (
	"github.com/spf13/cobra"

	"github.com/waiteperspectives/eml/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering server",
		Long: `Run the HTTP rendering server.

Routes:
  GET  /healthz     liveness probe
  GET  /version     build information
  GET  /v1/demo     demo model as YAML
  POST /v1/render   render a YAML body (?format=&type=&arrowheads=&detailed=&scale=)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}

			defaults, err := c.Config.Options()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(server.Options{
				Runner:       runner,
				Logger:       loggerFromContext(ctx),
				Defaults:     defaults,
				MaxBodyBytes: c.Config.Server.MaxBodyBytes,
			})
			printInfo("Listening on %s", StyleValue.Render(c.Config.Server.Addr))
			return srv.ListenAndServe(ctx, c.Config.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else :8080)")
	return cmd
}
