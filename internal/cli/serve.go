package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/matzehuels/commitgraph/internal/server"
	"github.com/matzehuels/commitgraph/pkg/cache"
	"github.com/matzehuels/commitgraph/pkg/pipeline"
)

// serveCommand runs the HTTP render API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, watchPath, tpl, backend string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP render API",
		Long: `Serve renders scripts posted to /api/render. With --watch, it also replays
the given script whenever it changes and pushes the render data to websocket
clients of /api/live.`,
		Example: `  commitgraph serve
  commitgraph serve --addr :9000 --cache redis
  commitgraph serve --watch flow.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			if err := pipeline.ValidateTemplate(tpl); err != nil {
				return err
			}

			cc, err := cache.Open(ctx, cache.Config{
				Backend:   backend,
				RedisAddr: c.Config.Cache.RedisAddr,
				TTL:       c.Config.Cache.TTL,
			})
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "serve:"), c.Logger)
			defer runner.Close()

			srv := server.New(server.Config{
				Addr:     addr,
				Runner:   runner,
				Logger:   c.Logger,
				Watch:    watchPath,
				Template: c.templateName(tpl),
			})
			printInfo("Serving on %s", StyleLink.Render("http://"+addr))
			if watchPath != "" {
				printDetail("Live view of %s at ws://%s/api/live", watchPath, addr)
			}
			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, else "+server.DefaultAddr+")")
	cmd.Flags().StringVarP(&watchPath, "watch", "w", "", "script to replay on change and push to /api/live")
	cmd.Flags().StringVarP(&tpl, "template", "t", "", "template preset for the watched script")
	cmd.Flags().StringVar(&backend, "cache", cache.BackendMemory, "artifact cache: memory, redis or none")
	return cmd
}
