package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ontograph/internal/server"
	"github.com/matzehuels/ontograph/pkg/config"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tree, graph, schema and layout views over HTTP",
		Long: `Serve the tree, graph, schema and layout views over HTTP.

Every request reloads the registry through the configured source and its
response cache, so views always reflect the registry within the cache TTL.
Prometheus metrics are exposed on /metrics unless --no-metrics is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg, !noMetrics)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config, \":8080\")")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable the /metrics endpoint")

	return cmd
}

// runServe serves until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config, metrics bool) error {
	runner, closeSrc, err := c.newRunner(ctx, cfg)
	defer closeSrc()
	if err != nil {
		return err
	}

	opts := server.Options{
		Addr:         cfg.Server.Addr,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
		Logger:       c.Logger,
	}
	if metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts.Registry = reg
	}

	srv := server.New(runner, opts)
	if m := srv.Metrics(); m != nil {
		m.Register()
	}

	printKeyValue("source", runner.Source.Name())
	printKeyValue("listening", StyleLink.Render("http://"+displayAddr(cfg.Server.Addr)))
	return srv.ListenAndServe(ctx)
}

// displayAddr turns a bare ":port" listen address into a clickable host.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
