package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/seqdiag/internal/server"
	"github.com/matzehuels/seqdiag/pkg/observability"
)

type serveOpts struct {
	addr    string
	maxBody int64
	noCache bool
}

// serveCommand creates the serve command that exposes the renderer over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP renderer",
		Long: `Serve the renderer over HTTP until interrupted.

Routes:
  POST /render   diagram source in the body; ?format=svg|json|png|pdf&id=PREFIX&refresh=1
  POST /parse    diagram source in the body; returns the parsed structure as JSON
  GET  /healthz  liveness and build information
  GET  /metrics  Prometheus metrics (unless disabled with [server] metrics = false)

Defaults for rendering come from the [render] table of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config.Server
			if cmd.Flags().Changed("addr") || cfg.Addr == "" {
				cfg.Addr = opts.addr
			}
			if cmd.Flags().Changed("max-body") || cfg.MaxBodyBytes == 0 {
				cfg.MaxBodyBytes = opts.maxBody
			}
			return c.runServe(cmd, cfg, opts.noCache)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, cfg ServerConfig, noCache bool) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srvOpts := []server.Option{
		server.WithMaxBodyBytes(cfg.MaxBodyBytes),
		server.WithDefaults(c.renderOptions()),
	}
	if cfg.Metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		p := observability.NewPrometheus(reg)
		observability.SetPipelineHooks(p)
		observability.SetCacheHooks(p)
		observability.SetHTTPHooks(p)
		defer observability.Reset()

		srvOpts = append(srvOpts, server.WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	return server.New(runner, c.Logger, srvOpts...).Serve(ctx, cfg.Addr)
}
