package cmd

import (
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/abhisek/leitner/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the deck over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd, depsOptions{metrics: true, hints: true})
		if err != nil {
			return err
		}
		defer d.Close()

		cfg := api.Config{
			Addr:            d.cfg.Server.Addr,
			AllowOrigin:     d.cfg.Server.AllowOrigin,
			ReadTimeout:     d.cfg.Server.ReadTimeout,
			WriteTimeout:    d.cfg.Server.WriteTimeout,
			ShutdownTimeout: d.cfg.Server.ShutdownTimeout,
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if d.registry != nil {
			cfg.Gatherer = prometheus.Gatherer(d.registry)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return api.NewServer(d.deck, cfg, d.logger, d.recorder).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
