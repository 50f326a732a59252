package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"profilewizard/internal/app"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w, err := app.NewWire(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer w.Close(cmd.Context())

			log.Info("starting",
				"addr", cfg.Server.Addr,
				"storage", cfg.Storage.Driver,
				"photos", cfg.Photos.Driver,
				"locations", cfg.Locations.Source,
			)
			return w.Server(cfg, log).Run(ctx, cfg.Server.Addr)
		},
	}
	return cmd
}
