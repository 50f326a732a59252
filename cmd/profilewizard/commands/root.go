package commands

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"profilewizard/internal/app"
	"profilewizard/internal/client"
	"profilewizard/internal/domain"
)

var (
	configPath string
	addr       string
	dataDir    string
	logLevel   string
	serverURL  string

	cfg   *app.Config
	log   logr.Logger
	flush = func() {}
)

func Execute() error {
	root := &cobra.Command{
		Use:           "profilewizard",
		Short:         "Multi-step profile wizard server and tools",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if configPath != "" {
				cfg, err = app.LoadFile(configPath)
				if err != nil {
					return err
				}
			} else {
				cfg = app.Default()
			}

			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("data-dir") {
				cfg.Storage.DataDir = dataDir
				cfg.Photos.Dir = ""
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			log, flush, err = app.NewLogger(cfg.Log)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			flush()
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data dir (default ~/.profilewizard)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&serverURL, "server", "", "use a running server (e.g. http://127.0.0.1:8080)")

	root.AddCommand(serveCmd(), locationsCmd(), checkUsernameCmd(), strengthCmd(), uploadCmd())
	return root.Execute()
}

// services returns the location, availability and upload services, either
// from a running server or built locally. The returned func releases them.
func services(ctx context.Context) (domain.LocationService, domain.AvailabilityService, domain.UploadService, func(), error) {
	if serverURL != "" {
		c := client.NewHTTP(serverURL, log)
		return c, c, c, func() {}, nil
	}
	w, err := app.NewWire(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return w.Locations, w.Availability, w.Uploads, func() { _ = w.Close(context.Background()) }, nil
}
