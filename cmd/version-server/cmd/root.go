package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/version-file/internal/config"
	"github.com/oshokin/version-file/internal/logger"
	"github.com/oshokin/version-file/internal/service/server"
	"github.com/oshokin/version-file/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// statusAddress overrides the HTTP status endpoint address from the config.
	statusAddress string

	// rootCmd represents the base command for running the version server.
	rootCmd = &cobra.Command{
		Use:   "version-server [listen-address]",
		Short: "Serve the version recorded in version.yaml over gRPC and HTTP.",
		Long: `Starts the gRPC version server and, when configured, the HTTP status endpoint.

The version is read once at startup from version.yaml in the directory of this
executable. If the file is missing or malformed the server does not start.
Only the port from listen_addr in the config is used for listening (e.g., :50051).
Listen address can be provided as argument to override config (e.g., :9090, 0.0.0.0:50051).`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use listen address argument if provided, otherwise rely on config.
			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			options := &server.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				StatusAddress: statusAddress,
			}

			return server.Run(ctx, options)
		},
	}
)

// Execute runs the version-server CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	err := rootCmd.Execute()

	logger.Sync()

	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().
		StringVarP(&statusAddress, "status-addr", "s", "", "HTTP status endpoint address (overrides config)")
}
