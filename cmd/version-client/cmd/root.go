package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/version-file/internal/config"
	"github.com/oshokin/version-file/internal/logger"
	"github.com/oshokin/version-file/internal/service/client"
	"github.com/oshokin/version-file/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// output selects the output format.
	output string
	// wait keeps retrying while the server is unavailable.
	wait bool

	// rootCmd represents the base command for querying the version server.
	rootCmd = &cobra.Command{
		Use:   "version-client [server-address]",
		Short: "Print the version reported by a version server.",
		Long: `Connects to the version server and prints the version it loaded from its version.yaml.

The configuration file is always required: it supplies the call timeout and the
log level, and its listen_addr is the default server address. A server address
given as argument overrides listen_addr only.
Use --output json for the protobuf JSON form of the response.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			// Use server address argument if provided, otherwise rely on config.
			var serverAddress string
			if len(args) > 0 {
				serverAddress = args[0]
			}

			clientOptions := &client.Options{
				ConfigPath:    configPath,
				ServerAddress: serverAddress,
				Output:        output,
				Wait:          wait,
				Out:           cmd.OutOrStdout(),
			}

			return client.Run(ctx, clientOptions)
		},
	}
)

// Execute runs the version-client CLI and exits with non-zero status on error.
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
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file (required)")
	rootCmd.Flags().StringVarP(&output, "output", "o", client.OutputText, "output format: text or json")
	rootCmd.Flags().BoolVarP(&wait, "wait", "w", false, "retry until the server is reachable")
}
