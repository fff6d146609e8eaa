package version

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Full renders the version line printed by the CLI and logged at startup.
func Full(p Provider) string {
	v := p.VersionString()
	if v == "" {
		return "version: (not set)"
	}

	return "version: " + v
}

// AttachCobraVersionCommand attaches a `version` subcommand to the provided root command.
// It prints the version from version.yaml next to the executable.
func AttachCobraVersionCommand(root *cobra.Command) {
	// Subcommand: `version`.
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information.",
		Long: "Print the version recorded in " + FileName + ", which must sit in the same directory as this executable. " +
			"The command fails if the file is missing or malformed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := LoadFromExecutable(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), Full(file))

			return nil
		},
	})
}
