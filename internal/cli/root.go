package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	// empty means built-in defaults
	envConfig := os.Getenv("CONFIG_PATH")

	cmd := &cobra.Command{
		Use:          "osdi",
		Short:        "Ocular Surface Disease Index self-check with a bounded score history",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewRunCmd(&configPath))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewHistoryCmd(&configPath))
	return cmd
}
