package cmd

import (
	"os"

	"github.com/corey/roost/internal/config"
	rlog "github.com/corey/roost/internal/log"
	"github.com/spf13/cobra"
)

var (
	configDir string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:           "roost",
	Short:         "roost: local dev dashboard",
	Long:          "Lists the apps in your config directory and serves a filterable dashboard for them.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		rlog.Configure(rlog.Config{Level: logLevel, Output: os.Stderr, Console: true})
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadSettings resolves the config directory and reads config.json + env.
func loadSettings() (*config.Config, error) {
	return config.Load(configDir)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Config directory (default $ROOST_CONFIG_DIR or ~/.config/roost)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (default $LOG_LEVEL or info)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(filterCmd)
}
