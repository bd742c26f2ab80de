package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/corey/roost/internal/adapters/appconfig"
	"github.com/corey/roost/internal/adapters/web"
	"github.com/corey/roost/internal/app"
	"github.com/corey/roost/internal/config"
	"github.com/spf13/cobra"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	Long:  "Shows the config directory, settings, state paths and server status. No server required.",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write config.json with the current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config.json")
	configCmd.AddCommand(configInitCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	paths := app.NewPaths(settings.Dir)

	cfgFile := filepath.Join(settings.Dir, config.FileName)
	if _, err := os.Stat(cfgFile); err != nil {
		cfgFile += " (not present, using defaults)"
	}
	names, err := appconfig.ListNames(settings.Dir)
	if err != nil {
		return err
	}

	serverStatus := fmt.Sprintf("%s✗ not running%s", colorYellow, colorReset)
	var dashboard string
	if client, err := web.ClientFromPortFile(paths.PortFile); err == nil && client.Ping() {
		serverStatus = fmt.Sprintf("%s✓ running%s", colorGreen, colorReset)
		dashboard = client.BaseURL()
	}

	fmt.Fprintf(out, "%sroost config%s\n", colorBold, colorReset)
	fmt.Fprintf(out, "  Dir:         %s\n", settings.Dir)
	fmt.Fprintf(out, "  File:        %s\n", cfgFile)
	fmt.Fprintf(out, "  TLD:         %s\n", settings.TLD)
	fmt.Fprintf(out, "  HTTP port:   %d\n", settings.HTTPPort)
	fmt.Fprintf(out, "  Rate limit:  %d req/s\n", settings.RateLimit)
	fmt.Fprintf(out, "  Log level:   %s\n", settings.LogLevel)
	fmt.Fprintf(out, "  Apps:        %d\n", len(names))
	fmt.Fprintf(out, "  DB:          %s\n", paths.DB)
	fmt.Fprintf(out, "  Port file:   %s\n", paths.PortFile)
	fmt.Fprintf(out, "  Server:      %s\n", serverStatus)
	if dashboard != "" {
		fmt.Fprintf(out, "  Dashboard:   %s\n", dashboard)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	path := filepath.Join(settings.Dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := config.Save(settings); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}
