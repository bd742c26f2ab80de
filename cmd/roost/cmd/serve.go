package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/corey/roost/internal/adapters/web"
	"github.com/corey/roost/internal/app"
	rlog "github.com/corey/roost/internal/log"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard in the foreground",
	Long: `Serves the dashboard and JSON API on 127.0.0.1 until interrupted.
App definitions are reloaded when files in the config directory change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (default from config, 0 picks a free port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		settings.HTTPPort = servePort
		if err := settings.Validate(); err != nil {
			return err
		}
	}
	if logLevel == "" {
		rlog.Configure(rlog.Config{Level: settings.LogLevel, Output: os.Stderr, Console: true})
	}
	out := cmd.OutOrStdout()
	paths := app.NewPaths(settings.Dir)

	// Check if already running
	if client, err := web.ClientFromPortFile(paths.PortFile); err == nil {
		if client.Ping() {
			fmt.Fprintf(out, "roost already running at %s\n", client.BaseURL())
			return nil
		}
		paths.CleanEphemeral()
	}

	a, err := app.New(app.Config{Settings: settings})
	if err != nil {
		if isDBLockError(err) {
			return fmt.Errorf("%s", diagnoseDBLock(paths))
		}
		return fmt.Errorf("init: %w", err)
	}
	if err := a.Start(); err != nil {
		a.Stop()
		return err
	}

	fmt.Fprintf(out, "roost dashboard at %s (%d apps from %s)\n", a.URL(), a.Catalog.Len(), settings.Dir)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	select {
	case <-sigCh:
	case <-cmd.Context().Done():
	}

	fmt.Fprintln(out, "\nshutting down...")
	return a.Stop()
}
