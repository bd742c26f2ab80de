package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/corey/roost/internal/adapters/appconfig"
	"github.com/corey/roost/internal/adapters/web"
	"github.com/corey/roost/internal/app"
	"github.com/corey/roost/internal/domain/catalog"
	"github.com/corey/roost/internal/domain/search"
	rlog "github.com/corey/roost/internal/log"
	"github.com/corey/roost/internal/ports"
	"github.com/spf13/cobra"
)

var (
	listFilter  string
	listJSON    bool
	listColor   string
	listNoColor bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured apps",
	Long: `Lists apps from the running server, or straight from the config files
when the server is not running. --filter keeps apps whose name, alias,
description or service name contains the query, ignoring case, hyphens,
underscores and spaces.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Only show apps matching this query")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON instead of a table")
	listCmd.Flags().StringVar(&listColor, "color", "auto", "Colorize output: auto, always, never")
	listCmd.Flags().BoolVar(&listNoColor, "no-color", false, "Disable color")
}

func runList(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	color := resolveColor(listColor, listNoColor)
	paths := app.NewPaths(settings.Dir)

	if client, err := web.ClientFromPortFile(paths.PortFile); err == nil && client.Ping() {
		apps, err := client.Status(cmd.Context(), listFilter)
		if err != nil {
			return err
		}
		return printApps(out, apps, color)
	}

	// Server not running: read the config files directly.
	store := catalog.NewStore(appconfig.NewLoader(settings.Dir))
	if err := store.Load(); err != nil {
		logger := rlog.WithComponent("cli")
		logger.Warn().Err(err).Msg("could not parse app definitions, listing file names only")
		return listNames(out, settings.Dir, color)
	}
	matched := catalog.Filter(store.All(), listFilter)
	return printApps(out, catalog.Statuses(matched, settings.TLD), color)
}

func printApps(out io.Writer, apps []ports.AppStatus, color bool) error {
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(apps)
	}
	fmt.Fprint(out, formatApps(apps, listFilter, color))
	return nil
}

func listNames(out io.Writer, dir string, color bool) error {
	names, err := appconfig.ListNames(dir)
	if err != nil {
		return err
	}
	q := search.Normalize(listFilter)
	kept := make([]string, 0, len(names))
	for _, n := range names {
		if search.Matches(n, q) {
			kept = append(kept, n)
		}
	}
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(kept)
	}
	fmt.Fprint(out, formatNames(kept, listFilter, color))
	return nil
}
