package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/corey/roost/internal/adapters/bbolt"
	"github.com/corey/roost/internal/adapters/web"
	"github.com/corey/roost/internal/app"
	"github.com/corey/roost/internal/ports"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Show or change the saved dashboard filter",
	Long: `Reads and writes the dashboard filter. Goes through the running server
when there is one, otherwise opens the database directly.`,
	Args: cobra.NoArgs,
	RunE: runFilterShow,
}

var filterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved filter and recent queries",
	Args:  cobra.NoArgs,
	RunE:  runFilterShow,
}

var filterSetCmd = &cobra.Command{
	Use:   "set <query...>",
	Short: "Save a filter for the dashboard",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFilterSet,
}

var filterClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the saved filter and its history",
	Args:  cobra.NoArgs,
	RunE:  runFilterClear,
}

func init() {
	filterCmd.AddCommand(filterShowCmd)
	filterCmd.AddCommand(filterSetCmd)
	filterCmd.AddCommand(filterClearCmd)
}

// filterTarget is where filter commands read and write: the running server
// or the database file. Exactly one of client and paths is used.
type filterTarget struct {
	client *web.Client
	paths  *app.Paths
}

func resolveFilterTarget() (*filterTarget, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	paths := app.NewPaths(settings.Dir)
	if client, err := web.ClientFromPortFile(paths.PortFile); err == nil && client.Ping() {
		return &filterTarget{client: client}, nil
	}
	return &filterTarget{paths: paths}, nil
}

// withStore opens the database for the duration of fn. create controls
// whether a missing database is created; when false a missing database
// calls fn with a nil store.
func (t *filterTarget) withStore(create bool, fn func(ports.FilterStorage) error) error {
	if _, err := os.Stat(t.paths.DB); errors.Is(err, fs.ErrNotExist) && !create {
		return fn(nil)
	}
	if err := t.paths.EnsureDirs(); err != nil {
		return err
	}
	store, err := bbolt.NewStore(t.paths.DB)
	if err != nil {
		return openError(err, t.paths)
	}
	defer store.Close()
	return fn(store)
}

func runFilterShow(cmd *cobra.Command, args []string) error {
	t, err := resolveFilterTarget()
	if err != nil {
		return err
	}
	var state *ports.FilterState
	if t.client != nil {
		state, err = t.client.Filter(cmd.Context())
	} else {
		err = t.withStore(false, func(s ports.FilterStorage) error {
			if s == nil {
				state = &ports.FilterState{History: []string{}}
				return nil
			}
			var lerr error
			state, lerr = s.LoadFilter()
			return lerr
		})
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatFilter(state, resolveColor("auto", false)))
	return nil
}

func runFilterSet(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	t, err := resolveFilterTarget()
	if err != nil {
		return err
	}
	var state *ports.FilterState
	if t.client != nil {
		state, err = t.client.SaveFilter(cmd.Context(), query)
	} else {
		err = t.withStore(true, func(s ports.FilterStorage) error {
			var serr error
			state, serr = s.SaveFilter(query)
			return serr
		})
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatFilter(state, resolveColor("auto", false)))
	return nil
}

func runFilterClear(cmd *cobra.Command, args []string) error {
	t, err := resolveFilterTarget()
	if err != nil {
		return err
	}
	if t.client != nil {
		err = t.client.ClearFilter(cmd.Context())
	} else {
		err = t.withStore(false, func(s ports.FilterStorage) error {
			if s == nil {
				return nil
			}
			return s.ClearFilter()
		})
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "filter cleared")
	return nil
}
