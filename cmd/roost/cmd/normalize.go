package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/roost/internal/domain/search"
	"github.com/spf13/cobra"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <text...>",
	Short: "Print the canonical form used for filtering",
	Long: `Lowercases the text and removes hyphens, underscores and spaces.
Multiple arguments are joined with a space first, so
"roost normalize My Cool-App" prints "mycoolapp".

Arguments are never parsed as flags: "roost normalize ---" prints an
empty line.`,
	DisableFlagParsing: true,
	Args:               cobra.MinimumNArgs(1),
	RunE:               runNormalize,
}

func runNormalize(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && isHelpArg(args[0]) {
		return cmd.Help()
	}
	fmt.Fprintln(cmd.OutOrStdout(), search.Normalize(strings.Join(args, " ")))
	return nil
}

func isHelpArg(arg string) bool {
	return arg == "-h" || arg == "--help"
}
