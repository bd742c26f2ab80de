package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/roost/internal/domain/search"
	"github.com/spf13/cobra"
)

var matchQuiet bool

var matchCmd = &cobra.Command{
	Use:   "match [-q] [--] <candidate> <query...>",
	Short: "Check whether a query matches a candidate",
	Long: `Reports whether the query (normalized) is contained in the candidate
(normalized). Exits 0 on a match and 1 otherwise.

Only leading -q/--quiet and -h/--help are options; everything after them,
or after "--", is text, so "roost match -app app" works.`,
	DisableFlagParsing: true,
	RunE:               runMatch,
}

func init() {
	// Registered for help output only; parseMatchArgs reads the flag.
	matchCmd.Flags().BoolVarP(&matchQuiet, "quiet", "q", false, "Print nothing; report via exit status only")
}

// parseMatchArgs consumes leading options and returns the remaining text.
func parseMatchArgs(args []string) (rest []string, help bool) {
	for i, arg := range args {
		switch {
		case arg == "--":
			return args[i+1:], help
		case arg == "-q" || arg == "--quiet":
			matchQuiet = true
		case isHelpArg(arg):
			help = true
		default:
			return args[i:], help
		}
	}
	return nil, help
}

func runMatch(cmd *cobra.Command, args []string) error {
	args, help := parseMatchArgs(args)
	if help {
		return cmd.Help()
	}
	if len(args) < 1 {
		return fmt.Errorf("requires at least 1 arg(s), only received 0")
	}

	candidate := args[0]
	q := search.Normalize(strings.Join(args[1:], " "))
	ok := search.Matches(candidate, q)

	if !matchQuiet {
		out := cmd.OutOrStdout()
		if ok {
			fmt.Fprintf(out, "match: %q contains %q\n", search.Normalize(candidate), q)
		} else {
			fmt.Fprintf(out, "no match: %q does not contain %q\n", search.Normalize(candidate), q)
		}
	}
	if !ok {
		return matchExit{1}
	}
	return nil
}
