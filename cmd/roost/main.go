// roost is a local development dashboard.
// It lists the apps defined in a config directory and filters them by name.
package main

import (
	"fmt"
	"os"

	"github.com/corey/roost/cmd/roost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if code := cmd.ExitCode(err); code >= 0 {
			os.Exit(code)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
