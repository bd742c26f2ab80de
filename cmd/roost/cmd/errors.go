package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/corey/roost/internal/adapters/web"
	"github.com/corey/roost/internal/app"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout.
// bbolt returns the string "timeout" when it cannot acquire the file lock
// within the configured deadline.
func isDBLockError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "timeout")
}

// diagnoseDBLock checks the server state and returns actionable guidance
// when a bbolt open fails due to lock contention. It distinguishes three
// scenarios: server running, stale port file, and unknown lock holder.
func diagnoseDBLock(paths *app.Paths) string {
	if client, err := web.ClientFromPortFile(paths.PortFile); err == nil && client.Ping() {
		return fmt.Sprintf("database is locked by the running server at %s\n"+
			"  → stop it first (Ctrl-C in its terminal)\n"+
			"  → then retry your command", client.BaseURL())
	}

	if _, err := os.Stat(paths.PortFile); err == nil {
		return fmt.Sprintf("database is locked and the server is not responding\n"+
			"  → a previous server may have hung\n"+
			"  → find the process:  ps aux | grep 'roost serve'\n"+
			"  → kill it:           kill <PID>\n"+
			"  → clean up:          rm %s", paths.PortFile)
	}

	return "database is locked by another process\n" +
		"  → find the process:  ps aux | grep roost\n" +
		"  → kill it:           kill <PID>\n" +
		"  → then retry your command"
}

// openError turns a store open failure into a user-facing error.
func openError(err error, paths *app.Paths) error {
	if isDBLockError(err) {
		return fmt.Errorf("%s", diagnoseDBLock(paths))
	}
	return fmt.Errorf("open store: %w", err)
}
