package app

import (
	"os"
	"path/filepath"
)

// StateDirName is the per-config-directory state directory.
const StateDirName = ".roost"

// Paths holds all resolved filesystem paths for the .roost/ state directory.
// All fields are pre-computed strings.
type Paths struct {
	Root string // .roost/
	DB   string // .roost/roost.db

	RunDir   string // .roost/run/
	PortFile string // .roost/run/http.port
}

// NewPaths constructs all resolved paths from a config directory.
func NewPaths(configDir string) *Paths {
	root := filepath.Join(configDir, StateDirName)
	return &Paths{
		Root: root,
		DB:   filepath.Join(root, "roost.db"),

		RunDir:   filepath.Join(root, "run"),
		PortFile: filepath.Join(root, "run", "http.port"),
	}
}

// EnsureDirs creates all subdirectories under .roost/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.RunDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}

// Migrate moves a port file left in the flat .roost/ layout into run/.
// Returns true if a file was moved. Skips if the source is missing or the
// destination already exists.
func (p *Paths) Migrate() (bool, error) {
	old := filepath.Join(p.Root, "http.port")
	if _, err := os.Stat(old); err != nil {
		return false, nil
	}
	if _, err := os.Stat(p.PortFile); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(p.RunDir, 0755); err != nil {
		return false, err
	}
	if err := os.Rename(old, p.PortFile); err != nil {
		return false, err
	}
	return true, nil
}

// CleanEphemeral removes runtime files (the port file). Used when a
// previous server exited without cleaning up.
func (p *Paths) CleanEphemeral() {
	os.Remove(p.PortFile)
}
