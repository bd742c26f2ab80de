package app

import (
	"path/filepath"

	"github.com/corey/roost/internal/metrics"
)

// onConfigChanged handles a create/modify/delete of an app definition file.
// The whole catalog is reloaded; on error the previous apps stay served.
func (a *App) onConfigChanged(absPath string) {
	n, err := a.Catalog.Reload()
	metrics.ObserveReload(n, err)
	if err != nil {
		a.logger.Error().Err(err).Str("file", filepath.Base(absPath)).Msg("reload failed, keeping previous apps")
		return
	}
	a.logger.Info().Str("file", filepath.Base(absPath)).Int("apps", n).Msg("config reloaded")
}
