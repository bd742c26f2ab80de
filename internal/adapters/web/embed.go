// Package web serves the embedded HTML dashboard and the JSON API over HTTP.
// Binds to localhost only, so there is no auth.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static/index.html
var embedded embed.FS

// staticFS is the dashboard root: index.html at "/".
var staticFS, _ = fs.Sub(embedded, "static")
