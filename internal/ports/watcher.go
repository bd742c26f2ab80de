package ports

// Watcher monitors the config directory for app definition changes and
// triggers a catalog reload. The adapter must filter out anything that is
// not an app definition (hidden files, editor swap files, config.json)
// before invoking onChange. Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring dir. onChange is called with the absolute path
	// of each changed definition. The callback may be invoked from any
	// goroutine. Returns an error if the directory doesn't exist or
	// permissions are insufficient.
	Watch(dir string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
