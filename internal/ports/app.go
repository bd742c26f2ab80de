package ports

// App is one configured application, as read from the config directory.
type App struct {
	Name        string
	Description string
	Aliases     []string
	Root        string // working directory for Command
	Command     string
	Port        int
	Services    []Service
	FilePath    string // config file the app was loaded from
}

// MultiService reports whether the app is made of named services rather
// than a single command.
func (a App) MultiService() bool {
	return len(a.Services) > 0
}

// Service is one process of a multi-service app.
type Service struct {
	Name    string
	Dir     string
	Command string
	Port    int
	Default bool
}

// AppSource produces the current set of configured apps.
type AppSource interface {
	// Load reads every app definition. A source with nothing configured
	// returns an empty slice and no error.
	Load() ([]App, error)
}

// App types as reported in AppStatus.Type.
const (
	AppTypeSingle = "app"
	AppTypeMulti  = "multi-service"
)

// AppStatus is the JSON view of an app served by the API and printed by the CLI.
type AppStatus struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	URL         string          `json:"url"`
	Aliases     []string        `json:"aliases,omitempty"`
	Description string          `json:"description,omitempty"`
	Port        int             `json:"port,omitempty"`
	Services    []ServiceStatus `json:"services,omitempty"`
}

// ServiceStatus is the JSON view of a service within a multi-service app.
type ServiceStatus struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Port    int    `json:"port,omitempty"`
	Default bool   `json:"default,omitempty"`
}
