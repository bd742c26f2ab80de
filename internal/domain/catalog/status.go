package catalog

import (
	"fmt"

	"github.com/corey/roost/internal/ports"
)

// AppURL returns the dashboard URL for an app: http://<name>.<tld>.
func AppURL(name, tld string) string {
	return fmt.Sprintf("http://%s.%s", name, tld)
}

// ServiceURL returns the URL for a service of a multi-service app:
// http://<service>.<app>.<tld>.
func ServiceURL(service, app, tld string) string {
	return fmt.Sprintf("http://%s.%s.%s", service, app, tld)
}

// Status builds the API view of an app.
func Status(app ports.App, tld string) ports.AppStatus {
	st := ports.AppStatus{
		Name:        app.Name,
		Type:        ports.AppTypeSingle,
		URL:         AppURL(app.Name, tld),
		Aliases:     app.Aliases,
		Description: app.Description,
		Port:        app.Port,
	}
	if app.MultiService() {
		st.Type = ports.AppTypeMulti
		st.Services = make([]ports.ServiceStatus, 0, len(app.Services))
		for _, svc := range app.Services {
			st.Services = append(st.Services, ports.ServiceStatus{
				Name:    svc.Name,
				URL:     ServiceURL(svc.Name, app.Name, tld),
				Port:    svc.Port,
				Default: svc.Default,
			})
		}
	}
	return st
}

// Statuses maps Status over apps.
func Statuses(apps []ports.App, tld string) []ports.AppStatus {
	out := make([]ports.AppStatus, 0, len(apps))
	for _, app := range apps {
		out = append(out, Status(app, tld))
	}
	return out
}
