// Package catalog holds the set of configured apps and applies the search
// filter to it. It is the host side of the search package: the query is
// normalized once per request and reused for every app.
package catalog

import (
	"github.com/corey/roost/internal/domain/search"
	"github.com/corey/roost/internal/ports"
)

// MatchApp reports whether normalizedQuery matches the app's name, any of
// its aliases, its description, or the name of any of its services.
func MatchApp(app ports.App, normalizedQuery string) bool {
	if normalizedQuery == "" {
		return true
	}
	if search.Matches(app.Name, normalizedQuery) {
		return true
	}
	for _, alias := range app.Aliases {
		if search.Matches(alias, normalizedQuery) {
			return true
		}
	}
	if search.Matches(app.Description, normalizedQuery) {
		return true
	}
	for _, svc := range app.Services {
		if search.Matches(svc.Name, normalizedQuery) {
			return true
		}
	}
	return false
}

// Filter returns the apps matching rawQuery, in input order.
// An empty or separator-only query returns every app.
func Filter(apps []ports.App, rawQuery string) []ports.App {
	return FilterNormalized(apps, search.Normalize(rawQuery))
}

// FilterNormalized is Filter for a query the caller has already normalized.
func FilterNormalized(apps []ports.App, normalizedQuery string) []ports.App {
	if normalizedQuery == "" {
		return apps
	}
	out := make([]ports.App, 0, len(apps))
	for _, app := range apps {
		if MatchApp(app, normalizedQuery) {
			out = append(out, app)
		}
	}
	return out
}
