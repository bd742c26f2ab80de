package cmd

import (
	"fmt"
	"strings"

	"github.com/corey/roost/internal/domain/search"
	"github.com/corey/roost/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// paint wraps s in an ANSI code when color is on.
func paint(color bool, code, s string) string {
	if !color || s == "" {
		return s
	}
	return code + s + colorReset
}

// formatHeader renders the count line shared by app and name listings.
//
//	3 apps │ filter "my cool" → mycool
func formatHeader(n int, query string, color bool) string {
	noun := "apps"
	if n == 1 {
		noun = "app"
	}
	line := paint(color, colorBold, fmt.Sprintf("%d %s", n, noun))
	if q := search.Normalize(query); q != "" {
		line += fmt.Sprintf(" │ filter %q → %s", query, paint(color, colorYellow, q))
	}
	return line + "\n"
}

// formatApps formats app statuses for terminal display.
//
//	2 apps
//	  blog         http://blog.test  (writing)  My blog
//	  my-cool-app  http://my-cool-app.test
//	    web        http://web.my-cool-app.test  default
func formatApps(apps []ports.AppStatus, query string, color bool) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(len(apps), query, color))

	width := 0
	for _, a := range apps {
		width = max(width, len(a.Name))
	}

	for _, a := range apps {
		sb.WriteString("  ")
		sb.WriteString(paint(color, colorCyan, a.Name))
		sb.WriteString(strings.Repeat(" ", width-len(a.Name)+2))
		sb.WriteString(a.URL)
		if len(a.Aliases) > 0 {
			sb.WriteString("  " + paint(color, colorGray, "("+strings.Join(a.Aliases, ", ")+")"))
		}
		if a.Description != "" {
			sb.WriteString("  " + a.Description)
		}
		sb.WriteString("\n")

		svcWidth := 0
		for _, s := range a.Services {
			svcWidth = max(svcWidth, len(s.Name))
		}
		for _, s := range a.Services {
			sb.WriteString("    ")
			sb.WriteString(s.Name)
			sb.WriteString(strings.Repeat(" ", svcWidth-len(s.Name)+2))
			sb.WriteString(s.URL)
			if s.Default {
				sb.WriteString("  " + paint(color, colorGreen, "default"))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// formatNames formats bare app names, used when definitions could not be parsed.
func formatNames(names []string, query string, color bool) string {
	var sb strings.Builder
	sb.WriteString(formatHeader(len(names), query, color))
	for _, n := range names {
		sb.WriteString("  " + paint(color, colorCyan, n) + "\n")
	}
	return sb.String()
}

// formatFilter formats the persisted dashboard filter.
func formatFilter(state *ports.FilterState, color bool) string {
	var sb strings.Builder
	if state.Query == "" {
		sb.WriteString(paint(color, colorGray, "no active filter") + "\n")
	} else {
		sb.WriteString(fmt.Sprintf("filter: %q → %s\n", state.Query, paint(color, colorYellow, state.Normalized)))
	}
	if !state.UpdatedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("  updated: %s\n", state.UpdatedAt.Local().Format("2006-01-02 15:04:05")))
	}
	if len(state.History) > 0 {
		sb.WriteString("  recent:\n")
		for _, q := range state.History {
			sb.WriteString("    " + q + "\n")
		}
	}
	return sb.String()
}
