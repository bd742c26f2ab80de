// Package metrics provides Prometheus metrics for the roost server.
// Labels are bounded enums only; raw queries and app names are never labels.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query label values for FilterRequestsTotal.
const (
	QueryEmpty  = "empty"
	QueryActive = "active"
)

// Reload label values for ConfigReloadsTotal.
const (
	ReloadOK    = "ok"
	ReloadError = "error"
)

var (
	// FilterRequestsTotal counts app list requests, split by whether a
	// non-empty canonical query was applied.
	FilterRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roost_filter_requests_total",
		Help: "Total number of app list requests, by query state (empty/active).",
	}, []string{"query"})

	// FilterMatchedApps observes how many apps each active filter kept.
	FilterMatchedApps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "roost_filter_matched_apps",
		Help:    "Number of apps matched by an active filter.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})

	// AppsConfigured tracks the number of loaded app definitions.
	AppsConfigured = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "roost_apps_configured",
		Help: "Current number of configured apps.",
	})

	// ConfigReloadsTotal counts catalog reloads triggered by the config watcher.
	ConfigReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roost_config_reloads_total",
		Help: "Total number of config reloads, by result (ok/error).",
	}, []string{"result"})
)

// ObserveFilter records one app list request. normalizedQuery is the
// canonical query that was applied and matched is the result size.
func ObserveFilter(normalizedQuery string, matched int) {
	if normalizedQuery == "" {
		FilterRequestsTotal.WithLabelValues(QueryEmpty).Inc()
		return
	}
	FilterRequestsTotal.WithLabelValues(QueryActive).Inc()
	FilterMatchedApps.Observe(float64(matched))
}

// ObserveReload records a config reload outcome and the resulting app count.
func ObserveReload(apps int, err error) {
	if err != nil {
		ConfigReloadsTotal.WithLabelValues(ReloadError).Inc()
		return
	}
	ConfigReloadsTotal.WithLabelValues(ReloadOK).Inc()
	AppsConfigured.Set(float64(apps))
}
