package web

// HealthResult is the response of GET /api/health.
type HealthResult struct {
	Status string `json:"status"`
	Apps   int    `json:"apps"`
	Uptime string `json:"uptime"`
}

// FilterRequest is the body of PUT /api/filter.
type FilterRequest struct {
	Query string `json:"query"`
}

// ErrorResult is the body of every non-2xx API response.
type ErrorResult struct {
	Error string `json:"error"`
}

// QueryHeader carries the canonical form of the applied query on
// GET /api/status responses, encoded with url.QueryEscape so control
// characters survive the trip.
const QueryHeader = "X-Roost-Query"
