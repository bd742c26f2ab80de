package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/corey/roost/internal/domain/catalog"
	"github.com/corey/roost/internal/domain/search"
	rlog "github.com/corey/roost/internal/log"
	"github.com/corey/roost/internal/metrics"
	"github.com/corey/roost/internal/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/renameio/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// maxFilterBody bounds PUT /api/filter bodies.
const maxFilterBody = 4 << 10

// AppLister is the read side of the app catalog.
type AppLister interface {
	All() []ports.App
	Len() int
}

// Options configures a Server.
type Options struct {
	TLD          string // app URLs are http://<name>.<tld>
	RateLimit    int    // API requests per second per client IP (0 = unlimited)
	PortFilePath string // where the bound port is written for discovery ("" = don't)
}

// Server serves the web dashboard and JSON API over HTTP.
type Server struct {
	apps     AppLister
	filters  ports.FilterStorage // nil = filter persistence unavailable
	opts     Options
	logger   zerolog.Logger
	listener net.Listener
	httpSrv  *http.Server
	port     int
	started  time.Time
	stopOnce sync.Once
}

// NewServer creates an HTTP server for the dashboard.
func NewServer(apps AppLister, filters ports.FilterStorage, opts Options) *Server {
	return &Server{
		apps:    apps,
		filters: filters,
		opts:    opts,
		logger:  rlog.WithComponent("web"),
		started: time.Now(),
	}
}

// Handler builds the router. Exposed for tests and embedding.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(rlog.Middleware())

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.opts.RateLimit > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimit, time.Second))
		}
		r.Get("/health", s.handleHealth)
		r.Get("/status", s.handleStatus)
		r.Get("/filter", s.handleFilterGet)
		r.Put("/filter", s.handleFilterPut)
		r.Delete("/filter", s.handleFilterDelete)
	})

	r.Handle("/*", http.FileServerFS(staticFS))
	return r
}

// Start begins listening on 127.0.0.1:port (0 picks a free port) and
// writes the bound port to the port file.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.port = ln.Addr().(*net.TCPAddr).Port
	s.started = time.Now()
	s.httpSrv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Write port file for discovery
	if s.opts.PortFilePath != "" {
		if err := renameio.WriteFile(s.opts.PortFilePath, []byte(strconv.Itoa(s.port)), 0644); err != nil {
			ln.Close()
			return fmt.Errorf("write port file: %w", err)
		}
	}

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("dashboard server stopped")
		}
	}()
	s.logger.Info().Str("url", s.URL()).Msg("dashboard listening")
	return nil
}

// Stop gracefully shuts down the HTTP server. Idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.httpSrv.Shutdown(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("dashboard shutdown")
			}
		}
		if s.opts.PortFilePath != "" {
			os.Remove(s.opts.PortFilePath)
		}
	})
}

// Port returns the bound port number.
func (s *Server) Port() int {
	return s.port
}

// URL returns the dashboard URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResult{
		Status: "ok",
		Apps:   s.apps.Len(),
		Uptime: time.Since(s.started).Round(time.Second).String(),
	})
}

// handleStatus lists apps, filtered by ?q=. The query is normalized once
// here and reused for every app.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	q := search.Normalize(r.URL.Query().Get("q"))
	matched := catalog.FilterNormalized(s.apps.All(), q)
	metrics.ObserveFilter(q, len(matched))

	w.Header().Set(QueryHeader, url.QueryEscape(q))
	writeJSON(w, http.StatusOK, catalog.Statuses(matched, s.opts.TLD))
}

func (s *Server) handleFilterGet(w http.ResponseWriter, r *http.Request) {
	if s.filters == nil {
		writeError(w, http.StatusServiceUnavailable, "filter storage not available")
		return
	}
	state, err := s.filters.LoadFilter()
	if err != nil {
		s.logger.Error().Err(err).Msg("load filter")
		writeError(w, http.StatusInternalServerError, "load filter failed")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleFilterPut(w http.ResponseWriter, r *http.Request) {
	if s.filters == nil {
		writeError(w, http.StatusServiceUnavailable, "filter storage not available")
		return
	}
	var req FilterRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxFilterBody))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	state, err := s.filters.SaveFilter(req.Query)
	if err != nil {
		s.logger.Error().Err(err).Msg("save filter")
		writeError(w, http.StatusInternalServerError, "save filter failed")
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleFilterDelete(w http.ResponseWriter, r *http.Request) {
	if s.filters == nil {
		writeError(w, http.StatusServiceUnavailable, "filter storage not available")
		return
	}
	if err := s.filters.ClearFilter(); err != nil {
		s.logger.Error().Err(err).Msg("clear filter")
		writeError(w, http.StatusInternalServerError, "clear filter failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResult{Error: msg})
}
