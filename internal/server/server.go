// Package server wires the washplane HTTP API together.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"washplane/internal/config"
	"washplane/internal/engine"
	"washplane/internal/observability"
	"washplane/internal/server/handlers"
	"washplane/internal/server/middleware"
	"washplane/internal/server/ws"
)

// Server is the HTTP server for the washplane API.
type Server struct {
	httpServer *http.Server
}

// New creates a new API server.
// metricsHandler serves the Prometheus scrape endpoint; metrics may be nil.
func New(addr string, store handlers.StoreFactory, cfg *config.Config, log *slog.Logger, metricsHandler http.Handler, metrics *observability.ServerMetrics) *Server {
	hub := ws.NewHub(log)
	eng := engine.New(store, store)
	h := handlers.New(store, eng, log, hub, metrics)

	authMW := middleware.APIKeyAuth(store)
	rateMW := middleware.RateLimit()
	adminMW := middleware.RequireAdminAuth(cfg.AdminSecret)
	logMW := middleware.RequestLogging(log)

	// Every authenticated route passes auth first, then the per-tenant limiter.
	authed := func(next http.HandlerFunc) http.Handler {
		return authMW(rateMW(next))
	}

	mux := http.NewServeMux()

	// Platform operator endpoint, guarded by the admin secret.
	mux.Handle("POST /businesses", adminMW(http.HandlerFunc(h.CreateBusiness)))

	// Tenant-scoped apis
	mux.Handle("POST /customers", authed(h.CreateCustomer))
	mux.Handle("POST /customers/{id}/cars", authed(h.CreateCar))
	mux.Handle("POST /services", authed(h.CreateService))
	mux.Handle("GET /services", authed(h.ListServices))
	mux.Handle("PATCH /services/{id}", authed(h.UpdateService))
	mux.Handle("POST /jobs", authed(h.CreateJob))
	mux.Handle("GET /jobs", authed(h.ListJobs))
	mux.Handle("GET /jobs/{id}", authed(h.GetJob))
	mux.Handle("POST /jobs/{id}/status", authed(h.UpdateJobStatus))
	mux.Handle("POST /jobs/{id}/cancel", authed(h.CancelJob))

	// Live job board. The limiter is skipped: one long-lived connection
	// per client, not a request stream.
	mux.Handle("GET /ws/jobs", authMW(http.HandlerFunc(h.StreamJobs)))

	// Probes and scrape endpoint are unauthenticated.
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      logMW(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Run starts the HTTP server. It blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutDownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return s.Shutdown(shutDownCtx)
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
