// Package http exposes the contract pricing engine as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"vertragsassistent/internal/core"
	applog "vertragsassistent/internal/log"
	"vertragsassistent/internal/services"
)

// Read-side ports served directly from storage without a service in between.
type (
	PricingLister interface {
		ListPricing(ctx context.Context, contractID int64) ([]core.PricingPeriod, error)
	}

	ContractLister interface {
		ListContracts(ctx context.Context) ([]core.Contract, error)
	}

	Pinger interface {
		Ping(ctx context.Context) error
	}
)

type Server struct {
	http.Server

	aggregator *services.Aggregator
	contracts  *services.ContractService
	tags       *services.TagService
	documents  *services.DocumentService
	pricing    PricingLister
	lister     ContractLister
	readiness  Pinger

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, aggregator *services.Aggregator, contracts *services.ContractService, tags *services.TagService, documents *services.DocumentService, pricing PricingLister, lister ContractLister, readiness Pinger, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		aggregator:  aggregator,
		contracts:   contracts,
		tags:        tags,
		documents:   documents,
		pricing:     pricing,
		lister:      lister,
		readiness:   readiness,
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/view", s.secure(s.handleView))

	mux.HandleFunc("GET /api/contracts", s.secure(s.handleListContracts))
	mux.HandleFunc("POST /api/contracts", s.secure(s.handleCreateContract))
	mux.HandleFunc("GET /api/contracts/{id}", s.secure(s.handleGetContract))
	mux.HandleFunc("PUT /api/contracts/{id}", s.secure(s.handleUpdateContract))
	mux.HandleFunc("DELETE /api/contracts/{id}", s.secure(s.handleDeleteContract))
	mux.HandleFunc("GET /api/contracts/{id}/pricing", s.secure(s.handleGetPricing))
	mux.HandleFunc("POST /api/pricing/validate", s.secure(s.handleValidatePricing))

	mux.HandleFunc("GET /api/tags", s.secure(s.handleListTags))
	mux.HandleFunc("POST /api/tags", s.secure(s.handleCreateTag))
	mux.HandleFunc("PUT /api/tags/{id}", s.secure(s.handleRenameTag))
	mux.HandleFunc("DELETE /api/tags/{id}", s.secure(s.handleDeleteTag))
	mux.HandleFunc("POST /api/contracts/{id}/tags/{tagID}", s.secure(s.handleAssignTag))
	mux.HandleFunc("DELETE /api/contracts/{id}/tags/{tagID}", s.secure(s.handleUnassignTag))

	mux.HandleFunc("GET /api/contracts/{id}/documents", s.secure(s.handleListDocuments))
	mux.HandleFunc("POST /api/contracts/{id}/documents", s.secure(s.handleCreateDocument))
	mux.HandleFunc("PUT /api/documents/{id}", s.secure(s.handleUpdateDocument))
	mux.HandleFunc("DELETE /api/documents/{id}", s.secure(s.handleDeleteDocument))

	var handler http.Handler = mux
	if logger != nil {
		handler = applog.Middleware(logger)(mux)
	}

	s.Server = http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Shutdown stops the rate limiter cleanup goroutine and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// secure adds security headers and rate-limits mutating requests.
func (s *Server) secure(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.readiness != nil {
		if err := s.readiness.Ping(r.Context()); err != nil {
			writeError(w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
