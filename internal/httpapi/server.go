// Package httpapi wires the HTTP surface of the banque service: the GraphQL
// endpoint, a small REST mirror, health probes and metrics.
// Handlers stay thin and delegate business rules to the service layer.
package httpapi

import (
    "net/http"

    chi "github.com/go-chi/chi/v5"
    "log/slog"

    "github.com/tinoosan/banque/internal/graph"
    "github.com/tinoosan/banque/internal/service/compte"
    "github.com/tinoosan/banque/internal/service/transaction"
)

// Server wires handlers and middleware using Chi.
type Server struct {
    comptes      compte.Service
    transactions transaction.Service
    graph        *graph.Schema
    ready        ReadyChecker
    log          *slog.Logger
    rt           *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// ready backs /readyz; pass nil when the store has no connectivity to check.
func New(comptes compte.Service, transactions transaction.Service, schema *graph.Schema, ready ReadyChecker, logger *slog.Logger) *Server {
    if logger == nil { logger = slog.Default() }
    r := chi.NewRouter()
    r.Use(requestID)
    r.Use(requestLogger(logger))
    r.Use(recoverer(logger))
    r.Use(metricsMiddleware)

    s := &Server{
        comptes:      comptes,
        transactions: transactions,
        graph:        schema,
        ready:        ready,
        log:          logger,
        rt:           r,
    }
    s.routes()
    return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }
