// Package api serves the time facade over HTTP/JSON.
//
// Every handler shares one immutable *timepal.Facade built at start-up, so
// the process-wide default offset and pattern cannot change while serving.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	apiv1 "github.com/aelexs/timepal/api/v1"
	"github.com/aelexs/timepal/internal/observability"
	"github.com/aelexs/timepal/pkg/protocol"
	"github.com/aelexs/timepal/pkg/timepal"
)

var tracer = otel.Tracer("timepal/api")

// Params configures the HTTP handler.
type Params struct {
	// Service is reported by /healthz.
	Service string

	// Facade serves every time operation.
	Facade *timepal.Facade

	// Ready reports whether /healthz answers 200. Nil means always ready.
	Ready func() bool
}

// Handler aggregates the HTTP endpoints.
type Handler struct {
	service     string
	facade      *timepal.Facade
	ready       func() bool
	instruments *observability.Instruments
}

// New creates a Handler. The operation instruments are registered on the
// global meter provider, so call it after observability.Setup.
func New(p Params) (*Handler, error) {
	if p.Facade == nil {
		return nil, errors.New("api: nil facade")
	}
	in, err := observability.NewInstruments(otel.Meter("timepal/api"), "http")
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	ready := p.Ready
	if ready == nil {
		ready = func() bool { return true }
	}
	return &Handler{service: p.Service, facade: p.Facade, ready: ready, instruments: in}, nil
}

// Router returns the chi router with every route and middleware registered.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(requestID)
	r.Use(recoverPanic)
	r.Use(logRequests)
	r.Use(recordMetrics)

	// Registered before the subrouters so they inherit both handlers.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, protocol.Error{Code: "NOT_FOUND", Message: "no route for " + r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, protocol.Error{Code: "METHOD_NOT_ALLOWED", Message: r.Method + " not allowed"})
	})

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.json", openAPI)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/now", h.operation("now", h.now))
		r.Post("/format", h.operation("format", h.format))
		r.Post("/parse", h.operation("parse", h.parse))
		r.Post("/convert", h.operation("convert", h.convert))
		r.Post("/compare", h.operation("compare", h.compare))
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	if !h.ready() {
		respondJSON(w, http.StatusServiceUnavailable, protocol.Health{Status: "shutting_down", Service: h.service})
		return
	}
	respondJSON(w, http.StatusOK, protocol.Health{Status: "healthy", Service: h.service})
}

func openAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(apiv1.Spec)
}
