package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/internal/errmap"
	"github.com/aelexs/timepal/internal/observability"
	"github.com/aelexs/timepal/pkg/protocol"
)

// handlerFunc is an HTTP handler that reports failure by returning an error.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// operation wraps fn with a span, operation metrics and error rendering.
func (h *Handler) operation(name string, fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "api."+name,
			trace.WithAttributes(attribute.String("request_id", observability.RequestIDFromContext(r.Context()))))
		defer span.End()

		start := time.Now()
		err := fn(w, r.WithContext(ctx))

		var code string
		if err != nil {
			httpErr := errmap.ToHTTPError(err)
			code = httpErr.Code
			span.RecordError(err)
			span.SetStatus(codes.Error, httpErr.Code)
			logFailure(ctx, name, httpErr, err)
			respondError(w, r, httpErr.StatusCode, protocol.Error{Code: httpErr.Code, Message: httpErr.Message})
		}
		h.instruments.Record(ctx, name, code, time.Since(start))
	}
}

func logFailure(ctx context.Context, op string, httpErr errmap.HTTPError, err error) {
	logger := observability.LoggerFromContext(ctx)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		logger.Error("operation failed",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("operation rejected",
		slog.String("operation", op),
		slog.String("code", httpErr.Code),
		slog.String("error", err.Error()),
	)
}

// respondJSON writes payload with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, r *http.Request, status int, body protocol.Error) {
	body.RequestID = observability.RequestIDFromContext(r.Context())
	respondJSON(w, status, body)
}

// decodeJSON reads one JSON object from the request body into v. Unknown
// fields and trailing data are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, domain.MaxRequestBodySize)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: body exceeds %d bytes", domain.ErrRequestTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: decode body: %v", domain.ErrInvalidInput, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON object", domain.ErrInvalidInput)
	}
	return nil
}
