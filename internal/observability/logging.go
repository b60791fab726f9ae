package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/pkg/timepal"
)

// LogConfig holds configuration for the structured logger.
type LogConfig struct {
	Level       string // "debug", "info", "warn", "error"
	Format      string // "json" or "text"
	ServiceName string
	Environment string

	// Output defaults to os.Stdout.
	Output io.Writer

	// Timestamps renders the record time with its default pattern and
	// offset. Nil keeps slog's RFC 3339 output.
	Timestamps *timepal.Facade
}

// echoedKeys are attributes that carry caller-supplied text. String values
// longer than domain.MaxPatternLength are clipped.
var echoedKeys = []string{
	"input",
	"pattern",
	"value",
}

// InitLogger creates a new structured logger.
// The returned logger is also set as the default via slog.SetDefault.
func InitLogger(cfg LogConfig) *slog.Logger {
	logger := slog.New(NewHandler(cfg)).With(
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)

	slog.SetDefault(logger)
	return logger
}

// NewHandler builds the slog handler described by cfg without touching the
// process default.
func NewHandler(cfg LogConfig) slog.Handler {
	w := cfg.Output
	if w == nil {
		w = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:       ParseLevel(cfg.Level),
		ReplaceAttr: replaceAttr(cfg.Timestamps),
	}

	if strings.ToLower(cfg.Format) == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func replaceAttr(timestamps *timepal.Facade) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 && a.Key == slog.TimeKey && timestamps != nil {
			return renderTime(a, timestamps)
		}
		return clipEchoed(a)
	}
}

func renderTime(a slog.Attr, f *timepal.Facade) slog.Attr {
	t, ok := a.Value.Any().(time.Time)
	if !ok || t.IsZero() {
		return a
	}
	s, err := f.Format(timepal.InstantOf(t))
	if err != nil {
		return a
	}
	return slog.String(a.Key, s)
}

func clipEchoed(a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}
	keyLower := strings.ToLower(a.Key)
	for _, k := range echoedKeys {
		if keyLower == k || strings.HasSuffix(keyLower, "_"+k) {
			s := a.Value.String()
			if len(s) > domain.MaxPatternLength {
				return slog.String(a.Key, s[:domain.MaxPatternLength]+"...")
			}
			return a
		}
	}
	return a
}

type requestIDKey struct{}

// WithRequestID stores the request ID in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request ID stored by WithRequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LoggerFromContext extracts a logger from context, or returns the default logger.
// Trace and request IDs present in the context are added to the logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return WithTraceID(ctx, slog.Default())
}

// WithTraceID returns a new logger with the trace and request IDs from context.
func WithTraceID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		logger = logger.With(slog.String("trace_id", traceID))
	}
	if id := RequestIDFromContext(ctx); id != "" {
		logger = logger.With(slog.String("request_id", id))
	}
	return logger
}
