package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lmittmann/tint"
)

type ctxKey struct{}

var dl atomic.Pointer[slog.Logger]

func init() {
	dl.Store(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// Init installs the process-wide logger. Pretty output uses tint, anything
// else is JSON.
func Init(w io.Writer, logLevel string, pretty bool) error {
	level, err := ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("init global logger: %v", err)
	}

	var handler slog.Handler
	if pretty {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	SetDefault(slog.New(handler))
	return nil
}

func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %v", s, err)
	}
	return level, nil
}

func SetDefault(l *slog.Logger) {
	dl.Store(l)
	slog.SetDefault(l)
}

func Default() *slog.Logger {
	return dl.Load()
}

// WithRequestID stores the request id so every line logged for the request
// carries it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// From returns the default logger annotated with values found in ctx.
func From(ctx context.Context) *slog.Logger {
	l := Default()
	if ctx == nil {
		return l
	}
	if id := RequestID(ctx); id != "" {
		l = l.With(slog.String("request_id", id))
	}
	return l
}

func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	From(ctx).LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	From(ctx).LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	From(ctx).LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	From(ctx).LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func Err(err error) slog.Attr {
	return slog.Any("error", err)
}
