// Package logging builds the service's slog loggers and carries them through
// a context.Context.
//
// Every handler returned by New redacts credentials through masq before a
// record is written. Middleware stores a request-scoped logger with
// WithLogger; services pick it up with FromContext so their records carry
// request_id and correlation_id:
//
//	logging.FromContext(ctx).Log(ctx, logging.LevelFor(errs), "create todo failed",
//	    slog.String("operation", "CreateTodo"),
//	    logging.Faults(errs),
//	)
package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/jsamuelsen11/go-result/pkg/fault"
)

// FormatText selects slog's key=value handler. Any other format is JSON.
const FormatText = "text"

type loggerKey struct{}

// New returns a logger writing to w at the given level. Level names follow
// slog ("debug", "INFO", "warn+2") and anything unparseable means info.
// Debug loggers also record the source location.
func New(level, format string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: redactAttr(),
	}

	if format == FormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// Faults renders errs under an "errors" key, one group per fault.
// Descriptions go through the same redaction as any other value.
func Faults(errs []fault.Error) slog.Attr {
	return slog.Any("errors", fault.List(errs))
}

// LevelFor picks the level for a failed Result. Caller mistakes log at warn;
// failures, unexpected errors and empty failures log at error.
func LevelFor(errs []fault.Error) slog.Level {
	if len(errs) == 0 {
		return slog.LevelError
	}
	switch errs[0].Type {
	case fault.TypeValidation, fault.TypeNotFound, fault.TypeConflict,
		fault.TypeUnauthorized, fault.TypeForbidden:
		return slog.LevelWarn
	case fault.TypeFailure, fault.TypeUnexpected:
		return slog.LevelError
	}
	return slog.LevelError
}
