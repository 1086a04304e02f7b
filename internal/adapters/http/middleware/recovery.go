package middleware

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/jsamuelsen11/go-result/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-result/pkg/fault"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

// CodeInvalidResultAccess marks a response produced after code read the
// wrong side of a result.Result.
const CodeInvalidResultAccess = "RESULT_INVALID_STATE"

// Recovery runs outside RequestID and CorrelationID, so its context never
// carries the IDs. They are read back from the response headers those
// middlewares set, falling back to what the client sent.
func panicIDs(w http.ResponseWriter, r *http.Request) []any {
	var attrs []any
	for _, id := range []struct{ key, header string }{
		{"request_id", headerRequestID},
		{"correlation_id", headerCorrelationID},
	} {
		if v := cmp.Or(w.Header().Get(id.header), r.Header.Get(id.header)); v != "" {
			attrs = append(attrs, slog.String(id.key, v))
		}
	}
	return attrs
}

// Recovery returns middleware that recovers from panics in downstream
// handlers, logs them with the stack trace and answers with an Unexpected
// problem response. Panic values never reach the client. A misused
// result.Result is logged with the accessor that was called. If headers
// were already written, only the log entry is emitted.
//
// http.ErrAbortHandler is re-panicked so net/http can abort the connection.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(v)
				}

				attrs := []any{
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}
				resp := fault.Unexpected()

				var ise *result.InvalidStateError
				if err, ok := v.(error); ok && errors.As(err, &ise) {
					attrs = append(attrs, slog.String("result_op", ise.Op))
					resp = fault.Unexpected(fault.WithCode(CodeInvalidResultAccess))
				}

				attrs = append(attrs, panicIDs(ww, r)...)
				logger.ErrorContext(r.Context(), "panic recovered", attrs...)

				if ww.Status() == 0 {
					dto.WriteProblem(ww, r, []fault.Error{resp})
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
