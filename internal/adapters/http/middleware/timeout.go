package middleware

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/jsamuelsen11/go-result/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/pkg/fault"
)

// Timeout gives each request a deadline of limit. The handler runs on its
// own goroutine against a buffered writer; if the deadline passes first the
// client gets a 504 problem with code REQUEST_TIMEOUT and whatever the
// handler writes afterwards is dropped. A panic in the handler is re-raised
// on the serving goroutine so Recovery still sees it.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			tw := &timeoutWriter{header: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if v := recover(); v != nil {
						panicked <- v
						return
					}
					close(done)
				}()
				next.ServeHTTP(tw, r.WithContext(ctx))
			}()

			select {
			case v := <-panicked:
				panic(v)
			case <-done:
				tw.flushTo(w)
			case <-ctx.Done():
				tw.abandon()
				dto.WriteProblemStatus(w, r, http.StatusGatewayTimeout, []fault.Error{domain.Timeout(limit)})
			}
		})
	}
}

// timeoutWriter buffers a handler's response until Timeout decides whether
// to send it. Writes after abandon are discarded.
type timeoutWriter struct {
	mu        sync.Mutex
	header    http.Header
	buf       []byte
	status    int
	abandoned bool
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.status == 0 {
		tw.status = code
	}
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.abandoned {
		return 0, http.ErrHandlerTimeout
	}
	if tw.status == 0 {
		tw.status = http.StatusOK
	}
	tw.buf = append(tw.buf, b...)
	return len(b), nil
}

func (tw *timeoutWriter) abandon() {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	tw.abandoned = true
}

func (tw *timeoutWriter) flushTo(w http.ResponseWriter) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	maps.Copy(w.Header(), tw.header)
	if tw.status != 0 {
		w.WriteHeader(tw.status)
	}
	if len(tw.buf) > 0 {
		_, _ = w.Write(tw.buf)
	}
}
