// Package http is the inbound HTTP adapter: routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-result/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-result/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/go-result/pkg/fault"
)

// Fault codes for requests that match no route.
const (
	CodeRouteNotFound    = "ROUTE_NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// NewRouter registers every route on a chi mux. middlewares wrap the whole
// mux in the order given, so unmatched routes pass through them too.
func NewRouter(
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewares...)

	r.NotFound(routeNotFound)
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/todos", todoHandler.ListTodos)
		r.Post("/todos", todoHandler.CreateTodo)
		r.Post("/todos:bulk-update", todoHandler.BulkUpdateTodos)
		r.Get("/todos:progress", todoHandler.Progress)
		r.Get("/todos/{id}", todoHandler.GetTodo)
		r.Patch("/todos/{id}", todoHandler.UpdateTodo)
		r.Delete("/todos/{id}", todoHandler.DeleteTodo)
	})

	return r
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	dto.WriteProblem(w, r, []fault.Error{fault.NotFound(
		fault.WithCode(CodeRouteNotFound),
		fault.WithDescription("no route matches "+r.URL.Path),
	)})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	dto.WriteProblemStatus(w, r, http.StatusMethodNotAllowed, []fault.Error{fault.Failure(
		fault.WithCode(CodeMethodNotAllowed),
		fault.WithDescription(r.Method+" is not supported on "+r.URL.Path),
	)})
}
