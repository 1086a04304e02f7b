package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/go-result/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-result/internal/ports"
	"github.com/jsamuelsen11/go-result/pkg/fault"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

const (
	statusOK       = "ok"
	statusReady    = "ready"
	statusNotReady = "not_ready"
)

// ReadinessResponse is the body of GET /health/ready. Checks maps each
// dependency to "ok" or to the faults its check reported.
type ReadinessResponse struct {
	Status string         `json:"status"`
	Checks map[string]any `json:"checks"`
}

// HealthHandler handles liveness and readiness HTTP endpoints.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a new HealthHandler with the given health registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. Always returns 200 OK.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	dto.WriteJSON(w, r, http.StatusOK, map[string]string{"status": statusOK})
}

// Readiness handles GET /health/ready. Returns 200 if all checks pass,
// 503 if any check fails.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{Status: statusReady, Checks: map[string]any{}}
	code := http.StatusOK

	for name, res := range h.registry.CheckAll(r.Context()) {
		resp.Checks[name] = result.Match(res,
			func(struct{}) any { return statusOK },
			func(errs []fault.Error) any { return dto.ToProblemErrors(errs) },
		)
		if res.HasError() {
			resp.Status = statusNotReady
			code = http.StatusServiceUnavailable
		}
	}

	dto.WriteJSON(w, r, code, resp)
}
