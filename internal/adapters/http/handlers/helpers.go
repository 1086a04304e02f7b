package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/internal/domain/todo"
	"github.com/jsamuelsen11/go-result/pkg/result"
)

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// parseID reads a positive int64 chi URL parameter.
func parseID(r *http.Request, param string) result.Result[int64] {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return result.FromError[int64](domain.InvalidField(param, "must be a positive integer"))
	}
	return result.Success(id)
}

// parseTodoFilter reads the status and category query parameters.
func parseTodoFilter(r *http.Request) result.Result[todo.Filter] {
	q := r.URL.Query()
	return todo.ParseFilter(q.Get("status"), q.Get("category"))
}

// decodeJSON decodes the size-limited request body into a T.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request) result.Result[T] {
	var dst T
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&dst); err != nil {
		return result.FromError[T](domain.InvalidField("body", "invalid JSON"))
	}
	return result.Success(dst)
}
