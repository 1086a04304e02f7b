package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-result/internal/adapters/http/dto"
	"github.com/jsamuelsen11/go-result/internal/domain/todo"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func validTodo() todo.Todo {
	return todo.Todo{
		ID:              1,
		Title:           "Buy groceries",
		Description:     "Milk, eggs, bread",
		Status:          todo.StatusPending,
		Category:        todo.CategoryPersonal,
		ProgressPercent: 0,
		CreatedAt:       testTime,
		UpdatedAt:       testTime,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(buf).Encode(v))
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "body = %s", rec.Body.String())
}

// requireProblem asserts a problem response with the given status and
// error codes, in order.
func requireProblem(t *testing.T, rec *httptest.ResponseRecorder, status int, codes ...string) {
	t.Helper()
	requireStatus(t, rec, status)
	assert.Equal(t, dto.ProblemContentType, rec.Header().Get("Content-Type"))

	p := decodeJSON[dto.ProblemResponse](t, rec)
	got := make([]string, len(p.Errors))
	for i, e := range p.Errors {
		got[i] = e.Code
	}
	assert.Equal(t, codes, got)
}
