package acl

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/pkg/fault"
)

func TestTranslateHTTPError_StatusMapping(t *testing.T) {
	t.Parallel()

	want := map[int]fault.Type{
		http.StatusBadRequest:          fault.TypeValidation,
		http.StatusUnprocessableEntity: fault.TypeValidation,
		http.StatusUnauthorized:        fault.TypeUnauthorized,
		http.StatusForbidden:           fault.TypeForbidden,
		http.StatusNotFound:            fault.TypeNotFound,
		http.StatusConflict:            fault.TypeConflict,
		http.StatusInternalServerError: fault.TypeUnexpected,
		http.StatusBadGateway:          fault.TypeUnexpected,
		http.StatusServiceUnavailable:  fault.TypeUnexpected,
		http.StatusTeapot:              fault.TypeFailure,
		http.StatusFound:               fault.TypeFailure,
	}

	for status, typ := range want {
		got := TranslateHTTPError(&http.Response{StatusCode: status, Header: http.Header{}, Body: http.NoBody})

		require.Len(t, got, 1, "status %d", status)
		assert.Equal(t, typ, got[0].Type, "status %d", status)
	}
}

func TestTranslateHTTPError_ServerErrorsHideDetail(t *testing.T) {
	t.Parallel()

	resp := &http.Response{
		StatusCode: http.StatusInternalServerError,
		Header:     http.Header{"Content-Type": []string{"application/problem+json"}},
		Body:       io.NopCloser(strings.NewReader(`{"detail":"pq: connection refused to 10.0.0.7"}`)),
	}

	got := TranslateHTTPError(resp)

	assert.Equal(t, fault.List{domain.Unavailable(unavailableDetail)}, got)
}

func TestTranslateHTTPError_RFC7807Parsing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		statusCode int
		body       string
		wantDesc   string
	}{
		{
			name:       "extracts detail from RFC 7807 body",
			statusCode: http.StatusNotFound,
			body:       `{"type":"about:blank","title":"Not Found","status":404,"detail":"todo 42 not found"}`,
			wantDesc:   "todo 42 not found",
		},
		{
			name:       "falls back to status text for non-JSON body",
			statusCode: http.StatusNotFound,
			body:       "Not Found",
			wantDesc:   "Not Found",
		},
		{
			name:       "falls back to status text for empty body",
			statusCode: http.StatusConflict,
			body:       "",
			wantDesc:   "Conflict",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			header := http.Header{}
			if strings.HasPrefix(tt.body, "{") {
				header.Set("Content-Type", "application/problem+json")
			}

			resp := &http.Response{
				StatusCode: tt.statusCode,
				Header:     header,
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}

			got := TranslateHTTPError(resp)

			require.Len(t, got, 1)
			assert.Equal(t, tt.wantDesc, got[0].Description)
		})
	}
}

func TestTranslateHTTPError_ValidationErrorWithDetails(t *testing.T) {
	t.Parallel()

	body := `{
		"type": "about:blank",
		"title": "Bad Request",
		"status": 400,
		"detail": "validation failed",
		"errors": [
			{"location": "body.title", "message": "is required"},
			{"location": "body.description", "message": "is required"}
		]
	}`

	resp := &http.Response{
		StatusCode: http.StatusBadRequest,
		Header:     http.Header{"Content-Type": []string{"application/problem+json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}

	got := TranslateHTTPError(resp)

	assert.Equal(t, fault.List{
		domain.InvalidField("title", "is required"),
		domain.InvalidField("description", "is required"),
	}, got)
}

func TestTranslateHTTPError_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	resp := &http.Response{
		StatusCode: http.StatusTeapot,
		Header:     http.Header{},
		Body:       http.NoBody,
	}

	got := TranslateHTTPError(resp)

	require.Len(t, got, 1)
	assert.Equal(t, CodeUnexpectedStatus, got[0].Code)
	assert.Contains(t, got[0].Description, "418")
}

func TestTranslateHTTPError_NilBody(t *testing.T) {
	t.Parallel()

	resp := &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{"Content-Type": []string{"application/problem+json"}},
		Body:       nil,
	}

	got := TranslateHTTPError(resp)

	require.Len(t, got, 1)
	assert.Equal(t, "Not Found", got[0].Description)
}
