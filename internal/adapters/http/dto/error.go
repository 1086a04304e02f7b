package dto

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/go-result/internal/platform/logging"
	"github.com/jsamuelsen11/go-result/pkg/fault"
)

// ProblemContentType is the media type of every error response.
const ProblemContentType = "application/problem+json"

// ProblemResponse is an RFC 9457 Problem Details body. Every fault of the
// failed operation is listed in Errors, in the order it was reported.
type ProblemResponse struct {
	Type     string         `json:"type"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	Errors   []ProblemError `json:"errors"`
}

// ProblemError is the wire form of one fault.Error.
type ProblemError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// noErrorsDetail describes a failure that carried no faults.
const noErrorsDetail = "the operation failed without reporting an error"

// StatusFor maps a fault type to its HTTP status code.
func StatusFor(t fault.Type) int {
	switch t {
	case fault.TypeValidation:
		return http.StatusBadRequest
	case fault.TypeUnauthorized:
		return http.StatusUnauthorized
	case fault.TypeForbidden:
		return http.StatusForbidden
	case fault.TypeNotFound:
		return http.StatusNotFound
	case fault.TypeConflict:
		return http.StatusConflict
	case fault.TypeFailure:
		return http.StatusUnprocessableEntity
	case fault.TypeUnexpected:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewProblem builds the problem body for errs. The status and detail come
// from the first fault; an empty errs is reported as a 500.
func NewProblem(r *http.Request, errs []fault.Error) ProblemResponse {
	status := http.StatusInternalServerError
	if len(errs) > 0 {
		status = StatusFor(errs[0].Type)
	}
	return newProblem(r, status, errs)
}

func newProblem(r *http.Request, status int, errs []fault.Error) ProblemResponse {
	detail := noErrorsDetail
	if len(errs) > 0 {
		detail = errs[0].Description
	}

	return ProblemResponse{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.RequestURI(),
		Errors:   ToProblemErrors(errs),
	}
}

// ToProblemErrors converts faults to their wire form. The result is never
// nil so it always encodes as a JSON array.
func ToProblemErrors(errs []fault.Error) []ProblemError {
	out := make([]ProblemError, len(errs))
	for i, e := range errs {
		out[i] = ProblemError{
			Code:        e.Code,
			Description: e.Description,
			Type:        e.Type.String(),
		}
	}
	return out
}

// WriteProblem writes the problem response for errs.
func WriteProblem(w http.ResponseWriter, r *http.Request, errs []fault.Error) {
	writeProblem(w, r, NewProblem(r, errs), errs)
}

// WriteProblemStatus is WriteProblem with a status that does not follow from
// the fault types, such as 504 for a request that ran out of time.
func WriteProblemStatus(w http.ResponseWriter, r *http.Request, status int, errs []fault.Error) {
	writeProblem(w, r, newProblem(r, status, errs), errs)
}

func writeProblem(w http.ResponseWriter, r *http.Request, p ProblemResponse, errs []fault.Error) {
	if p.Status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "request failed",
			slog.Int("status", p.Status),
			logging.Faults(errs),
		)
	}
	write(w, r, ProblemContentType, p.Status, p)
}
