// Package acl keeps the downstream todo API's wire format out of the domain.
// TodoClient is the remote store; acl/todo holds the resource translators and
// this file maps downstream error responses to faults.
package acl

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/pkg/fault"
)

const (
	// CodeUnexpectedStatus marks a downstream status with no domain meaning.
	CodeUnexpectedStatus = "DOWNSTREAM_UNEXPECTED_STATUS"

	problemContentType = "application/problem+json"
	maxProblemBytes    = 1 << 20
	unavailableDetail  = "the todo service is temporarily unavailable"
)

// problem is the subset of an RFC 7807 body the todo API sends.
type problem struct {
	Detail string `json:"detail"`
	Errors []struct {
		Location string `json:"location"`
		Message  string `json:"message"`
	} `json:"errors"`
}

// faultByStatus maps the statuses with a direct domain meaning.
var faultByStatus = map[int]func(...fault.Option) fault.Error{
	http.StatusUnauthorized: fault.Unauthorized,
	http.StatusForbidden:    fault.Forbidden,
	http.StatusNotFound:     fault.NotFound,
	http.StatusConflict:     fault.Conflict,
}

// TranslateHTTPError turns a failed downstream response into faults. The
// problem detail, when present, becomes the description. Field errors on a
// 400 or 422 become one validation fault each, in downstream order, with the
// "body." location prefix removed. Any 5xx is reported as the service being
// unavailable without echoing the downstream text.
//
// The returned list is never empty.
func TranslateHTTPError(resp *http.Response) fault.List {
	p := readProblem(resp)
	detail := cmp.Or(p.Detail, http.StatusText(resp.StatusCode))

	switch code := resp.StatusCode; {
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		if len(p.Errors) == 0 {
			return fault.List{fault.Validation(fault.WithDescription(detail))}
		}
		list := make(fault.List, 0, len(p.Errors))
		for _, e := range p.Errors {
			list = append(list, domain.InvalidField(strings.TrimPrefix(e.Location, "body."), e.Message))
		}
		return list
	case code >= http.StatusInternalServerError:
		return fault.List{domain.Unavailable(unavailableDetail)}
	case faultByStatus[code] != nil:
		return fault.List{faultByStatus[code](fault.WithDescription(detail))}
	}

	return fault.List{fault.Failure(
		fault.WithCode(CodeUnexpectedStatus),
		fault.WithDescription(fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, detail)),
	)}
}

// readProblem decodes a problem+json body. Anything else, including a
// malformed body, yields the zero problem.
func readProblem(resp *http.Response) problem {
	var p problem
	if resp.Body == nil || !strings.HasPrefix(resp.Header.Get("Content-Type"), problemContentType) {
		return p
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProblemBytes)).Decode(&p); err != nil {
		return problem{}
	}
	return p
}
