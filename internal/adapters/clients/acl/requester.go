package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	acltodo "github.com/jsamuelsen11/go-result/internal/adapters/clients/acl/todo"
	"github.com/jsamuelsen11/go-result/internal/domain"
	"github.com/jsamuelsen11/go-result/internal/platform/httpclient"
	"github.com/jsamuelsen11/go-result/internal/platform/logging"
	"github.com/jsamuelsen11/go-result/pkg/fault"
)

// Requester runs one JSON request/response exchange against the downstream
// API and reports every failure as domain faults: request building, body
// cleanup, status checking, error translation and decoding.
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester creates a Requester backed by the given HTTP client and logger.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Requester{client: client, logger: logger}
}

// Do sends method path (relative to the client's base URL) with reqBody
// encoded as JSON when non-nil, and decodes the response into respBody when
// non-nil. It returns nil when the downstream answered wantStatus.
//
// Any other status is translated by TranslateHTTPError. Transport failures
// and breaker rejections become domain.Unavailable; a cancelled ctx becomes
// domain.Canceled.
func (r *Requester) Do(ctx context.Context, method, path string, wantStatus int, reqBody, respBody any) []fault.Error {
	req, errs := r.newRequest(ctx, method, path, reqBody)
	if errs != nil {
		return errs
	}

	resp, err := r.client.Do(ctx, req)
	if err != nil && resp == nil {
		return r.transportFailure(ctx, req, err)
	}
	defer r.closeBody(ctx, resp)

	// Retries exhausted on a retryable status still return the last
	// response, so the status decides below.
	if resp.StatusCode != wantStatus {
		faults := TranslateHTTPError(resp)
		r.logger.LogAttrs(ctx, logging.LevelFor(faults), "unexpected downstream status",
			slog.String("method", req.Method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Int("want_status", wantStatus),
			logging.Faults(faults),
		)
		return faults
	}

	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		r.logger.ErrorContext(ctx, "decoding downstream response",
			slog.String("method", req.Method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return []fault.Error{fault.Unexpected(
			fault.WithCode(acltodo.CodeBadPayload),
			fault.WithDescription(fmt.Sprintf("undecodable response from %s %s", req.Method, path)),
		)}
	}
	return nil
}

// HealthCheck reports the downstream breaker state.
func (r *Requester) HealthCheck(ctx context.Context) error {
	return r.client.HealthCheck(ctx)
}

func (r *Requester) newRequest(ctx context.Context, method, path string, reqBody any) (*http.Request, []fault.Error) {
	var body io.Reader = http.NoBody
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return nil, []fault.Error{fault.Unexpected(
				fault.WithDescription(fmt.Sprintf("encoding %s %s body: %v", method, path, err)),
			)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.client.BaseURL()+path, body)
	if err != nil {
		return nil, []fault.Error{fault.Unexpected(
			fault.WithDescription(fmt.Sprintf("building %s %s request: %v", method, path, err)),
		)}
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (r *Requester) transportFailure(ctx context.Context, req *http.Request, err error) []fault.Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return []fault.Error{domain.Canceled(ctxErr)}
	}

	r.logger.ErrorContext(ctx, "downstream request failed",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Bool("breaker_rejected", httpclient.IsBreakerRejection(err)),
		slog.Any("error", err),
	)
	return []fault.Error{domain.Unavailable(unavailableDetail)}
}

func (r *Requester) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "failed to close response body", slog.Any("error", err))
	}
}
