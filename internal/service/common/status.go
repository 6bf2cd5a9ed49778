//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oshokin/focus-beacon/internal/config"
	"github.com/oshokin/focus-beacon/internal/domain/focus"
	"github.com/oshokin/focus-beacon/internal/logger"
	pb "github.com/oshokin/focus-beacon/internal/pb/v1"
)

// maxStatusBodySize caps the status body read from the source.
const maxStatusBodySize = 64 << 10

var (
	// ErrTransport wraps network failures and timeouts.
	ErrTransport = errors.New("status transport error")
	// ErrProtocol wraps non-success response codes.
	ErrProtocol = errors.New("status protocol error")
	// ErrParse wraps malformed bodies.
	ErrParse = errors.New("status parse error")

	// errURLRequired is returned when no status URL is configured.
	errURLRequired = errors.New("status url must be provided")
)

// StatusClient fetches the distraction signal from an HTTP status source.
type StatusClient struct {
	// url is the polled endpoint.
	url string
	// httpClient performs the requests.
	httpClient *http.Client
	// callTimeout bounds each fetch.
	callTimeout time.Duration
}

// StatusOption configures a StatusClient.
type StatusOption func(*StatusClient)

// WithStatusTimeout sets the per-fetch timeout.
func WithStatusTimeout(timeout time.Duration) StatusOption {
	return func(c *StatusClient) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(httpClient *http.Client) StatusOption {
	return func(c *StatusClient) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewStatusClient creates a poller for url.
func NewStatusClient(url string, opts ...StatusOption) (*StatusClient, error) {
	if url == "" {
		return nil, errURLRequired
	}

	client := &StatusClient{
		url:         url,
		httpClient:  http.DefaultClient,
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Fetch performs one GET and decodes the status body.
// Errors wrap ErrTransport, ErrProtocol or ErrParse.
func (c *StatusClient) Fetch(ctx context.Context) (*pb.StatusResponse, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(callCtx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrTransport, err)
	}

	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	defer func() {
		//nolint:errcheck // The body has been consumed.
		_ = response.Body.Close()
	}()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrProtocol, response.Status)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxStatusBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	status, err := pb.UnmarshalStatusJSON(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return status, nil
}

// Report fetches the signal and collapses every failure into
// focus.ReportUnavailable after logging it.
func (c *StatusClient) Report(ctx context.Context) focus.Report {
	status, err := c.Fetch(ctx)
	if err != nil {
		logger.WarnKV(ctx, "Status poll failed", "url", c.url, "error", err)

		return focus.ReportUnavailable
	}

	report := focus.ReportFromSignal(status.GetDistracted())
	logger.DebugKV(ctx, "Status received", "report", report)

	return report
}
