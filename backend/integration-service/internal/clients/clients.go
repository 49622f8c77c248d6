// Package clients calls the Process and Industry Connect services.
//
// Every call builds its own http.Client and carries the caller's context.
// Nothing is retried or cached; response bodies are handed back untouched.
package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/anaghasb/CC-phase2-integration/internal/logging"
	"github.com/anaghasb/CC-phase2-integration/internal/metrics"
	"github.com/anaghasb/CC-phase2-integration/internal/tracing"
)

// ErrNotFound is returned when the upstream answers 404.
var ErrNotFound = errors.New("not found upstream")

// StatusError is a non-200, non-404 upstream reply.
type StatusError struct {
	Upstream   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Upstream, e.StatusCode)
}

// upstream issues GET requests against one service base URL.
type upstream struct {
	name    string
	baseURL string
	// nil means http.DefaultTransport
	transport http.RoundTripper
}

func (u upstream) get(ctx context.Context, path string) (json.RawMessage, error) {
	start := time.Now()
	body, err := u.do(ctx, path)
	metrics.ObserveUpstream(u.name, resultLabel(err), time.Since(start))
	if err != nil && !errors.Is(err, ErrNotFound) {
		logging.LogKV("warn", "upstream call failed", map[string]interface{}{
			"upstream": u.name,
			"path":     path,
			"error":    err.Error(),
		})
	}
	return body, err
}

func (u upstream) do(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", u.name, err)
	}
	req.Header.Set("Accept", "application/json")

	client := &http.Client{Transport: tracing.Transport(u.transport)}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", u.name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s %s: %w", u.name, path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Upstream: u.name, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", u.name, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s returned invalid JSON", u.name)
	}
	return json.RawMessage(data), nil
}

func resultLabel(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &statusErr):
		return "status_" + strconv.Itoa(statusErr.StatusCode)
	default:
		return "error"
	}
}

// ProcessClient reads from the Process service.
type ProcessClient struct {
	upstream
}

// NewProcessClient creates a client for the Process service at baseURL.
func NewProcessClient(baseURL string) *ProcessClient {
	return &ProcessClient{upstream{name: "process", baseURL: baseURL}}
}

// ListProcesses fetches GET /processes/.
func (c *ProcessClient) ListProcesses(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/processes/")
}

// GetProcess fetches GET /processes/{id}.
func (c *ProcessClient) GetProcess(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "/processes/"+strconv.Itoa(id))
}

// IndustryClient reads from the Industry Connect service.
type IndustryClient struct {
	upstream
}

// NewIndustryClient creates a client for the Industry Connect service at baseURL.
func NewIndustryClient(baseURL string) *IndustryClient {
	return &IndustryClient{upstream{name: "industry", baseURL: baseURL}}
}

// ListPartners fetches GET /partners/.
func (c *IndustryClient) ListPartners(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/partners/")
}

// GetPartner fetches GET /partners/{id}.
func (c *IndustryClient) GetPartner(ctx context.Context, id int) (json.RawMessage, error) {
	return c.get(ctx, "/partners/"+strconv.Itoa(id))
}
