// internal/apiclient/client.go
// Package apiclient talks to the ARC Explainer platform REST API. Every call
// takes a context, honors the configured timeout, and returns wrapped errors;
// failures are terminal to the single user action that triggered them.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"arcx/internal/appconfig"
	"arcx/internal/logging"
	"arcx/internal/puzzle"
)

// Client is an HTTP client bound to one platform API base URL.
type Client struct {
	baseURL string
	client  *http.Client
	debug   bool
}

// New constructs a Client configured with the application's request timeout.
func New(cfg *appconfig.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		debug: cfg.Debug,
	}
}

// NewWithBase constructs a Client against an explicit base URL, primarily
// for tests against httptest servers.
func NewWithBase(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// ListQuery narrows the puzzle list endpoint server-side. Zero values mean
// no restriction; the full predicate set still runs client-side through the
// puzzle package.
type ListQuery struct {
	Source      string
	Explanation string
	Limit       int
	Offset      int
}

// puzzleListPage is the paginated wrapper shape some deployments return in
// place of a bare array.
type puzzleListPage struct {
	Items []puzzle.PuzzleRecord `json:"items"`
	Total int                   `json:"total"`
}

// ListPuzzles fetches puzzle records from GET /api/puzzle/list. Both the
// bare-array and paginated-wrapper response shapes are accepted.
func (c *Client) ListPuzzles(ctx context.Context, q ListQuery) ([]puzzle.PuzzleRecord, error) {
	params := url.Values{}
	if q.Source != "" {
		params.Set("source", q.Source)
	}
	if q.Explanation != "" {
		params.Set("explanation", q.Explanation)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}

	endpoint := "/api/puzzle/list"
	if encoded := params.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var records []puzzle.PuzzleRecord
	if err := json.Unmarshal(body, &records); err == nil {
		return records, nil
	}

	var page puzzleListPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("unexpected puzzle list payload: %w", err)
	}
	return page.Items, nil
}

// CompareResponse pairs the two result sheets returned by the comparison
// endpoint.
type CompareResponse struct {
	Model1 puzzle.ModelDatasetPerformance `json:"model1"`
	Model2 puzzle.ModelDatasetPerformance `json:"model2"`
}

// CompareModels fetches GET /api/metrics/compare for two models on one dataset.
func (c *Client) CompareModels(ctx context.Context, model1, model2, dataset string) (CompareResponse, error) {
	params := url.Values{}
	params.Set("model1", model1)
	params.Set("model2", model2)
	params.Set("dataset", dataset)

	body, err := c.get(ctx, "/api/metrics/compare?"+params.Encode())
	if err != nil {
		return CompareResponse{}, err
	}

	var resp CompareResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return CompareResponse{}, fmt.Errorf("unexpected comparison payload: %w", err)
	}
	return resp, nil
}

// ModelPerformance fetches one model's result sheet for one dataset from
// GET /api/metrics/model.
func (c *Client) ModelPerformance(ctx context.Context, model, dataset string) (puzzle.ModelDatasetPerformance, error) {
	params := url.Values{}
	params.Set("model", model)
	params.Set("dataset", dataset)

	body, err := c.get(ctx, "/api/metrics/model?"+params.Encode())
	if err != nil {
		return puzzle.ModelDatasetPerformance{}, err
	}

	var perf puzzle.ModelDatasetPerformance
	if err := json.Unmarshal(body, &perf); err != nil {
		return puzzle.ModelDatasetPerformance{}, fmt.Errorf("unexpected performance payload: %w", err)
	}
	return perf, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		logging.LogAPICall(method, endpoint, 0, err)
		return nil, fmt.Errorf("request %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logging.LogAPICall(method, endpoint, resp.StatusCode, err)
		return nil, fmt.Errorf("read response from %s: %w", endpoint, err)
	}

	if c.debug {
		logging.LogAPICall(method, endpoint, resp.StatusCode, nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := apiErrorMessage(data)
		return nil, fmt.Errorf("%s %s returned %d: %s", method, endpoint, resp.StatusCode, msg)
	}
	return data, nil
}

// apiErrorMessage extracts the server's error field when present, falling
// back to the raw body.
func apiErrorMessage(body []byte) string {
	var wrapper struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil {
		if wrapper.Error != "" {
			return wrapper.Error
		}
		if wrapper.Message != "" {
			return wrapper.Message
		}
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "no response body"
	}
	return trimmed
}
