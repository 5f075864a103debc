// Package tei scores (query, candidate) pairs against a cross-encoder
// served behind the text-embeddings-inference rerank API.
package tei

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coverly/policy-rag/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		executor:   executor,
	}
}

// Score returns one relevance score per candidate, in candidate order.
// Empty candidates return an empty result without a model call.
func (c *Client) Score(ctx context.Context, query string, candidates []string) ([]float64, error) {
	if len(candidates) == 0 {
		return []float64{}, nil
	}

	request := map[string]any{
		"query": query,
		"texts": candidates,
	}

	var ranks []struct {
		Index int     `json:"index"`
		Score float64 `json:"score"`
	}
	err := c.executor.Execute(ctx, "rerank", func(callCtx context.Context) error {
		return c.postJSON(callCtx, "/rerank", request, &ranks)
	}, classifyRerankError)
	if err != nil {
		return nil, wrapUnavailableIfNeeded("rerank", err)
	}
	if len(ranks) != len(candidates) {
		return nil, fmt.Errorf("rerank response: %d scores for %d candidates", len(ranks), len(candidates))
	}

	// The service returns pairs sorted by score; map them back onto the
	// caller's candidate order.
	scores := make([]float64, len(candidates))
	for _, rank := range ranks {
		if rank.Index < 0 || rank.Index >= len(scores) {
			return nil, fmt.Errorf("rerank response: index %d out of range", rank.Index)
		}
		scores[rank.Index] = rank.Score
	}
	return scores, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal rerank request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create rerank request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("rerank request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return newHTTPStatusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode rerank response: %w", err)
	}
	return nil
}

type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func newHTTPStatusError(resp *http.Response) *HTTPStatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "rerank status error"
	}
	if e.Body == "" {
		return fmt.Sprintf("rerank status: %s", e.Status)
	}
	return fmt.Sprintf("rerank status: %s: %s", e.Status, e.Body)
}
