// Package ollama talks to an Ollama server for embeddings and answer
// generation. Both capabilities share one HTTP client and resilience
// executor.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coverly/policy-rag/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	genModel   string
	embedModel string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, genModel, embedModel string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		genModel:   genModel,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		executor:   executor,
	}
}

type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

// Embed sends all texts in a single batch request. Empty input returns an
// empty result without touching the model.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	request := map[string]any{
		"model": e.client.embedModel,
		"input": texts,
	}

	var response struct {
		Embeddings [][]float32 `json:"embeddings"`
	}
	if err := e.client.call(ctx, "embed", "/api/embed", request, &response); err != nil {
		return nil, err
	}
	if len(response.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embed response: %d vectors for %d inputs", len(response.Embeddings), len(texts))
	}
	return response.Embeddings, nil
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}
	return vectors[0], nil
}

type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) GenerateAnswer(ctx context.Context, question, contextBlock string) (string, error) {
	request := map[string]any{
		"model":  g.client.genModel,
		"prompt": buildAnswerPrompt(question, contextBlock),
		"stream": false,
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := g.client.call(ctx, "generate", "/api/generate", request, &response); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}

func (c *Client) call(ctx context.Context, operation, path string, payload, out any) error {
	err := c.executor.Execute(ctx, "ollama_"+operation, func(callCtx context.Context) error {
		return c.postJSON(callCtx, path, payload, out, operation)
	}, classifyModelError)
	return wrapUnavailableIfNeeded("ollama "+operation, err)
}
