package ports

import (
	"context"

	"github.com/coverly/policy-rag/internal/core/domain"
)

// DocumentLoader reads a folder of source files into documents.
type DocumentLoader interface {
	Load(ctx context.Context, dir string) ([]domain.Document, error)
}

// Chunker splits raw text into bounded-size chunks.
type Chunker interface {
	Split(text string) []string
}

// Embedder builds vectors for chunks and query text. Both sides of a
// similarity comparison must come from the same Embedder instance.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorIndex persists chunk vectors and performs nearest-neighbor search.
type VectorIndex interface {
	// Upsert creates or fully replaces one entry per id. A zero-length
	// batch is a no-op; an invalid entry rejects the whole batch before
	// any write.
	Upsert(ctx context.Context, entries []domain.IndexEntry) error
	// Query returns at most topK entries ordered by descending similarity.
	// A smaller or empty index yields fewer results, never an error.
	Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedChunk, error)
	Count() int
}

// Reranker scores each (query, candidate) pair for relevance; higher is
// more relevant. It is meant for small candidate sets, not corpus-scale
// search.
type Reranker interface {
	Score(ctx context.Context, query string, candidates []string) ([]float64, error)
}

// AnswerGenerator produces the final answer from the question and the
// assembled context block.
type AnswerGenerator interface {
	GenerateAnswer(ctx context.Context, question, contextBlock string) (string, error)
}
