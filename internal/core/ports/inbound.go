package ports

import (
	"context"

	"github.com/coverly/policy-rag/internal/core/domain"
)

// IndexBuilder is the inbound contract for populating the vector index
// from a folder of documents.
type IndexBuilder interface {
	Build(ctx context.Context, dir string) (domain.IndexStats, error)
}

// ContextRetriever is the inbound contract for the two-stage
// retrieve-then-rerank pipeline.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string, topK, rerankK int) ([]domain.RetrievedChunk, error)
}

// QueryService is the inbound contract for grounded answer generation.
type QueryService interface {
	ContextRetriever
	Answer(ctx context.Context, question string, topK, rerankK int) (*domain.Answer, error)
}
