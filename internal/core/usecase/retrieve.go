package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/coverly/policy-rag/internal/core/domain"
	"github.com/coverly/policy-rag/internal/core/ports"
)

type RetrieveUseCase struct {
	embedder ports.Embedder
	index    ports.VectorIndex
	reranker ports.Reranker
	logger   *slog.Logger
}

func NewRetrieveUseCase(
	embedder ports.Embedder,
	index ports.VectorIndex,
	reranker ports.Reranker,
	logger *slog.Logger,
) *RetrieveUseCase {
	return &RetrieveUseCase{
		embedder: embedder,
		index:    index,
		reranker: reranker,
		logger:   logger,
	}
}

// Retrieve embeds the query, pulls the topK nearest chunks from the index
// and reorders them with the cross-encoder, returning at most rerankK.
// topK should stay an order of magnitude above rerankK so the reranker has
// enough candidates to work with.
func (uc *RetrieveUseCase) Retrieve(ctx context.Context, query string, topK, rerankK int) ([]domain.RetrievedChunk, error) {
	if topK <= 0 || rerankK <= 0 {
		return nil, nil
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := uc.index.Query(ctx, queryVector, topK)
	if err != nil {
		return nil, fmt.Errorf("search vector index: %w", err)
	}
	if len(hits) == 0 {
		uc.logger.Warn("retrieval produced no candidates", "top_k", topK, "index_size", uc.index.Count())
		return nil, nil
	}

	candidates := make([]string, len(hits))
	for i, hit := range hits {
		candidates[i] = hit.Text
	}
	scores, err := uc.reranker.Score(ctx, query, candidates)
	if err != nil {
		return nil, fmt.Errorf("rerank candidates: %w", err)
	}
	if len(scores) != len(hits) {
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"rerank candidates",
			fmt.Errorf("scores/candidates mismatch: %d/%d", len(scores), len(hits)),
		)
	}

	for i := range hits {
		hits[i].Score = scores[i]
	}
	// Stable sort keeps the ANN order on reranker-score ties.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if rerankK < len(hits) {
		hits = hits[:rerankK]
	}
	return hits, nil
}
