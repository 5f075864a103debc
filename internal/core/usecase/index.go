package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/coverly/policy-rag/internal/core/domain"
	"github.com/coverly/policy-rag/internal/core/ports"
)

// chunkIDNamespace seeds content-hash chunk ids. Stable across runs so
// re-indexing unchanged content replaces entries instead of duplicating
// them.
var chunkIDNamespace = uuid.MustParse("7b2a8f60-4d0e-4a3f-9c56-1f0d2b3a4c5d")

type BuildIndexUseCase struct {
	loader   ports.DocumentLoader
	chunker  ports.Chunker
	embedder ports.Embedder
	index    ports.VectorIndex
	logger   *slog.Logger
}

func NewBuildIndexUseCase(
	loader ports.DocumentLoader,
	chunker ports.Chunker,
	embedder ports.Embedder,
	index ports.VectorIndex,
	logger *slog.Logger,
) *BuildIndexUseCase {
	return &BuildIndexUseCase{
		loader:   loader,
		chunker:  chunker,
		embedder: embedder,
		index:    index,
		logger:   logger,
	}
}

// Build runs load -> chunk -> embed -> upsert over every document in dir.
// Zero documents or zero chunks leaves the index untouched.
func (uc *BuildIndexUseCase) Build(ctx context.Context, dir string) (domain.IndexStats, error) {
	docs, err := uc.loader.Load(ctx, dir)
	if err != nil {
		return domain.IndexStats{}, fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		uc.logger.Warn("no documents found, index left untouched", "dir", dir)
		return domain.IndexStats{}, nil
	}

	chunks := uc.chunkDocuments(docs)
	if len(chunks) == 0 {
		uc.logger.Warn("chunking produced zero chunks, index left untouched", "dir", dir, "documents", len(docs))
		return domain.IndexStats{Documents: len(docs)}, nil
	}

	vectors, err := uc.embedChunks(ctx, chunks)
	if err != nil {
		return domain.IndexStats{}, err
	}

	entries := make([]domain.IndexEntry, len(chunks))
	for i, chunk := range chunks {
		entries[i] = domain.IndexEntry{
			ID:       chunk.ID,
			Vector:   vectors[i],
			Text:     chunk.Text,
			Metadata: chunk.Metadata,
		}
	}
	if err := uc.index.Upsert(ctx, entries); err != nil {
		return domain.IndexStats{}, fmt.Errorf("upsert index entries: %w", err)
	}

	stats := domain.IndexStats{Documents: len(docs), Chunks: len(chunks)}
	uc.logger.Info("index build complete",
		"documents", stats.Documents,
		"chunks", stats.Chunks,
		"index_size", uc.index.Count(),
	)
	return stats, nil
}

func (uc *BuildIndexUseCase) chunkDocuments(docs []domain.Document) []domain.Chunk {
	out := make([]domain.Chunk, 0, len(docs))
	for _, doc := range docs {
		for i, text := range uc.chunker.Split(doc.Text) {
			out = append(out, domain.Chunk{
				ID:   chunkID(doc.Source, i, text),
				Text: text,
				Metadata: domain.ChunkMetadata{
					Source:     doc.Source,
					ChunkIndex: i,
				},
			})
		}
	}
	return out
}

func (uc *BuildIndexUseCase) embedChunks(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, domain.WrapError(
			domain.ErrInvalidInput,
			"embed chunks",
			fmt.Errorf("vectors/chunks mismatch: %d/%d", len(vectors), len(chunks)),
		)
	}
	return vectors, nil
}

func chunkID(source string, index int, text string) string {
	return uuid.NewSHA1(chunkIDNamespace, fmt.Appendf(nil, "%s|%d|%s", source, index, text)).String()
}
