// Package chromem backs the vector index with an embedded, directory-
// persisted chromem-go database. The directory is the sole source of
// truth for what's indexed and survives process restarts.
package chromem

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"

	chromemgo "github.com/philippgille/chromem-go"

	"github.com/coverly/policy-rag/internal/core/domain"
)

const (
	metaSource     = "source"
	metaChunkIndex = "chunk_index"
)

type Index struct {
	db   *chromemgo.DB
	coll *chromemgo.Collection
	dim  int
}

// New opens (or creates) the persistent database at path and gets or
// creates the named collection. Safe to call on every process start.
// dim is the configured embedding dimension; every vector written to or
// queried against the index must match it.
func New(path, collection string, dim int) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}

	db, err := chromemgo.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open persistent vector db at %s: %w", path, err)
	}
	coll, err := db.GetOrCreateCollection(collection, nil, rejectEmbedding)
	if err != nil {
		return nil, fmt.Errorf("get or create collection %q: %w", collection, err)
	}

	return &Index{
		db:   db,
		coll: coll,
		dim:  dim,
	}, nil
}

// rejectEmbedding guards against the store embedding on its own; every
// vector comes precomputed from the configured embedder.
func rejectEmbedding(context.Context, string) ([]float32, error) {
	return nil, errors.New("vector index does not embed; supply precomputed vectors")
}

// Upsert validates the whole batch before writing so a bad entry never
// leaves a partially applied batch behind.
func (i *Index) Upsert(ctx context.Context, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	docs := make([]chromemgo.Document, 0, len(entries))
	for _, entry := range entries {
		if entry.ID == "" {
			return domain.WrapError(domain.ErrInvalidInput, "upsert entries", errors.New("entry with empty id"))
		}
		if len(entry.Vector) != i.dim {
			return domain.WrapError(
				domain.ErrDimensionMismatch,
				"upsert entries",
				fmt.Errorf("entry %s has dimension %d, index is configured for %d", entry.ID, len(entry.Vector), i.dim),
			)
		}
		docs = append(docs, chromemgo.Document{
			ID:        entry.ID,
			Content:   entry.Text,
			Embedding: entry.Vector,
			Metadata: map[string]string{
				metaSource:     entry.Metadata.Source,
				metaChunkIndex: strconv.Itoa(entry.Metadata.ChunkIndex),
			},
		})
	}

	if err := i.coll.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return fmt.Errorf("upsert %d entries: %w", len(docs), err)
	}
	return nil
}

func (i *Index) Query(ctx context.Context, vector []float32, topK int) ([]domain.RetrievedChunk, error) {
	if len(vector) != i.dim {
		return nil, domain.WrapError(
			domain.ErrDimensionMismatch,
			"query index",
			fmt.Errorf("query vector has dimension %d, index is configured for %d", len(vector), i.dim),
		)
	}
	if topK <= 0 {
		return nil, nil
	}

	// chromem rejects nResults above the collection size; clamp so a
	// small or empty index yields fewer results instead of an error.
	count := i.coll.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := i.coll.QueryEmbedding(ctx, vector, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	out := make([]domain.RetrievedChunk, 0, len(results))
	for _, result := range results {
		chunkIndex, _ := strconv.Atoi(result.Metadata[metaChunkIndex])
		out = append(out, domain.RetrievedChunk{
			ID:   result.ID,
			Text: result.Content,
			Metadata: domain.ChunkMetadata{
				Source:     result.Metadata[metaSource],
				ChunkIndex: chunkIndex,
			},
			Score: float64(result.Similarity),
		})
	}
	return out, nil
}

func (i *Index) Count() int {
	return i.coll.Count()
}
