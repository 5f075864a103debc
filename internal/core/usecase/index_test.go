package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/coverly/policy-rag/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type loaderFake struct {
	docs []domain.Document
	err  error
}

func (f *loaderFake) Load(context.Context, string) ([]domain.Document, error) {
	return f.docs, f.err
}

// chunkerFake splits on "|" so tests control chunk boundaries exactly.
type chunkerFake struct{}

func (chunkerFake) Split(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "|")
}

type embedderFake struct {
	batches  [][]string
	err      error
	oneShort bool
}

func (f *embedderFake) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.batches = append(f.batches, texts)
	if f.err != nil {
		return nil, f.err
	}
	n := len(texts)
	if f.oneShort && n > 0 {
		n--
	}
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{float32(i)}
	}
	return out, nil
}

func (f *embedderFake) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := f.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

type indexFake struct {
	entries map[string]domain.IndexEntry
	upserts int
}

func newIndexFake() *indexFake {
	return &indexFake{entries: make(map[string]domain.IndexEntry)}
}

func (f *indexFake) Upsert(_ context.Context, entries []domain.IndexEntry) error {
	f.upserts++
	for _, e := range entries {
		f.entries[e.ID] = e
	}
	return nil
}

func (f *indexFake) Query(context.Context, []float32, int) ([]domain.RetrievedChunk, error) {
	return nil, nil
}

func (f *indexFake) Count() int { return len(f.entries) }

func TestBuildIndexesChunksWithSourceMetadata(t *testing.T) {
	loader := &loaderFake{docs: []domain.Document{
		{Source: "policy.txt", Text: "one|two"},
		{Source: "terms.pdf", Text: "three"},
	}}
	index := newIndexFake()
	uc := NewBuildIndexUseCase(loader, chunkerFake{}, &embedderFake{}, index, testLogger())

	stats, err := uc.Build(context.Background(), "docs")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if stats.Documents != 2 || stats.Chunks != 3 {
		t.Fatalf("expected stats {2 3}, got %+v", stats)
	}
	if index.Count() != 3 {
		t.Fatalf("expected 3 index entries, got %d", index.Count())
	}

	sources := map[string]int{}
	for _, entry := range index.entries {
		sources[entry.Metadata.Source]++
		if entry.ID == "" {
			t.Fatalf("entry without id: %+v", entry)
		}
	}
	if sources["policy.txt"] != 2 || sources["terms.pdf"] != 1 {
		t.Fatalf("unexpected source distribution: %v", sources)
	}
}

func TestBuildProducesStableIDsAcrossRuns(t *testing.T) {
	loader := &loaderFake{docs: []domain.Document{{Source: "policy.txt", Text: "one|two"}}}
	index := newIndexFake()
	uc := NewBuildIndexUseCase(loader, chunkerFake{}, &embedderFake{}, index, testLogger())

	if _, err := uc.Build(context.Background(), "docs"); err != nil {
		t.Fatalf("first Build() error = %v", err)
	}
	if _, err := uc.Build(context.Background(), "docs"); err != nil {
		t.Fatalf("second Build() error = %v", err)
	}
	if index.upserts != 2 {
		t.Fatalf("expected 2 upsert batches, got %d", index.upserts)
	}
	if index.Count() != 2 {
		t.Fatalf("expected re-index to replace entries in place, got %d entries", index.Count())
	}
}

func TestBuildNoDocumentsLeavesIndexUntouched(t *testing.T) {
	index := newIndexFake()
	embedder := &embedderFake{}
	uc := NewBuildIndexUseCase(&loaderFake{}, chunkerFake{}, embedder, index, testLogger())

	stats, err := uc.Build(context.Background(), "empty")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if stats != (domain.IndexStats{}) {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
	if index.upserts != 0 {
		t.Fatalf("expected no upserts, got %d", index.upserts)
	}
	if len(embedder.batches) != 0 {
		t.Fatalf("expected no embedding calls, got %d", len(embedder.batches))
	}
}

func TestBuildZeroChunksSkipsEmbedAndUpsert(t *testing.T) {
	loader := &loaderFake{docs: []domain.Document{{Source: "blank.txt", Text: ""}}}
	index := newIndexFake()
	embedder := &embedderFake{}
	uc := NewBuildIndexUseCase(loader, chunkerFake{}, embedder, index, testLogger())

	stats, err := uc.Build(context.Background(), "docs")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if stats.Chunks != 0 {
		t.Fatalf("expected zero chunks, got %d", stats.Chunks)
	}
	if index.upserts != 0 || len(embedder.batches) != 0 {
		t.Fatalf("expected pipeline to halt before embed/upsert")
	}
}

func TestBuildRejectsVectorChunkMismatch(t *testing.T) {
	loader := &loaderFake{docs: []domain.Document{{Source: "policy.txt", Text: "one|two"}}}
	index := newIndexFake()
	uc := NewBuildIndexUseCase(loader, chunkerFake{}, &embedderFake{oneShort: true}, index, testLogger())

	_, err := uc.Build(context.Background(), "docs")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput kind, got %v", err)
	}
	if index.upserts != 0 {
		t.Fatalf("expected no partial write, got %d upserts", index.upserts)
	}
}

func TestBuildLoadErrorPropagates(t *testing.T) {
	uc := NewBuildIndexUseCase(&loaderFake{err: errors.New("disk gone")}, chunkerFake{}, &embedderFake{}, newIndexFake(), testLogger())
	if _, err := uc.Build(context.Background(), "docs"); err == nil {
		t.Fatalf("expected error")
	}
}
