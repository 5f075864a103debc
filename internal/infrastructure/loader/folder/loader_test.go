package folder

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadReadsTextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "policy.txt", "Knee surgery waits 24 months.")
	writeFile(t, dir, "terms.txt", "Cataracts wait 2 years.")

	docs, err := New(testLogger()).Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	bySource := map[string]string{}
	for _, doc := range docs {
		bySource[doc.Source] = doc.Text
	}
	if bySource["policy.txt"] != "Knee surgery waits 24 months." {
		t.Fatalf("unexpected content: %q", bySource["policy.txt"])
	}
}

func TestLoadIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "not a policy")
	writeFile(t, dir, "notes.docx", "binary-ish")
	writeFile(t, dir, "policy.txt", "covered")

	docs, err := New(testLogger()).Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Source != "policy.txt" {
		t.Fatalf("expected only policy.txt, got %+v", docs)
	}
}

func TestLoadSkipsBadFilesWithoutAborting(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.txt", "   \n\t")
	writeFile(t, dir, "binary.txt", string([]byte{0xff, 0xfe, 0xfd}))
	writeFile(t, dir, "junk.pdf", "this is not a pdf")
	writeFile(t, dir, "good.txt", "actual policy text")

	docs, err := New(testLogger()).Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Source != "good.txt" {
		t.Fatalf("expected only good.txt to survive, got %+v", docs)
	}
}

func TestLoadIgnoresSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, sub, "hidden.txt", "should not load")
	writeFile(t, dir, "top.txt", "should load")

	docs, err := New(testLogger()).Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(docs) != 1 || docs[0].Source != "top.txt" {
		t.Fatalf("expected only top-level file, got %+v", docs)
	}
}

func TestLoadMissingDirErrors(t *testing.T) {
	_, err := New(testLogger()).Load(context.Background(), filepath.Join(t.TempDir(), "absent"))
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestLoadHonoursContextCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "policy.txt", "text")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(testLogger()).Load(ctx, dir); err == nil {
		t.Fatalf("expected context error")
	}
}
