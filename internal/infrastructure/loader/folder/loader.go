// Package folder loads .txt and .pdf documents from a flat directory.
package folder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/coverly/policy-rag/internal/core/domain"
)

type Loader struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load enumerates dir non-recursively. Files with other extensions are
// ignored; unreadable files and files with no extractable text are logged
// and skipped so one bad file never aborts the batch.
func (l *Loader) Load(ctx context.Context, dir string) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read documents dir: %w", err)
	}

	docs := make([]domain.Document, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		var text string
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt":
			text, err = readTextFile(path)
		case ".pdf":
			text, err = readPDFFile(path)
		default:
			continue
		}
		if err != nil {
			l.logger.Warn("skipping unreadable document", "file", entry.Name(), "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			l.logger.Warn("skipping document with no extractable text", "file", entry.Name())
			continue
		}

		docs = append(docs, domain.Document{
			Source: entry.Name(),
			Text:   text,
		})
	}
	return docs, nil
}

func readTextFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("file is not valid UTF-8")
	}
	return string(raw), nil
}

// readPDFFile extracts text page by page and joins pages with blank lines.
// Pages that yield no text are skipped. The parser panics on some
// malformed files, so the panic is converted to a per-file error.
func readPDFFile(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser failure: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil || strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, pageText)
	}
	return strings.Join(pages, "\n\n"), nil
}
