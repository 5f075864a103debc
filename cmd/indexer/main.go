package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/coverly/policy-rag/internal/bootstrap"
	"github.com/coverly/policy-rag/internal/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	docsDir := flag.String("docs", cfg.DocsDir, "path to the documents folder")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	start := time.Now()
	stats, err := app.BuildUC.Build(ctx, *docsDir)
	if err != nil {
		log.Fatalf("index build error: %v", err)
	}
	app.Metrics.ObserveBuild(stats.Documents, stats.Chunks, time.Since(start))

	log.Printf("index build finished in %s: %d documents, %d chunks, %d entries in %s",
		time.Since(start).Round(time.Millisecond),
		stats.Documents,
		stats.Chunks,
		app.Index.Count(),
		cfg.IndexDir,
	)
}
