package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/coverly/policy-rag/internal/bootstrap"
	"github.com/coverly/policy-rag/internal/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	question := flag.String("question", "", "single question; omit for interactive mode")
	topK := flag.Int("top-k", cfg.RetrieveTopK, "ANN candidates pulled before reranking")
	rerankK := flag.Int("rerank-k", cfg.RerankTopK, "context chunks kept after reranking")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", app.Metrics.Handler())
	metricsServer := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: mux}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	ask := func(q string) {
		start := time.Now()
		answer, err := app.QueryUC.Answer(ctx, q, *topK, *rerankK)
		if err != nil {
			log.Printf("query error: %v", err)
			return
		}
		app.Metrics.ObserveRetrieval(len(answer.Sources), time.Since(start))

		fmt.Println(answer.Text)
		for _, src := range answer.Sources {
			fmt.Printf("  [%s#%d] score=%.3f\n", src.Metadata.Source, src.Metadata.ChunkIndex, src.Score)
		}
	}

	if *question != "" {
		ask(*question)
		return
	}

	fmt.Printf("policy-rag: %d entries indexed, ask away (ctrl-d to quit)\n", app.Index.Count())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		q := strings.TrimSpace(scanner.Text())
		if q == "" {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		ask(q)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("read input: %v", err)
	}
}
