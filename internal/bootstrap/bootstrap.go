// Package bootstrap constructs every capability once at startup and
// injects it into the pipelines. Nothing here is a hidden global; the
// entry points own the lifecycle.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/coverly/policy-rag/internal/config"
	"github.com/coverly/policy-rag/internal/core/ports"
	"github.com/coverly/policy-rag/internal/core/usecase"
	"github.com/coverly/policy-rag/internal/infrastructure/chunking"
	"github.com/coverly/policy-rag/internal/infrastructure/llm/ollama"
	"github.com/coverly/policy-rag/internal/infrastructure/loader/folder"
	"github.com/coverly/policy-rag/internal/infrastructure/rerank/tei"
	"github.com/coverly/policy-rag/internal/infrastructure/resilience"
	"github.com/coverly/policy-rag/internal/infrastructure/vector/chromem"
	"github.com/coverly/policy-rag/internal/observability/logging"
	"github.com/coverly/policy-rag/internal/observability/metrics"
)

const serviceName = "policy-rag"

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Metrics *metrics.PipelineMetrics

	Index   ports.VectorIndex
	BuildUC ports.IndexBuilder
	QueryUC ports.QueryService
}

func New(cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)

	codec, err := chunking.NewTiktokenCodec(cfg.TokenEncoding)
	if err != nil {
		return nil, fmt.Errorf("init token codec: %w", err)
	}
	splitter := chunking.NewTokenSplitter(codec, cfg.ChunkTokens)

	executorCfg := resilience.DefaultConfig()
	executorCfg.RatePerSecond = cfg.ModelRateRPS
	executor := resilience.NewExecutor(executorCfg)

	ollamaClient := ollama.New(cfg.OllamaURL, cfg.OllamaGenModel, cfg.OllamaEmbedModel, executor)
	embedder := ollama.NewEmbedder(ollamaClient)
	generator := ollama.NewGenerator(ollamaClient)
	reranker := tei.New(cfg.RerankURL, executor)

	index, err := chromem.New(cfg.IndexDir, cfg.Collection, cfg.EmbedDim)
	if err != nil {
		return nil, fmt.Errorf("init vector index: %w", err)
	}

	loader := folder.New(logger)
	buildUC := usecase.NewBuildIndexUseCase(loader, splitter, embedder, index, logger)
	retrieveUC := usecase.NewRetrieveUseCase(embedder, index, reranker, logger)
	answerUC := usecase.NewAnswerUseCase(retrieveUC, generator)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics.NewPipelineMetrics(serviceName),
		Index:   index,
		BuildUC: buildUC,
		QueryUC: answerUC,
	}, nil
}
