package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/coverly/policy-rag/internal/core/domain"
	"github.com/coverly/policy-rag/internal/core/ports"
)

type AnswerUseCase struct {
	retriever ports.ContextRetriever
	generator ports.AnswerGenerator
}

func NewAnswerUseCase(retriever ports.ContextRetriever, generator ports.AnswerGenerator) *AnswerUseCase {
	return &AnswerUseCase{
		retriever: retriever,
		generator: generator,
	}
}

func (uc *AnswerUseCase) Retrieve(ctx context.Context, query string, topK, rerankK int) ([]domain.RetrievedChunk, error) {
	return uc.retriever.Retrieve(ctx, query, topK, rerankK)
}

func (uc *AnswerUseCase) Answer(ctx context.Context, question string, topK, rerankK int) (*domain.Answer, error) {
	chunks, err := uc.retriever.Retrieve(ctx, question, topK, rerankK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	answerText, err := uc.generator.GenerateAnswer(ctx, question, assembleContext(chunks))
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{
		Text:    answerText,
		Sources: chunks,
	}, nil
}

// assembleContext renders the ranked chunks as source-tagged text joined by
// blank lines, in reranked order. The rendering must stay deterministic:
// the same chunks always produce the same prompt.
func assembleContext(chunks []domain.RetrievedChunk) string {
	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = fmt.Sprintf("[%s] %s", chunk.Metadata.Source, chunk.Text)
	}
	return strings.Join(parts, "\n\n")
}
