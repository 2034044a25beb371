// Package evaluator talks to the model that generates learning modules and
// grades learner answers. A mock mode covers local development and tests
// without API credits.
package evaluator

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/skillloop/backend/internal/models"
)

type Service struct {
	llm     LLMClient
	useMock bool
}

// NewService builds the evaluator from the environment: MOCK_EVALUATOR=true
// selects the offline mock, otherwise the Anthropic API is used with
// ANTHROPIC_MODEL (falling back to a default model).
func NewService() *Service {
	if os.Getenv("MOCK_EVALUATOR") == "true" {
		log.Println("Evaluator using mock data")
		return &Service{useMock: true}
	}

	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	log.Println("Evaluator using Anthropic API:", model)
	return &Service{llm: NewAPIClient(model)}
}

// NewServiceWithClient wires an explicit client. Used by tests.
func NewServiceWithClient(llm LLMClient) *Service {
	return &Service{llm: llm}
}

// ExtractTopicAndLevel pulls the learning topic and skill level out of a
// free-form request message.
func (s *Service) ExtractTopicAndLevel(ctx context.Context, message string) (*Extraction, error) {
	if s.useMock {
		return mockExtract(message), nil
	}

	raw, err := s.llm.Complete(ctx, CompletionRequest{
		SystemPrompt: extractionSystemPrompt(),
		UserPrompt:   extractionUserPrompt(message),
		MaxTokens:    extractionMaxTokens,
		Temperature:  extractionTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("topic extraction: %w", err)
	}
	return ParseExtraction(raw)
}

// GenerateModule produces a complete module with the requested number of
// exercises for the topic and level.
func (s *Service) GenerateModule(ctx context.Context, topic string, skillLevel models.SkillLevel, exerciseCount int) (*GeneratedModule, error) {
	if s.useMock {
		return mockModule(topic, exerciseCount), nil
	}

	raw, err := s.llm.Complete(ctx, CompletionRequest{
		SystemPrompt: generationSystemPrompt(),
		UserPrompt:   generationUserPrompt(topic, skillLevel, exerciseCount),
		MaxTokens:    generationMaxTokens,
		Temperature:  generationTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("module generation: %w", err)
	}
	return ParseModule(raw, exerciseCount)
}

// EvaluateAnswer grades a submitted answer against the exercise's
// validation criteria.
func (s *Service) EvaluateAnswer(ctx context.Context, exercise models.Exercise, answerText string, hintsUsed int) (*Evaluation, error) {
	if s.useMock {
		return mockEvaluate(exercise, answerText, hintsUsed), nil
	}

	raw, err := s.llm.Complete(ctx, CompletionRequest{
		SystemPrompt: evaluationSystemPrompt(),
		UserPrompt:   evaluationUserPrompt(exercise, answerText, hintsUsed),
		MaxTokens:    evaluationMaxTokens,
		Temperature:  evaluationTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("answer evaluation: %w", err)
	}
	return ParseEvaluation(raw)
}
