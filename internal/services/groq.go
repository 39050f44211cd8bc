package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"skillpath-backend/internal/logger"
)

// GroqService talks to Groq through its OpenAI compatible endpoint.
type GroqService struct {
	client    *openai.Client
	model     string
	maxTokens int
	gate      *rateGate
	log       *logger.Logger
}

func NewGroqService(apiKey, baseURL, model string, maxTokens, concurrentReqs int, log *logger.Logger) *GroqService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &GroqService{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
		gate:      newRateGate(concurrentReqs),
		log:       log.With("provider", "groq", "model", model),
	}
}

func (s *GroqService) Provider() string { return "groq" }

func (s *GroqService) Model() string { return s.model }

func (s *GroqService) Generate(ctx context.Context, system, user string) (string, error) {
	if err := s.gate.acquire(ctx); err != nil {
		return "", err
	}
	defer s.gate.release()

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: generationTemperature,
		TopP:        generationTopP,
		MaxTokens:   s.maxTokens,
	}

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("groq chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("llm returned no choices")
	}

	choice := resp.Choices[0]
	s.log.Debug("completion finished",
		"finish_reason", choice.FinishReason,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)
	if choice.FinishReason == openai.FinishReasonLength {
		s.log.Warn("completion truncated at max tokens", "max_tokens", s.maxTokens)
	}

	return choice.Message.Content, nil
}
