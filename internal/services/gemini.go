package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"skillpath-backend/internal/logger"
)

type GeminiService struct {
	client    *genai.Client
	modelName string
	maxTokens int
	gate      *rateGate
	log       *logger.Logger
}

func NewGeminiService(ctx context.Context, apiKey, modelName string, maxTokens, concurrentReqs int, log *logger.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiService{
		client:    client,
		modelName: modelName,
		maxTokens: maxTokens,
		gate:      newRateGate(concurrentReqs),
		log:       log.With("provider", "gemini", "model", modelName),
	}, nil
}

func (s *GeminiService) Close() {
	s.client.Close()
}

func (s *GeminiService) Provider() string { return "gemini" }

func (s *GeminiService) Model() string { return s.modelName }

func (s *GeminiService) Generate(ctx context.Context, system, user string) (string, error) {
	if err := s.gate.acquire(ctx); err != nil {
		return "", err
	}
	defer s.gate.release()

	// A model handle per call: SystemInstruction is a plain field.
	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(generationTemperature)
	model.SetTopP(generationTopP)
	model.SetMaxOutputTokens(int32(s.maxTokens))
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	resp, err := model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	for i, cand := range resp.Candidates {
		s.log.Debug("candidate finished", "index", i, "finish_reason", cand.FinishReason.String(), "tokens", cand.TokenCount)
		if cand.FinishReason != genai.FinishReasonStop {
			s.log.Warn("gemini stopped early", "finish_reason", cand.FinishReason.String())
		}
	}

	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}
