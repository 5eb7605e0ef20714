package services

import (
	"context"
	"errors"
	"fmt"

	"smartbiz/internal/models"

	"github.com/go-deepseek/deepseek"
	"github.com/go-deepseek/deepseek/request"
)

// CompletionService is a thin wrapper over the hosted language-completion
// endpoint. It carries no state beyond the client; prompts are built here
// so handlers stay ignorant of the provider.
type CompletionService struct {
	client deepseek.Client
	model  string
}

func NewCompletionService(apiKey string) (*CompletionService, error) {
	client, err := deepseek.NewClient(apiKey)
	if err != nil {
		return nil, fmt.Errorf("services: create completion client: %w", err)
	}
	return &CompletionService{
		client: client,
		model:  "deepseek-chat",
	}, nil
}

// Summarize produces a summary of the text. Contract documents get a
// prompt that highlights clauses, risks and obligations.
func (s *CompletionService) Summarize(ctx context.Context, text string, kind models.DocumentKind) (string, error) {
	var prompt string
	if kind == models.DocumentContract {
		prompt = fmt.Sprintf("Summarize this contract and highlight key clauses, risks, and obligations:\n%s", text)
	} else {
		prompt = fmt.Sprintf("Summarize this document:\n%s", text)
	}
	return s.chat(ctx, prompt)
}

// Answer responds to a question grounded in the document text.
func (s *CompletionService) Answer(ctx context.Context, text, question string) (string, error) {
	prompt := fmt.Sprintf("Based on the document below, answer the question:\n\n%s\n\nQuestion: %s", text, question)
	return s.chat(ctx, prompt)
}

func (s *CompletionService) chat(ctx context.Context, prompt string) (string, error) {
	req := &request.ChatCompletionsRequest{
		Model: s.model,
		Messages: []*request.Message{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}

	resp, err := s.client.CallChatCompletionsChat(ctx, req)
	if err != nil {
		return "", fmt.Errorf("services: completion request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("services: completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
