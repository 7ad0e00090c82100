// Package ai summarizes documents through the OpenAI chat-completion API.
// Absence of an API key disables the summarizer rather than failing callers.
package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You summarize saved web articles and notes for a personal " +
	"knowledge base. Reply with a 3-5 sentence summary followed by up to five " +
	"bullet-point key takeaways. Plain markdown, no preamble."

// maxInputChars caps how much article text is sent per request.
const maxInputChars = 24000

// Summarizer implements secondary.Summarizer via go-openai.
type Summarizer struct {
	client *openai.Client
	model  string
}

// New returns a summarizer, or a disabled one when apiKey is empty.
func New(apiKey, model string) *Summarizer {
	if apiKey == "" {
		return &Summarizer{}
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Summarizer{client: openai.NewClient(apiKey), model: model}
}

// Enabled reports whether an API key was configured.
func (s *Summarizer) Enabled() bool {
	return s.client != nil
}

// Summarize produces a short summary of text.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("summarizer is not configured (no API key)")
	}
	if len(text) > maxInputChars {
		text = text[:maxInputChars]
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarization request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarization returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
