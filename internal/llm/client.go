// Package llm wraps the local Ollama server behind its OpenAI-compatible
// chat completion endpoint.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Client talks to a local model server. The API key is a placeholder:
// Ollama ignores it but the client library requires one.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a client for the given OpenAI-compatible base URL and model.
func New(baseURL, model string) *Client {
	cfg := openai.DefaultConfig("ollama")
	cfg.BaseURL = baseURL
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: model,
	}
}

// Complete sends a system+user prompt pair and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: 0.7,
		TopP:        0.9,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateQuestions asks the model for a batch of multiple-choice questions
// on a subject and returns the raw completion for downstream extraction.
func (c *Client) GenerateQuestions(ctx context.Context, subject, difficulty string, count int) (string, error) {
	systemPrompt := "You are an exam author. You respond with a JSON array and nothing else: " +
		"no markdown fences, no prose before or after the array."

	userPrompt := fmt.Sprintf(
		`Generate exactly %d multiple-choice questions about %q at %s difficulty.
Return a JSON array where each element has these fields:
  "question": the question text,
  "options": an array of exactly 4 answer strings,
  "correctAnswer": the zero-based index of the correct option,
  "explanation": one sentence explaining the correct answer,
  "points": a positive integer point value.`,
		count, subject, difficulty,
	)

	return c.Complete(ctx, systemPrompt, userPrompt)
}

// Chat answers a free-form message. Teachers get an exam-authoring
// assistant, students a study helper that never hands out exam answers.
func (c *Client) Chat(ctx context.Context, message string, isTeacher bool) (string, error) {
	systemPrompt := "You are a study assistant for students preparing for exams. " +
		"Explain concepts clearly and concisely. Never reveal answers to exam questions."
	if isTeacher {
		systemPrompt = "You are an assistant for teachers authoring exams. " +
			"Help with question design, difficulty calibration and topic coverage."
	}
	return c.Complete(ctx, systemPrompt, message)
}
