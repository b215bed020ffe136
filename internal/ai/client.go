// Package ai implements the model-backed capabilities of the procurement
// workflow: request classification, RFP drafting and RFP review. Each
// capability owns its prompt and parses the model output as JSON, with a
// brace-matching fallback for responses wrapped in prose or markdown.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Config holds the OpenAI connection settings shared by all capabilities
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
}

// chatJSON sends a system+user prompt pair and decodes the JSON response
// into out. If the raw content does not decode, the first balanced JSON
// object embedded in it is extracted and tried instead.
func chatJSON(ctx context.Context, client *openai.Client, cfg Config, temperature float32, system, user string, out interface{}, logger *zap.Logger) error {
	req := openai.ChatCompletionRequest{
		Model:       cfg.Model,
		Temperature: temperature,
		MaxTokens:   cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), out); err == nil {
		return nil
	}

	extracted, ok := extractJSONObject(content)
	if !ok {
		logger.Error("No JSON object found in model response", zap.String("content", content))
		return fmt.Errorf("failed to parse model response as JSON")
	}
	if err := json.Unmarshal([]byte(extracted), out); err != nil {
		logger.Error("Failed to parse extracted JSON", zap.Error(err), zap.String("content", content))
		return fmt.Errorf("failed to parse model response: %w", err)
	}
	return nil
}

// extractJSONObject returns the first balanced top-level JSON object in
// content. Brace counting skips braces inside string literals.
func extractJSONObject(content string) (string, bool) {
	start := -1
	for i := 0; i < len(content); i++ {
		if content[i] == '{' {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(content); i++ {
		c := content[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return content[start : i+1], true
			}
		}
	}

	return "", false
}
