package repository

import (
	"context"
	"strings"
)

// GenerateOptions tunes a single text generation call.
type GenerateOptions struct {
	Temperature     float32
	MaxOutputTokens int
}

// AIRepository is the language model boundary. It returns the raw model text.
type AIRepository interface {
	GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// StripCodeFence removes markdown code fences a model may wrap JSON in.
func StripCodeFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```JSON")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

type unavailableAIRepository struct {
	err error
}

// NewUnavailableAIRepository is used when no model client could be built.
// Every call fails with err, so only rule-matched queries are answered.
func NewUnavailableAIRepository(err error) AIRepository {
	return unavailableAIRepository{err: err}
}

func (r unavailableAIRepository) GenerateText(context.Context, string, GenerateOptions) (string, error) {
	return "", r.err
}
