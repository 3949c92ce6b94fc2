package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang-stock-screener/internal/screener/config"
	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/internal/screener/repository"
	"golang-stock-screener/pkg/logger"
)

// QueryTranslator escalates a query the rules could not handle to the language model.
type QueryTranslator interface {
	// Translate returns the structured query. ruleLimit back-fills the limit
	// when the model omits it. Every failure wraps ErrTranslationFailure.
	Translate(ctx context.Context, query string, ruleLimit *int) (*dto.StructuredQuery, error)
}

type queryTranslator struct {
	aiRepo    repository.AIRepository
	cacheRepo repository.TranslationCacheRepository
	opts      repository.GenerateOptions
	logger    *logger.Logger
}

// NewQueryTranslator creates a new language model backed translator.
func NewQueryTranslator(aiRepo repository.AIRepository, cacheRepo repository.TranslationCacheRepository, cfg config.Gemini, log *logger.Logger) QueryTranslator {
	return &queryTranslator{
		aiRepo:    aiRepo,
		cacheRepo: cacheRepo,
		opts: repository.GenerateOptions{
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxOutputTokens,
		},
		logger: log,
	}
}

func (t *queryTranslator) Translate(ctx context.Context, query string, ruleLimit *int) (*dto.StructuredQuery, error) {
	raw, hit := t.cached(ctx, query)
	if hit {
		translationsTotal.WithLabelValues("cache_hit").Inc()
	} else {
		text, err := t.aiRepo.GenerateText(ctx, repository.BuildTranslateQueryPrompt(query), t.opts)
		if err != nil {
			translationsTotal.WithLabelValues("failure").Inc()
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			t.logger.WarnContext(ctx, "Language model call failed", logger.ErrorField(err))
			return nil, fmt.Errorf("%w: %v", ErrTranslationFailure, err)
		}
		raw = repository.StripCodeFence(text)
	}

	q, err := ParseStructuredQuery(raw)
	if err != nil {
		translationsTotal.WithLabelValues("failure").Inc()
		t.logger.WarnContext(ctx, "Failed to parse translated query",
			logger.ErrorField(err),
			logger.StringField("response", raw))
		return nil, err
	}
	if !hit {
		translationsTotal.WithLabelValues("success").Inc()
		if err := t.cacheRepo.Set(ctx, query, raw); err != nil {
			t.logger.WarnContext(ctx, "Failed to cache translation", logger.ErrorField(err))
		}
	}

	if q.Limit == nil {
		q.Limit = ruleLimit
	}
	return q, nil
}

func (t *queryTranslator) cached(ctx context.Context, query string) (string, bool) {
	raw, ok, err := t.cacheRepo.Get(ctx, query)
	if err != nil {
		t.logger.WarnContext(ctx, "Failed to read translation cache", logger.ErrorField(err))
		return "", false
	}
	return raw, ok
}

// ParseStructuredQuery decodes model output into a structured query with
// filters and keywords back-filled to empty. Values outside the closed
// intent and operator vocabularies are rejected.
func ParseStructuredQuery(raw string) (*dto.StructuredQuery, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty response", ErrTranslationFailure)
	}
	var q dto.StructuredQuery
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranslationFailure, err)
	}
	if q.Filters == nil {
		q.Filters = []dto.Filter{}
	}
	if q.Keywords == nil {
		q.Keywords = []string{}
	}
	return &q, nil
}
