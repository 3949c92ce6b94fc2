package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-screener/internal/screener/config"
	"golang-stock-screener/pkg/logger"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ErrEmptyModelResponse is returned when the model answers without text.
var ErrEmptyModelResponse = errors.New("empty response from model")

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// geminiAIRepository is an implementation of AIRepository that uses the Google Gemini API.
type geminiAIRepository struct {
	models         contentGenerator
	cfg            config.Gemini
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg config.Gemini, log *logger.Logger, genAiClient *genai.Client) AIRepository {
	return newGeminiAIRepository(cfg, log, genAiClient.Models)
}

func newGeminiAIRepository(cfg config.Gemini, log *logger.Logger, models contentGenerator) *geminiAIRepository {
	rpm := cfg.MaxRequestPerMinute
	if rpm <= 0 {
		rpm = 60
	}
	secondsPerRequest := time.Minute / time.Duration(rpm)

	return &geminiAIRepository{
		models:         models,
		cfg:            cfg,
		logger:         log,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// GenerateText sends prompt to the configured model and returns its text.
func (r *geminiAIRepository) GenerateText(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: int32(opts.MaxOutputTokens),
	}
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	start := time.Now()
	resp, err := r.models.GenerateContent(ctx, r.cfg.Model, contents, genCfg)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to generate content from Gemini API",
			logger.ErrorField(err),
			logger.StringField("model", r.cfg.Model))
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	r.logger.DebugContext(ctx, "Gemini response received",
		logger.StringField("model", r.cfg.Model),
		logger.Field("latency", time.Since(start)),
		logger.IntField("response_length", len(text)))
	if text == "" {
		return "", ErrEmptyModelResponse
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text += part.Text
		}
	}
	return text
}
