package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/internal/screener/repository"
	"golang-stock-screener/pkg/common"
	"golang-stock-screener/pkg/logger"
)

// ChatService runs the natural language screening pipeline.
type ChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	ListSymbols(ctx context.Context) (*dto.SymbolsResponse, error)
}

// ChatDependencies groups the pipeline stages injected into the chat service.
type ChatDependencies struct {
	SmallTalk  SmallTalkService
	Extractor  QueryExtractor
	Translator QueryTranslator
	Resolver   SymbolResolver
	Screener   Screener
	Ranker     Ranker
	SeriesRepo repository.SeriesRepository
}

type chatService struct {
	deps   ChatDependencies
	logger *logger.Logger
}

// NewChatService creates a new chat service.
func NewChatService(deps ChatDependencies, log *logger.Logger) ChatService {
	return &chatService{deps: deps, logger: log}
}

func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	resp, err := s.chat(ctx, req)
	chatRequestsTotal.WithLabelValues(outcome(resp, err)).Inc()
	return resp, err
}

func (s *chatService) chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	query := strings.TrimSpace(req.Text())
	if query == "" {
		return nil, ErrEmptyQuery
	}

	if reply, ok := s.deps.SmallTalk.Reply(query); ok {
		return smallTalkResponse(query, reply), nil
	}

	parsed, matched := s.deps.Extractor.Extract(query)
	if !matched {
		translated, err := s.deps.Translator.Translate(ctx, query, parsed.Limit)
		if err != nil {
			return nil, err
		}
		parsed = *translated
	}
	if parsed.Ignore {
		return smallTalkResponse(query, s.deps.SmallTalk.Greeting()), nil
	}

	quarters := parsed.Quarters
	if req.Quarters != nil && *req.Quarters > 0 {
		quarters = req.Quarters
	}

	resolution, err := s.deps.Resolver.Resolve(ctx, parsed.Keywords)
	if err != nil {
		return nil, err
	}
	if resolution.Empty() {
		return nil, &NoSymbolsFoundError{Keywords: parsed.Keywords}
	}

	results, err := s.deps.Screener.Screen(ctx, parsed.Filters, resolution, quarters)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	total := len(results)
	ranked, err := s.deps.Ranker.Rank(results, parsed.Intent, parsed.Limit)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Query screened",
		logger.StringField("intent", string(parsed.Intent)),
		logger.IntField("symbols", len(resolution.Symbols)),
		logger.IntField("total", total),
		logger.IntField("returned", len(ranked)))

	return &dto.ChatResponse{
		Message:       BuildResultMessage(len(ranked), parsed.Intent, quarters),
		Query:         query,
		Intent:        parsed.Intent,
		Quarters:      quarters,
		Limit:         parsed.Limit,
		Data:          ranked,
		Count:         len(ranked),
		TotalUniverse: total,
	}, nil
}

func (s *chatService) ListSymbols(ctx context.Context) (*dto.SymbolsResponse, error) {
	symbols, err := s.deps.SeriesRepo.ListSymbols(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	return &dto.SymbolsResponse{Symbols: symbols, Count: len(symbols)}, nil
}

// BuildResultMessage renders "Found 3 high price stocks over the last 4 quarters."
func BuildResultMessage(count int, intent dto.Intent, quarters *int) string {
	period := "current"
	if quarters != nil && *quarters > 0 {
		period = fmt.Sprintf("over the last %d quarters", *quarters)
	}
	return fmt.Sprintf("Found %d %s stocks %s.", count, intent.Label(), period)
}

// NotFoundMessage renders the answer for keywords that resolved to nothing.
func NotFoundMessage(keywords []string) string {
	return fmt.Sprintf("I couldn't find data for '%s'.", strings.Join(keywords, ", "))
}

const (
	NoResultsMessage     = "No stocks matched your criteria for the selected period."
	NotUnderstoodMessage = "Sorry, I couldn't understand that query. Try something like \"top 5 expensive stocks\"."
)

func smallTalkResponse(query, reply string) *dto.ChatResponse {
	return &dto.ChatResponse{
		Message: reply,
		Query:   query,
		Status:  common.StatusSmallTalk,
		Data:    []dto.ScreenerResult{},
	}
}

func outcome(resp *dto.ChatResponse, err error) string {
	var notFound *NoSymbolsFoundError
	switch {
	case err == nil && resp != nil && resp.Status != "":
		return resp.Status
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyQuery):
		return "empty_query"
	case errors.Is(err, ErrTranslationFailure):
		return common.StatusNotUnderstood
	case errors.As(err, &notFound):
		return common.StatusNotFound
	case errors.Is(err, ErrNoResults):
		return common.StatusNoResults
	}
	return "error"
}
