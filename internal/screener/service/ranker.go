package service

import (
	"fmt"
	"math"
	"sort"

	"golang-stock-screener/internal/screener/dto"
)

// Ranker orders screener results by intent and applies the result limit.
type Ranker interface {
	Rank(results []dto.ScreenerResult, intent dto.Intent, limit *int) ([]dto.ScreenerResult, error)
}

type ranker struct {
	defaultLimit int
}

// NewRanker creates a new ranker. defaultLimit applies when a query names no
// count; 0 keeps every result.
func NewRanker(defaultLimit int) Ranker {
	return &ranker{defaultLimit: defaultLimit}
}

type rankOrder struct {
	key  func(r *dto.ScreenerResult) float64
	desc bool
}

// orderFor returns nil for intents that keep the screener order.
func orderFor(intent dto.Intent) (*rankOrder, error) {
	switch intent {
	case dto.IntentHighPrice:
		return &rankOrder{key: fieldKey(dto.FieldClose), desc: true}, nil
	case dto.IntentLowPrice:
		return &rankOrder{key: fieldKey(dto.FieldClose)}, nil
	case dto.IntentHighVolume:
		return &rankOrder{key: integerKey(dto.FieldVolume), desc: true}, nil
	case dto.IntentLowVolume:
		return &rankOrder{key: integerKey(dto.FieldVolume)}, nil
	case dto.IntentHighDelivery:
		return &rankOrder{key: fieldKey(dto.FieldDeliverable), desc: true}, nil
	case dto.IntentHighTurnover:
		return &rankOrder{key: fieldKey(dto.FieldTurnover), desc: true}, nil
	case dto.IntentHighTrades:
		return &rankOrder{key: integerKey(dto.FieldTrades), desc: true}, nil
	case dto.IntentVolatility, dto.IntentRelatedStocks, dto.IntentNone:
		return nil, nil
	}
	return nil, fmt.Errorf("no ranking defined for intent %q", intent)
}

func fieldKey(f dto.Field) func(r *dto.ScreenerResult) float64 {
	return func(r *dto.ScreenerResult) float64 {
		return r.Number(f)
	}
}

func integerKey(f dto.Field) func(r *dto.ScreenerResult) float64 {
	return func(r *dto.ScreenerResult) float64 {
		return math.Trunc(r.Number(f))
	}
}

func (rk *ranker) Rank(results []dto.ScreenerResult, intent dto.Intent, limit *int) ([]dto.ScreenerResult, error) {
	order, err := orderFor(intent)
	if err != nil {
		return nil, err
	}

	ranked := make([]dto.ScreenerResult, len(results))
	copy(ranked, results)
	if order != nil {
		sort.SliceStable(ranked, func(i, j int) bool {
			a, b := order.key(&ranked[i]), order.key(&ranked[j])
			if order.desc {
				return a > b
			}
			return a < b
		})
	}

	n := rk.defaultLimit
	if limit != nil && *limit > 0 {
		n = *limit
	}
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked, nil
}
