package service

import (
	"testing"

	"golang-stock-screener/internal/screener/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(symbol string, close, volume, turnover, trades, delivery *float64) dto.ScreenerResult {
	return dto.ScreenerResult{
		Symbol:      symbol,
		Close:       close,
		Volume:      volume,
		Turnover:    turnover,
		Trades:      trades,
		Deliverable: delivery,
	}
}

func rankFixture() []dto.ScreenerResult {
	p := dto.Float64Ptr
	return []dto.ScreenerResult{
		result("A", p(300), p(10.9), p(5), p(7.2), p(0.3)),
		result("B", p(500), p(10.1), nil, p(9), p(0.9)),
		result("C", nil, p(30), p(50), p(1), nil),
		result("D", p(100), nil, p(20), nil, p(0.5)),
	}
}

func TestOrderFor_CoversEveryIntent(t *testing.T) {
	for _, intent := range append([]dto.Intent{dto.IntentNone}, dto.AllIntents...) {
		_, err := orderFor(intent)
		assert.NoError(t, err, intent)
	}
	_, err := orderFor(dto.Intent("bogus"))
	assert.Error(t, err)
}

func TestRanker_Rank(t *testing.T) {
	tests := []struct {
		intent dto.Intent
		want   []string
	}{
		{dto.IntentHighPrice, []string{"B", "A", "D", "C"}},
		{dto.IntentLowPrice, []string{"C", "D", "A", "B"}},
		// 10.9 and 10.1 both rank as 10 and keep their order.
		{dto.IntentHighVolume, []string{"C", "A", "B", "D"}},
		{dto.IntentLowVolume, []string{"D", "A", "B", "C"}},
		{dto.IntentHighDelivery, []string{"B", "D", "A", "C"}},
		{dto.IntentHighTurnover, []string{"C", "D", "A", "B"}},
		{dto.IntentHighTrades, []string{"B", "A", "C", "D"}},
		{dto.IntentVolatility, []string{"A", "B", "C", "D"}},
		{dto.IntentRelatedStocks, []string{"A", "B", "C", "D"}},
		{dto.IntentNone, []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.intent), func(t *testing.T) {
			ranked, err := NewRanker(0).Rank(rankFixture(), tt.intent, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, symbolsOf(ranked))
		})
	}
}

func TestRanker_Limit(t *testing.T) {
	ranked, err := NewRanker(0).Rank(rankFixture(), dto.IntentHighPrice, dto.IntPtr(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, symbolsOf(ranked))

	ranked, err = NewRanker(0).Rank(rankFixture(), dto.IntentHighPrice, dto.IntPtr(10))
	require.NoError(t, err)
	assert.Len(t, ranked, 4)

	ranked, err = NewRanker(3).Rank(rankFixture(), dto.IntentNone, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, symbolsOf(ranked))

	ranked, err = NewRanker(3).Rank(rankFixture(), dto.IntentNone, dto.IntPtr(0))
	require.NoError(t, err)
	assert.Len(t, ranked, 3, "non-positive limit falls back to the default")
}

func TestRanker_DoesNotModifyInput(t *testing.T) {
	in := rankFixture()
	_, err := NewRanker(1).Rank(in, dto.IntentHighPrice, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, symbolsOf(in))
}
