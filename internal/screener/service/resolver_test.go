package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func universe(symbols ...string) *fakeSeriesRepository {
	repo := newFakeSeriesRepository()
	for _, s := range symbols {
		repo.series[s] = priceSeries(s)
	}
	return repo
}

func TestSymbolResolver_GenericKeywordsMeanAll(t *testing.T) {
	resolver := NewSymbolResolver(universe("AXISBANK", "INFY", "TCS"))

	for _, keywords := range [][]string{nil, {}, {"stocks", "ALL", "nse"}} {
		res, err := resolver.Resolve(context.Background(), keywords)
		require.NoError(t, err)
		assert.True(t, res.All)
		assert.Equal(t, []string{"AXISBANK", "INFY", "TCS"}, res.Symbols)
	}
}

func TestSymbolResolver_SubstringMatch(t *testing.T) {
	resolver := NewSymbolResolver(universe("AXISBANK", "HDFCBANK", "INFY", "TCS"))

	res, err := resolver.Resolve(context.Background(), []string{"Bank", "axis"})
	require.NoError(t, err)
	assert.False(t, res.All)
	assert.ElementsMatch(t, []string{"AXISBANK", "HDFCBANK"}, res.Symbols)
}

func TestSymbolResolver_NoMatchIsEmptyNotAll(t *testing.T) {
	resolver := NewSymbolResolver(universe("INFY", "TCS"))

	res, err := resolver.Resolve(context.Background(), []string{"wipro"})
	require.NoError(t, err)
	assert.False(t, res.All)
	assert.Empty(t, res.Symbols)
	assert.True(t, res.Empty())
}

func TestSymbolResolver_Idempotent(t *testing.T) {
	resolver := NewSymbolResolver(universe("AXISBANK", "HDFCBANK", "INFY", "TCS"))
	keywords := []string{"bank", "infy", "bank"}

	first, err := resolver.Resolve(context.Background(), keywords)
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), keywords)
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Symbols, second.Symbols)
	assert.Len(t, first.Symbols, 3)
}
