package repository

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"golang-stock-screener/internal/entity"
	"golang-stock-screener/internal/screener/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestPostgresSeries_ColumnsMatchSourceFile(t *testing.T) {
	// VWAP is in the header but empty on every row.
	data := "Date,Open,High,Low,Close,Volume,VWAP\n" +
		"2024-01-02,1,2,1,2,10,\n" +
		"2024-01-01,1,1,1,1,5,\n"
	parsed, err := ParseSeries("INFY", strings.NewReader(data))
	require.NoError(t, err)
	require.True(t, parsed.HasColumn(dto.FieldVWAP))

	raw, err := encodeColumns(parsed)
	require.NoError(t, err)
	assert.JSONEq(t, `["open","high","low","close","volume","vwap"]`, string(raw))

	columns, err := decodeColumns(raw)
	require.NoError(t, err)

	prices := pricesFromSeries("INFY", parsed)
	require.Len(t, prices, 2)
	assert.False(t, prices[0].VWAP.Valid)

	loaded := seriesFromPrices("INFY", columns, prices)
	assert.Equal(t, parsed.Columns, loaded.Columns)
	assert.True(t, loaded.HasColumn(dto.FieldVWAP))
	assert.False(t, loaded.HasColumn(dto.FieldTurnover))
	require.Len(t, loaded.Rows, 2)
	assert.Equal(t, parsed.Rows[1].Close, loaded.Rows[1].Close)
}

func TestPostgresSeries_UnrecordedColumnsFallBackToValues(t *testing.T) {
	columns, err := decodeColumns(datatypes.JSON(nil))
	require.NoError(t, err)
	assert.Nil(t, columns)

	prices := []entity.StockPrice{
		{
			StockCode: "TCS",
			Date:      sql.NullTime{Time: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Valid: true},
			Close:     sql.NullFloat64{Float64: 10, Valid: true},
		},
		{StockCode: "TCS"},
	}
	loaded := seriesFromPrices("TCS", columns, prices)
	assert.True(t, loaded.HasColumn(dto.FieldClose))
	assert.False(t, loaded.HasColumn(dto.FieldVWAP))
	assert.Len(t, loaded.Rows, 1)
}

func TestDecodeColumns_SkipsUnknownNames(t *testing.T) {
	columns, err := decodeColumns(datatypes.JSON(`["close","Series","%deliverble"]`))
	require.NoError(t, err)
	assert.Equal(t, []dto.Field{dto.FieldClose, dto.FieldDeliverable}, columns)

	_, err = decodeColumns(datatypes.JSON(`{`))
	assert.Error(t, err)
}
