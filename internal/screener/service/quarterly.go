package service

import (
	"database/sql"
	"math"
	"time"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/pkg/utils"
)

type aggregation int

const (
	aggFirst aggregation = iota
	aggLast
	aggMax
	aggMin
	aggSum
)

var quarterlyAggregations = []struct {
	field dto.Field
	agg   aggregation
}{
	{dto.FieldClose, aggLast},
	{dto.FieldOpen, aggFirst},
	{dto.FieldVolume, aggSum},
	{dto.FieldHigh, aggMax},
	{dto.FieldLow, aggMin},
	{dto.FieldTurnover, aggSum},
	{dto.FieldTrades, aggSum},
}

// ResampleQuarterly aggregates a dated series into calendar quarter buckets
// dated at the quarter end, keeping the latest quarters buckets. Only
// aggregated columns survive; a bucket with any missing aggregate is dropped.
// rows must be in ascending date order.
func ResampleQuarterly(series *dto.Series, quarters int) *dto.Series {
	out := &dto.Series{
		Symbol:  series.Symbol,
		Columns: make(map[dto.Field]bool),
		HasDate: true,
	}
	for _, a := range quarterlyAggregations {
		if series.HasColumn(a.field) {
			out.Columns[a.field] = true
		}
	}

	var (
		bucket []dto.Row
		end    time.Time
	)
	flush := func() {
		if len(bucket) == 0 {
			return
		}
		if row, ok := aggregateBucket(out, end, bucket); ok {
			out.Rows = append(out.Rows, row)
		}
		bucket = bucket[:0]
	}
	for _, row := range series.Rows {
		qe := utils.QuarterEnd(row.Date)
		if !qe.Equal(end) {
			flush()
			end = qe
		}
		bucket = append(bucket, row)
	}
	flush()

	if quarters > 0 && len(out.Rows) > quarters {
		out.Rows = out.Rows[len(out.Rows)-quarters:]
	}
	return out
}

func aggregateBucket(out *dto.Series, end time.Time, rows []dto.Row) (dto.Row, bool) {
	bucket := dto.Row{Date: end}
	for _, a := range quarterlyAggregations {
		if !out.HasColumn(a.field) {
			continue
		}
		v := aggregate(rows, a.field, a.agg)
		if !v.Valid {
			return dto.Row{}, false
		}
		bucket.Set(a.field, v)
	}
	return bucket, true
}

// aggregate skips missing cells. A sum over only missing cells is 0; every
// other aggregation over only missing cells is missing.
func aggregate(rows []dto.Row, f dto.Field, agg aggregation) sql.NullFloat64 {
	var (
		result sql.NullFloat64
		sum    float64
	)
	for _, row := range rows {
		v, _ := row.Value(f)
		if !v.Valid {
			continue
		}
		switch agg {
		case aggFirst:
			if !result.Valid {
				result = v
			}
		case aggLast:
			result = v
		case aggMax:
			if !result.Valid || v.Float64 > result.Float64 {
				result = v
			}
		case aggMin:
			if !result.Valid || v.Float64 < result.Float64 {
				result = v
			}
		case aggSum:
			sum += v.Float64
		}
	}
	if agg == aggSum {
		return sql.NullFloat64{Float64: sum, Valid: !math.IsInf(sum, 0)}
	}
	return result
}
