package dto

import (
	"database/sql"
)

// ScreenerResult is one emitted row, either a raw row or a quarterly bucket,
// tagged with its symbol. Missing values are omitted from JSON.
type ScreenerResult struct {
	Symbol      string   `json:"symbol"`
	Date        string   `json:"date,omitempty"`
	Open        *float64 `json:"open,omitempty"`
	High        *float64 `json:"high,omitempty"`
	Low         *float64 `json:"low,omitempty"`
	Close       *float64 `json:"close,omitempty"`
	Volume      *float64 `json:"volume,omitempty"`
	VWAP        *float64 `json:"vwap,omitempty"`
	Turnover    *float64 `json:"turnover,omitempty"`
	Trades      *float64 `json:"trades,omitempty"`
	Deliverable *float64 `json:"%deliverble,omitempty"`
}

// Number returns the value of f, or 0 when it is missing or unknown.
func (r *ScreenerResult) Number(f Field) float64 {
	var p *float64
	switch f {
	case FieldOpen:
		p = r.Open
	case FieldHigh:
		p = r.High
	case FieldLow:
		p = r.Low
	case FieldClose:
		p = r.Close
	case FieldVolume:
		p = r.Volume
	case FieldVWAP:
		p = r.VWAP
	case FieldTurnover:
		p = r.Turnover
	case FieldTrades:
		p = r.Trades
	case FieldDeliverable:
		p = r.Deliverable
	}
	if p == nil {
		return 0
	}
	return *p
}

// NewScreenerResult converts a row of series into a result. Columns absent
// from the series stay nil.
func NewScreenerResult(symbol string, series *Series, row Row) ScreenerResult {
	res := ScreenerResult{Symbol: symbol}
	pick := func(f Field) *float64 {
		if !series.HasColumn(f) {
			return nil
		}
		v, _ := row.Value(f)
		return nullablePtr(v)
	}
	res.Open = pick(FieldOpen)
	res.High = pick(FieldHigh)
	res.Low = pick(FieldLow)
	res.Close = pick(FieldClose)
	res.Volume = pick(FieldVolume)
	res.VWAP = pick(FieldVWAP)
	res.Turnover = pick(FieldTurnover)
	res.Trades = pick(FieldTrades)
	res.Deliverable = pick(FieldDeliverable)
	return res
}

func nullablePtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// Float64Ptr is a small helper for building results in tests and defaults.
func Float64Ptr(v float64) *float64 {
	return &v
}
