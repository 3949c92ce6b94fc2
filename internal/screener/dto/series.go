package dto

import (
	"database/sql"
	"time"
)

// Row is one observation of a symbol. Invalid NullFloat64 values mark
// missing or unparseable cells.
type Row struct {
	Date        time.Time
	Open        sql.NullFloat64
	High        sql.NullFloat64
	Low         sql.NullFloat64
	Close       sql.NullFloat64
	Volume      sql.NullFloat64
	VWAP        sql.NullFloat64
	Turnover    sql.NullFloat64
	Trades      sql.NullFloat64
	Deliverable sql.NullFloat64
}

// Value returns the cell for f. The second result is false for an unknown field.
func (r *Row) Value(f Field) (sql.NullFloat64, bool) {
	switch f {
	case FieldOpen:
		return r.Open, true
	case FieldHigh:
		return r.High, true
	case FieldLow:
		return r.Low, true
	case FieldClose:
		return r.Close, true
	case FieldVolume:
		return r.Volume, true
	case FieldVWAP:
		return r.VWAP, true
	case FieldTurnover:
		return r.Turnover, true
	case FieldTrades:
		return r.Trades, true
	case FieldDeliverable:
		return r.Deliverable, true
	}
	return sql.NullFloat64{}, false
}

// Set stores v in the cell for f. Unknown fields are ignored.
func (r *Row) Set(f Field, v sql.NullFloat64) {
	switch f {
	case FieldOpen:
		r.Open = v
	case FieldHigh:
		r.High = v
	case FieldLow:
		r.Low = v
	case FieldClose:
		r.Close = v
	case FieldVolume:
		r.Volume = v
	case FieldVWAP:
		r.VWAP = v
	case FieldTurnover:
		r.Turnover = v
	case FieldTrades:
		r.Trades = v
	case FieldDeliverable:
		r.Deliverable = v
	}
}

// Series is the full dataset of one symbol.
type Series struct {
	Symbol string
	// Columns holds the numeric fields present in the source.
	Columns map[Field]bool
	// HasDate is false when the source had no date column; Row.Date is then zero.
	HasDate bool
	Rows    []Row
}

// HasColumn reports whether f was present in the source.
func (s *Series) HasColumn(f Field) bool {
	return s.Columns[f]
}

// Clone returns a copy whose rows may be modified without touching s.
func (s *Series) Clone() *Series {
	columns := make(map[Field]bool, len(s.Columns))
	for f, ok := range s.Columns {
		columns[f] = ok
	}
	rows := make([]Row, len(s.Rows))
	copy(rows, s.Rows)
	return &Series{
		Symbol:  s.Symbol,
		Columns: columns,
		HasDate: s.HasDate,
		Rows:    rows,
	}
}
