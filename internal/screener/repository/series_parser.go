package repository

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/pkg/utils"
)

// ParseSeries reads a CSV dataset. Recognised numeric columns are coerced to
// numbers with unparseable cells kept as missing; when a "date" column exists
// rows with an unparseable date are dropped and the rest are sorted ascending.
func ParseSeries(symbol string, r io.Reader) (*dto.Series, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &dto.Series{Symbol: symbol, Columns: map[dto.Field]bool{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	series := &dto.Series{Symbol: symbol, Columns: map[dto.Field]bool{}}
	fieldAt := make(map[int]dto.Field)
	dateIdx := -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if dateIdx < 0 && strings.EqualFold(name, "date") {
			dateIdx = i
			continue
		}
		if f, ok := dto.ParseField(name); ok && !series.Columns[f] {
			series.Columns[f] = true
			fieldAt[i] = f
		}
	}
	series.HasDate = dateIdx >= 0

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		var row dto.Row
		if series.HasDate {
			if dateIdx >= len(record) {
				continue
			}
			date, ok := utils.ParseDate(record[dateIdx])
			if !ok {
				continue
			}
			row.Date = date
		}
		for i, f := range fieldAt {
			if i < len(record) {
				row.Set(f, ParseNumber(record[i]))
			}
		}
		series.Rows = append(series.Rows, row)
	}

	if series.HasDate {
		sort.SliceStable(series.Rows, func(i, j int) bool {
			return series.Rows[i].Date.Before(series.Rows[j].Date)
		})
	}
	return series, nil
}

// ParseNumber coerces a cell to a number. Empty, non-numeric and non-finite
// values are reported as missing.
func ParseNumber(cell string) sql.NullFloat64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return sql.NullFloat64{}
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
