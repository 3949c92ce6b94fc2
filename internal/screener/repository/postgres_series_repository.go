package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang-stock-screener/internal/entity"
	"golang-stock-screener/internal/screener/dto"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StockPriceWriter loads parsed datasets into the relational store.
type StockPriceWriter interface {
	SaveSeries(ctx context.Context, series *dto.Series) (int, error)
}

// PostgresSeriesRepository serves datasets from the stocks and stock_prices tables.
type PostgresSeriesRepository interface {
	SeriesRepository
	StockPriceWriter
}

type postgresSeriesRepository struct {
	db        *gorm.DB
	batchSize int
}

// NewPostgresSeriesRepository creates a new GORM-based series repository.
func NewPostgresSeriesRepository(db *gorm.DB) PostgresSeriesRepository {
	return &postgresSeriesRepository{db: db, batchSize: 500}
}

func (r *postgresSeriesRepository) ListSymbols(ctx context.Context) ([]string, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Model(&entity.Stock{}).
		Order("code ASC").
		Pluck("code", &codes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stock codes: %w", err)
	}
	for i, code := range codes {
		codes[i] = strings.ToUpper(code)
	}
	return codes, nil
}

func (r *postgresSeriesRepository) LoadSeries(ctx context.Context, symbol string) (*dto.Series, error) {
	code := strings.ToUpper(symbol)

	var stock entity.Stock
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSeriesNotFound, symbol)
		}
		return nil, fmt.Errorf("failed to load stock %s: %w", symbol, err)
	}

	var prices []entity.StockPrice
	err = r.db.WithContext(ctx).
		Where("stock_code = ?", code).
		Order("date ASC").
		Find(&prices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load prices of %s: %w", symbol, err)
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSeriesNotFound, symbol)
	}

	columns, err := decodeColumns(stock.Columns)
	if err != nil {
		return nil, fmt.Errorf("invalid columns of %s: %w", symbol, err)
	}
	return seriesFromPrices(code, columns, prices), nil
}

// SaveSeries upserts the stock and every dated row of series in one
// transaction. It returns the number of rows written.
func (r *postgresSeriesRepository) SaveSeries(ctx context.Context, series *dto.Series) (int, error) {
	code := strings.ToUpper(series.Symbol)
	prices := pricesFromSeries(code, series)
	columns, err := encodeColumns(series)
	if err != nil {
		return 0, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stock := entity.Stock{Code: code, Name: code, Columns: columns}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"columns", "updated_at"}),
		}).Create(&stock).Error; err != nil {
			return fmt.Errorf("failed to upsert stock %s: %w", code, err)
		}
		if len(prices) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "stock_code"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"open", "high", "low", "close", "volume", "vwap",
				"turnover", "trades", "deliverable_pct",
			}),
		}).CreateInBatches(&prices, r.batchSize).Error
	})
	if err != nil {
		return 0, err
	}
	return len(prices), nil
}

// encodeColumns records the fields present in series, in storage order, so
// that a later load reports the same columns as the source file did.
func encodeColumns(series *dto.Series) (datatypes.JSON, error) {
	names := make([]string, 0, len(series.Columns))
	for _, f := range dto.NumericFields {
		if series.HasColumn(f) {
			names = append(names, string(f))
		}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return nil, fmt.Errorf("failed to encode columns: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// decodeColumns returns nil for stocks imported before columns were recorded.
func decodeColumns(raw datatypes.JSON) ([]dto.Field, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return nil, err
	}
	fields := make([]dto.Field, 0, len(names))
	for _, name := range names {
		if f, ok := dto.ParseField(name); ok {
			fields = append(fields, f)
		}
	}
	return fields, nil
}

// seriesFromPrices builds a series from stored rows. With no recorded
// columns, a column counts as present once any row carries a value for it.
func seriesFromPrices(code string, columns []dto.Field, prices []entity.StockPrice) *dto.Series {
	series := &dto.Series{
		Symbol:  code,
		Columns: make(map[dto.Field]bool, len(dto.NumericFields)),
		HasDate: true,
		Rows:    make([]dto.Row, 0, len(prices)),
	}
	for _, f := range columns {
		series.Columns[f] = true
	}
	for _, p := range prices {
		if !p.Date.Valid {
			continue
		}
		row := dto.Row{
			Date:        p.Date.Time,
			Open:        p.Open,
			High:        p.High,
			Low:         p.Low,
			Close:       p.Close,
			Volume:      p.Volume,
			VWAP:        p.VWAP,
			Turnover:    p.Turnover,
			Trades:      p.Trades,
			Deliverable: p.Deliverable,
		}
		if columns == nil {
			for _, f := range dto.NumericFields {
				if v, _ := row.Value(f); v.Valid {
					series.Columns[f] = true
				}
			}
		}
		series.Rows = append(series.Rows, row)
	}
	return series
}

func pricesFromSeries(code string, series *dto.Series) []entity.StockPrice {
	prices := make([]entity.StockPrice, 0, len(series.Rows))
	for _, row := range series.Rows {
		if row.Date.IsZero() {
			continue
		}
		p := entity.StockPrice{
			StockCode: code,
			Date:      sql.NullTime{Time: row.Date, Valid: true},
		}
		pick := func(f dto.Field) sql.NullFloat64 {
			if !series.HasColumn(f) {
				return sql.NullFloat64{}
			}
			v, _ := row.Value(f)
			return v
		}
		p.Open = pick(dto.FieldOpen)
		p.High = pick(dto.FieldHigh)
		p.Low = pick(dto.FieldLow)
		p.Close = pick(dto.FieldClose)
		p.Volume = pick(dto.FieldVolume)
		p.VWAP = pick(dto.FieldVWAP)
		p.Turnover = pick(dto.FieldTurnover)
		p.Trades = pick(dto.FieldTrades)
		p.Deliverable = pick(dto.FieldDeliverable)
		prices = append(prices, p)
	}
	return prices
}
