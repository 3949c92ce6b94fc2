package entity

import (
	"database/sql"
	"time"
)

// StockPrice is one daily row of a symbol. Nullable columns keep the
// difference between a missing cell and zero.
type StockPrice struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	StockCode   string          `gorm:"not null;uniqueIndex:idx_stock_prices_code_date" json:"stock_code"`
	Date        sql.NullTime    `gorm:"type:date;uniqueIndex:idx_stock_prices_code_date" json:"date"`
	Open        sql.NullFloat64 `json:"open"`
	High        sql.NullFloat64 `json:"high"`
	Low         sql.NullFloat64 `json:"low"`
	Close       sql.NullFloat64 `json:"close"`
	Volume      sql.NullFloat64 `json:"volume"`
	VWAP        sql.NullFloat64 `gorm:"column:vwap" json:"vwap"`
	Turnover    sql.NullFloat64 `json:"turnover"`
	Trades      sql.NullFloat64 `json:"trades"`
	Deliverable sql.NullFloat64 `gorm:"column:deliverable_pct" json:"%deliverble"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (StockPrice) TableName() string {
	return "stock_prices"
}
