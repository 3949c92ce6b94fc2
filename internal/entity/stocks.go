package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Stock is one symbol of the screenable universe in the postgres store.
// Columns holds the JSON list of numeric fields the imported dataset carried.
type Stock struct {
	ID        uint           `gorm:"primaryKey"`
	Code      string         `gorm:"uniqueIndex;not null"`
	Name      string         `gorm:"not null"`
	Columns   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Stock) TableName() string {
	return "stocks"
}
