package entity

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportStatus is the lifecycle state of an import run.
type ImportStatus string

const (
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportJob records one out-of-band load of dataset files into postgres.
type ImportJob struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Source      string         `gorm:"not null" json:"source"`
	Status      ImportStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Summary     datatypes.JSON `gorm:"type:jsonb" json:"summary"`
	StartedAt   time.Time      `gorm:"not null" json:"started_at"`
	CompletedAt sql.NullTime   `json:"completed_at"`
}

func (ImportJob) TableName() string {
	return "import_jobs"
}

func (j *ImportJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
