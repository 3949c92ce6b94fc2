package repository

import (
	"context"
	"database/sql"
	"time"

	"golang-stock-screener/internal/entity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ImportJobRepository records import runs.
type ImportJobRepository interface {
	Create(ctx context.Context, job *entity.ImportJob) error
	Finish(ctx context.Context, id string, status entity.ImportStatus, summary datatypes.JSON) error
}

// NewImportJobRepository creates a new GORM-based import job repository.
func NewImportJobRepository(db *gorm.DB) ImportJobRepository {
	return &importJobRepository{db: db}
}

type importJobRepository struct {
	db *gorm.DB
}

func (r *importJobRepository) Create(ctx context.Context, job *entity.ImportJob) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// Finish stores the final status and summary of a run.
func (r *importJobRepository) Finish(ctx context.Context, id string, status entity.ImportStatus, summary datatypes.JSON) error {
	return r.db.WithContext(ctx).
		Model(&entity.ImportJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"summary":      summary,
			"completed_at": sql.NullTime{Time: time.Now(), Valid: true},
		}).Error
}
