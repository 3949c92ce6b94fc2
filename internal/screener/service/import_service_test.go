package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang-stock-screener/internal/entity"
	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type memoryPriceWriter struct {
	saved map[string]*dto.Series
}

func (w *memoryPriceWriter) SaveSeries(ctx context.Context, series *dto.Series) (int, error) {
	if series.Symbol == "BAD" {
		return 0, errors.New("constraint violation")
	}
	w.saved[series.Symbol] = series
	return len(series.Rows), nil
}

type memoryImportJobRepository struct {
	job     *entity.ImportJob
	status  entity.ImportStatus
	summary datatypes.JSON
}

func (r *memoryImportJobRepository) Create(ctx context.Context, job *entity.ImportJob) error {
	job.ID = "job-1"
	r.job = job
	return nil
}

func (r *memoryImportJobRepository) Finish(ctx context.Context, id string, status entity.ImportStatus, summary datatypes.JSON) error {
	r.status = status
	r.summary = summary
	return nil
}

func TestImportService_ImportDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"cleaned_INFY.csv": "Date,Close\n2024-01-01,10\n2024-01-02,11\n",
		"cleaned_BAD.csv":  "Date,Close\n2024-01-01,10\n",
		"cleaned_ND.csv":   "Close\n10\n",
		"notes.md":         "skip me",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	writer := &memoryPriceWriter{saved: map[string]*dto.Series{}}
	jobs := &memoryImportJobRepository{}
	svc := NewImportService(writer, jobs, "cleaned_", ".csv", logger.NewNop())

	summaries, err := svc.ImportDir(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "BAD", summaries[0].Symbol)
	assert.NotEmpty(t, summaries[0].Error)
	assert.Equal(t, "INFY", summaries[1].Symbol)
	assert.Equal(t, 2, summaries[1].Rows)
	assert.Empty(t, summaries[1].Error)
	assert.Equal(t, "ND", summaries[2].Symbol)
	assert.NotEmpty(t, summaries[2].Error)

	assert.Contains(t, writer.saved, "INFY")
	assert.Equal(t, entity.ImportStatusCompleted, jobs.status)

	var recorded []dto.ImportSummary
	require.NoError(t, json.Unmarshal(jobs.summary, &recorded))
	assert.Equal(t, summaries, recorded)
}

func TestImportService_MissingDir(t *testing.T) {
	svc := NewImportService(&memoryPriceWriter{}, &memoryImportJobRepository{}, "cleaned_", ".csv", logger.NewNop())
	_, err := svc.ImportDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
