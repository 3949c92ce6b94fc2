package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang-stock-screener/internal/entity"
	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/internal/screener/repository"
	"golang-stock-screener/pkg/logger"

	"gorm.io/datatypes"
)

// ImportService loads a directory of dataset files into the relational store.
type ImportService interface {
	ImportDir(ctx context.Context, dir string) ([]dto.ImportSummary, error)
}

type importService struct {
	writer  repository.StockPriceWriter
	jobRepo repository.ImportJobRepository
	prefix  string
	suffix  string
	logger  *logger.Logger
}

// NewImportService creates a new import service.
func NewImportService(writer repository.StockPriceWriter, jobRepo repository.ImportJobRepository, prefix, suffix string, log *logger.Logger) ImportService {
	return &importService{
		writer:  writer,
		jobRepo: jobRepo,
		prefix:  prefix,
		suffix:  suffix,
		logger:  log,
	}
}

// ImportDir imports every dataset file of dir. A file that fails is
// reported in its summary and does not stop the run.
func (s *importService) ImportDir(ctx context.Context, dir string) ([]dto.ImportSummary, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	job := &entity.ImportJob{
		Source:    dir,
		Status:    entity.ImportStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to record import job: %w", err)
	}

	summaries := []dto.ImportSummary{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		symbol, ok := repository.SymbolFromKey(e.Name(), s.prefix, s.suffix)
		if !ok {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		summary := s.importFile(ctx, filepath.Join(dir, e.Name()), symbol)
		summaries = append(summaries, summary)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Symbol < summaries[j].Symbol })

	status := entity.ImportStatusCompleted
	if ctx.Err() != nil {
		status = entity.ImportStatusFailed
	}
	report, _ := json.Marshal(summaries)
	// The run may have been cancelled; record the outcome regardless.
	if err := s.jobRepo.Finish(context.WithoutCancel(ctx), job.ID, status, datatypes.JSON(report)); err != nil {
		s.logger.Error("Failed to finish import job", logger.StringField("job_id", job.ID), logger.ErrorField(err))
	}

	s.logger.Info("Import finished",
		logger.StringField("job_id", job.ID),
		logger.StringField("status", string(status)),
		logger.IntField("files", len(summaries)))
	return summaries, ctx.Err()
}

func (s *importService) importFile(ctx context.Context, path, symbol string) dto.ImportSummary {
	summary := dto.ImportSummary{Symbol: symbol, File: filepath.Base(path)}

	f, err := os.Open(path)
	if err != nil {
		summary.Error = err.Error()
		return summary
	}
	defer f.Close()

	series, err := repository.ParseSeries(symbol, f)
	if err != nil {
		summary.Error = err.Error()
		return summary
	}
	if !series.HasDate {
		summary.Error = "dataset has no date column"
		return summary
	}

	n, err := s.writer.SaveSeries(ctx, series)
	if err != nil {
		s.logger.Warn("Failed to import dataset", logger.StringField("symbol", symbol), logger.ErrorField(err))
		summary.Error = err.Error()
		return summary
	}
	summary.Rows = n
	return summary
}
