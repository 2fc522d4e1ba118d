package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/jwlee/aptgap-backend/config"
	"github.com/jwlee/aptgap-backend/internal/app/service"
	"github.com/jwlee/aptgap-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ImportScheduler 수집 디렉토리 자동 반영 스케줄러
//
// 크롤러가 내려놓은 JSON 파일을 주기적으로 읽어 저장과 집계까지 수행한다.
type ImportScheduler struct {
	cron          *cron.Cron
	importService service.ImportService
	cronSpec      string
	importDir     string
}

// NewImportScheduler 임포트 스케줄러 생성
func NewImportScheduler(importService service.ImportService, cfg *config.Config) *ImportScheduler {
	return &ImportScheduler{
		cron:          cron.New(cron.WithLocation(cfg.Timezone)),
		importService: importService,
		cronSpec:      cfg.Scheduler.CronSpec,
		importDir:     cfg.Scheduler.ImportDir,
	}
}

// Start 스케줄러 시작
func (s *ImportScheduler) Start() error {
	_, err := s.cron.AddFunc(s.cronSpec, func() {
		logger.Info("Starting scheduled import cycle", map[string]interface{}{
			"import_dir": s.importDir,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		result, err := s.importService.ImportDirectory(ctx, s.importDir)
		if errors.Is(err, service.ErrNoImportFiles) {
			logger.Warn("No export files found for scheduled import", map[string]interface{}{
				"import_dir": s.importDir,
			})
			return
		}
		if err != nil {
			logger.Error("Scheduled import cycle failed", err, map[string]interface{}{
				"import_dir": s.importDir,
			})
			return
		}

		logger.Info("Scheduled import cycle completed", map[string]interface{}{
			"batch_id":     result.BatchID,
			"complexes":    result.Complexes,
			"imported":     result.Imported,
			"skipped":      result.Skipped,
			"summary_rows": result.SummaryRows,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for import cycle", err)
		return err
	}

	s.cron.Start()
	logger.Info("Import scheduler started successfully", map[string]interface{}{
		"cron": s.cronSpec,
	})

	return nil
}

// Stop 스케줄러 중지
func (s *ImportScheduler) Stop() {
	logger.Info("Stopping import scheduler...", nil)
	s.cron.Stop()
	logger.Info("Import scheduler stopped", nil)
}
