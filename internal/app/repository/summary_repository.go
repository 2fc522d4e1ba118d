package repository

import (
	"time"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SummaryRepository 일별 요약 저장소 인터페이스
type SummaryRepository interface {
	Upsert(summary *model.DailySummary) error
	FindHistory(complexNo, areaType string, sinceDays int, loc *time.Location) ([]model.DailySummary, error)
	FindByKey(complexNo, areaType string, recordDate time.Time) (*model.DailySummary, error)
}

type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository 일별 요약 저장소 생성
func NewSummaryRepository(db *gorm.DB) SummaryRepository {
	return &summaryRepository{db: db}
}

// Upsert 일별 요약 저장 ((complex_no, area_type, record_date) 기준 덮어쓰기)
//
// 같은 키로 재집계해도 행이 누적되지 않는다.
func (r *summaryRepository) Upsert(summary *model.DailySummary) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "complex_no"},
			{Name: "area_type"},
			{Name: "record_date"},
		},
		UpdateAll: true,
	}).Create(summary).Error
	if err != nil {
		logger.Error("Failed to upsert daily summary", err, map[string]interface{}{
			"complex_no":  summary.ComplexNo,
			"area_type":   summary.AreaType,
			"record_date": summary.RecordDate.Format("2006-01-02"),
		})
		return err
	}
	return nil
}

// FindHistory 기간 내 일별 요약 조회 (record_date 오름차순)
//
// 조회 구간은 [오늘 - sinceDays, 오늘] (현지 시간대 기준).
func (r *summaryRepository) FindHistory(complexNo, areaType string, sinceDays int, loc *time.Location) ([]model.DailySummary, error) {
	if loc == nil {
		loc = time.Local
	}
	now := time.Now().In(loc)
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -sinceDays)

	query := r.db.Where("complex_no = ? AND record_date >= ?", complexNo, since)
	if areaType != "" {
		query = query.Where("area_type = ?", areaType)
	}

	var summaries []model.DailySummary
	if err := query.Order("record_date ASC").Find(&summaries).Error; err != nil {
		logger.Error("Failed to find price history", err, map[string]interface{}{
			"complex_no": complexNo,
			"area_type":  areaType,
			"since_days": sinceDays,
		})
		return nil, err
	}
	return summaries, nil
}

// FindByKey 키로 단일 요약 조회
func (r *summaryRepository) FindByKey(complexNo, areaType string, recordDate time.Time) (*model.DailySummary, error) {
	var summary model.DailySummary
	err := r.db.
		Where("complex_no = ? AND area_type = ? AND record_date = ?", complexNo, areaType, recordDate).
		First(&summary).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.Error("Failed to find daily summary", err)
		return nil, err
	}
	return &summary, nil
}
