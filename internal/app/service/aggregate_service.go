package service

import (
	"math"
	"time"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/internal/app/repository"
	"github.com/jwlee/aptgap-backend/pkg/logger"
)

// AggregateService 일별 요약 집계 서비스 인터페이스
type AggregateService interface {
	AggregateDaily(complexNo string, date time.Time) ([]model.DailySummary, error)
}

type aggregateService struct {
	listingRepo repository.ListingRepository
	summaryRepo repository.SummaryRepository
	loc         *time.Location
}

// NewAggregateService 일별 요약 집계 서비스 생성
func NewAggregateService(listingRepo repository.ListingRepository, summaryRepo repository.SummaryRepository, loc *time.Location) AggregateService {
	if loc == nil {
		loc = time.Local
	}
	return &aggregateService{
		listingRepo: listingRepo,
		summaryRepo: summaryRepo,
		loc:         loc,
	}
}

// typeStats 거래 유형 하나의 집계 중간값
type typeStats struct {
	min   int64
	max   int64
	sum   int64
	count int
}

func (s *typeStats) add(value int64) {
	if s.count == 0 || value < s.min {
		s.min = value
	}
	if value > s.max {
		s.max = value
	}
	s.sum += value
	s.count++
}

func (s *typeStats) avg() int64 {
	if s.count == 0 {
		return 0
	}
	return s.sum / int64(s.count)
}

// AggregateDaily 특정 단지의 해당 날짜 수집분을 면적 타입별로 집계해 저장
//
// 매매는 price, 전세는 deposit을 집계 대상으로 쓴다. 한쪽 거래 유형이 없으면
// 해당 통계는 null로 남긴다 — 0으로 채우면 갭이 음수로 왜곡된다.
// 같은 (단지, 날짜)로 다시 실행해도 덮어쓰기이므로 개수가 불어나지 않는다.
func (s *aggregateService) AggregateDaily(complexNo string, date time.Time) ([]model.DailySummary, error) {
	listings, err := s.listingRepo.FindByComplexAndDate(complexNo, date, s.loc)
	if err != nil {
		return nil, err
	}

	if len(listings) == 0 {
		logger.Info("No listings to aggregate", map[string]interface{}{
			"complex_no": complexNo,
			"date":       date.In(s.loc).Format("2006-01-02"),
		})
		return nil, nil
	}

	type areaStats struct {
		sale  typeStats
		lease typeStats
	}
	byArea := make(map[string]*areaStats)

	for _, l := range listings {
		stats, ok := byArea[l.AreaType]
		if !ok {
			stats = &areaStats{}
			byArea[l.AreaType] = stats
		}
		switch l.TransactionType {
		case model.TransactionSale:
			stats.sale.add(l.Price)
		case model.TransactionLease:
			stats.lease.add(l.Deposit)
		}
	}

	recordDate := dateOnly(date, s.loc)
	summaries := make([]model.DailySummary, 0, len(byArea))

	for areaType, stats := range byArea {
		summary := model.DailySummary{
			ComplexNo:  complexNo,
			AreaType:   areaType,
			RecordDate: recordDate,
			SaleCount:  stats.sale.count,
			LeaseCount: stats.lease.count,
		}

		if stats.sale.count > 0 {
			summary.SaleMinPrice = ptr(stats.sale.min)
			summary.SaleMaxPrice = ptr(stats.sale.max)
			summary.SaleAvgPrice = ptr(stats.sale.avg())
		}
		if stats.lease.count > 0 {
			summary.LeaseMinPrice = ptr(stats.lease.min)
			summary.LeaseMaxPrice = ptr(stats.lease.max)
			summary.LeaseAvgPrice = ptr(stats.lease.avg())
		}

		if stats.sale.count > 0 && stats.lease.count > 0 {
			summary.GapInvestment = ptr(stats.sale.min - stats.lease.max)
			if saleAvg := stats.sale.avg(); saleAvg > 0 {
				ratio := math.Round(float64(stats.lease.avg())/float64(saleAvg)*1000) / 10
				summary.LeaseRatio = &ratio
			}
		}

		if err := s.summaryRepo.Upsert(&summary); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	logger.Info("Saved daily summaries", map[string]interface{}{
		"complex_no":  complexNo,
		"record_date": recordDate.Format("2006-01-02"),
		"area_types":  len(summaries),
	})
	return summaries, nil
}

func ptr(v int64) *int64 {
	return &v
}
