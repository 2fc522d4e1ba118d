package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/internal/app/repository"
	"github.com/jwlee/aptgap-backend/pkg/logger"
	"github.com/jwlee/aptgap-backend/pkg/redis"
)

var ErrComplexNotFound = errors.New("단지를 찾을 수 없습니다")

// 요약 캐시 TTL. 수집은 하루 단위라 길게 잡아도 되지만
// 임포트 직후 무효화되므로 짧게 유지한다.
const summaryCacheTTL = 10 * time.Minute

// ListingService 매물/요약 조회 서비스 인터페이스
type ListingService interface {
	GetComplexes() ([]model.Complex, error)
	GetComplex(complexNo string) (*model.Complex, error)
	GetListings(filter repository.ListingFilter) ([]model.Listing, error)
	GetAreaSummaries(ctx context.Context, complexNo string, opts SummaryOptions) (map[string]AreaSummary, error)
	GetHistory(complexNo, areaType string, sinceDays int) ([]model.DailySummary, error)
	GetPriceChange(complexNo, areaType string, compareDays int) (*ChangeReport, error)
}

type listingService struct {
	complexRepo repository.ComplexRepository
	listingRepo repository.ListingRepository
	summaryRepo repository.SummaryRepository
	loc         *time.Location
}

// NewListingService 매물 조회 서비스 생성
func NewListingService(
	complexRepo repository.ComplexRepository,
	listingRepo repository.ListingRepository,
	summaryRepo repository.SummaryRepository,
	loc *time.Location,
) ListingService {
	if loc == nil {
		loc = time.Local
	}
	return &listingService{
		complexRepo: complexRepo,
		listingRepo: listingRepo,
		summaryRepo: summaryRepo,
		loc:         loc,
	}
}

// GetComplexes 모든 단지 조회
func (s *listingService) GetComplexes() ([]model.Complex, error) {
	return s.complexRepo.FindAll()
}

// GetComplex 단지 단건 조회
func (s *listingService) GetComplex(complexNo string) (*model.Complex, error) {
	complex, err := s.complexRepo.FindByNo(complexNo)
	if err != nil {
		return nil, err
	}
	if complex == nil {
		return nil, ErrComplexNotFound
	}
	return complex, nil
}

// GetListings 조건에 맞는 매물 조회
func (s *listingService) GetListings(filter repository.ListingFilter) ([]model.Listing, error) {
	return s.listingRepo.Find(filter)
}

// GetAreaSummaries 단지의 현재 매물을 면적 타입별로 요약
//
// 결과는 Redis에 짧게 캐싱된다. Redis가 없거나 실패하면 캐시 없이 계산한다.
func (s *listingService) GetAreaSummaries(ctx context.Context, complexNo string, opts SummaryOptions) (map[string]AreaSummary, error) {
	if _, err := s.GetComplex(complexNo); err != nil {
		return nil, err
	}

	cacheKey := summaryCacheKey(complexNo, opts)

	var cached map[string]AreaSummary
	if hit, err := redis.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	listings, err := s.listingRepo.Find(repository.ListingFilter{ComplexNo: complexNo})
	if err != nil {
		return nil, err
	}

	summaries := SummarizeByAreaType(listings, opts)

	if err := redis.SetJSON(ctx, cacheKey, summaries, summaryCacheTTL); err != nil {
		logger.Warn("Failed to cache area summaries", map[string]interface{}{
			"complex_no": complexNo,
			"error":      err.Error(),
		})
	}

	return summaries, nil
}

// GetHistory 일별 요약 히스토리 조회
func (s *listingService) GetHistory(complexNo, areaType string, sinceDays int) ([]model.DailySummary, error) {
	return s.summaryRepo.FindHistory(complexNo, areaType, sinceDays, s.loc)
}

// GetPriceChange 기간 비교 가격 변동 조회
//
// 비교 구간 안의 히스토리가 2행 미만이면 nil을 반환한다 (변동 계산 불가).
func (s *listingService) GetPriceChange(complexNo, areaType string, compareDays int) (*ChangeReport, error) {
	history, err := s.summaryRepo.FindHistory(complexNo, areaType, compareDays+1, s.loc)
	if err != nil {
		return nil, err
	}
	return PriceChange(history, compareDays), nil
}

func summaryCacheKey(complexNo string, opts SummaryOptions) string {
	multiplier := opts.SignalMultiplier
	if multiplier <= 0 {
		multiplier = 1
	}
	return fmt.Sprintf("summary:%s:lowest=%t:mult=%d", complexNo, opts.UseLowestLease, multiplier)
}

// invalidateSummaryCache 단지의 요약 캐시 무효화 (임포트 직후 호출)
func invalidateSummaryCache(ctx context.Context, complexNo string) {
	if err := redis.DeleteByPrefix(ctx, fmt.Sprintf("summary:%s:", complexNo)); err != nil {
		logger.Warn("Failed to invalidate summary cache", map[string]interface{}{
			"complex_no": complexNo,
			"error":      err.Error(),
		})
	}
}
