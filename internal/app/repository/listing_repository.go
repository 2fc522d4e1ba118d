package repository

import (
	"sync"
	"time"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/pkg/logger"
	"gorm.io/gorm"
)

// ListingFilter 매물 조회 조건
type ListingFilter struct {
	ComplexNo       string                // 단지 번호 (빈 값이면 전체)
	AreaType        string                // 면적 타입 (빈 값이면 전체)
	TransactionType model.TransactionType // 거래 유형 (빈 값이면 전체)
	MinArea         float64               // 전용면적 하한 (0이면 미적용)
	MaxArea         float64               // 전용면적 상한 (0이면 미적용)
	Limit           int                   // 최대 건수 (0이면 무제한)
}

// ListingRepository 매물 저장소 인터페이스
type ListingRepository interface {
	ReplaceListings(complexNo string, listings []model.Listing) error
	Find(filter ListingFilter) ([]model.Listing, error)
	FindByComplexAndDate(complexNo string, date time.Time, loc *time.Location) ([]model.Listing, error)
}

type listingRepository struct {
	db *gorm.DB

	// 단지별 전체 교체는 단지 단위로 직렬화한다.
	// 같은 단지에 대한 동시 임포트가 delete-then-insert 사이에 끼어들면
	// 일부만 교체된 상태가 노출될 수 있다.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewListingRepository 매물 저장소 생성
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}
}

func (r *listingRepository) lockFor(complexNo string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[complexNo]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[complexNo] = lock
	}
	return lock
}

// ReplaceListings 단지의 기존 매물을 모두 삭제하고 새 배치를 삽입 (전체 교체)
//
// 트랜잭션으로 감싸므로 실패 시 이전 상태가 유지된다. 호출자는 이미
// 필터링/정규화된 배치를 넘겨야 한다.
func (r *listingRepository) ReplaceListings(complexNo string, listings []model.Listing) error {
	lock := r.lockFor(complexNo)
	lock.Lock()
	defer lock.Unlock()

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("complex_no = ?", complexNo).Delete(&model.Listing{}).Error; err != nil {
			return err
		}
		if len(listings) == 0 {
			return nil
		}
		return tx.CreateInBatches(listings, 500).Error
	})
	if err != nil {
		logger.Error("Failed to replace listings", err, map[string]interface{}{
			"complex_no": complexNo,
			"count":      len(listings),
		})
		return err
	}

	logger.Info("Replaced listings", map[string]interface{}{
		"complex_no": complexNo,
		"count":      len(listings),
	})
	return nil
}

// Find 조건에 맞는 매물 조회
//
// 정렬은 화면 표시 안정성을 위해 단지명, 면적 타입, 거래 유형 순서로 고정한다.
func (r *listingRepository) Find(filter ListingFilter) ([]model.Listing, error) {
	query := r.db.Model(&model.Listing{}).
		Joins("LEFT JOIN complexes ON complexes.complex_no = prices.complex_no")

	if filter.ComplexNo != "" {
		query = query.Where("prices.complex_no = ?", filter.ComplexNo)
	}
	if filter.AreaType != "" {
		query = query.Where("prices.area_type = ?", filter.AreaType)
	}
	if filter.TransactionType != "" {
		query = query.Where("prices.transaction_type = ?", filter.TransactionType)
	}
	if filter.MinArea > 0 {
		query = query.Where("prices.exclusive_area >= ?", filter.MinArea)
	}
	if filter.MaxArea > 0 {
		query = query.Where("prices.exclusive_area <= ?", filter.MaxArea)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var listings []model.Listing
	err := query.
		Order("complexes.complex_name ASC, prices.area_type ASC, prices.transaction_type ASC").
		Find(&listings).Error
	if err != nil {
		logger.Error("Failed to find listings", err)
		return nil, err
	}
	return listings, nil
}

// FindByComplexAndDate 특정 단지의 특정 날짜(현지 기준) 수집분 조회
func (r *listingRepository) FindByComplexAndDate(complexNo string, date time.Time, loc *time.Location) ([]model.Listing, error) {
	if loc == nil {
		loc = time.Local
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	var listings []model.Listing
	err := r.db.
		Where("complex_no = ? AND collected_at >= ? AND collected_at < ?", complexNo, dayStart, dayEnd).
		Order("area_type ASC, transaction_type ASC").
		Find(&listings).Error
	if err != nil {
		logger.Error("Failed to find listings by date", err, map[string]interface{}{
			"complex_no": complexNo,
			"date":       dayStart.Format("2006-01-02"),
		})
		return nil, err
	}
	return listings, nil
}
