package repository

import (
	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ComplexRepository 단지 저장소 인터페이스
type ComplexRepository interface {
	Upsert(complex *model.Complex) error
	FindByNo(complexNo string) (*model.Complex, error)
	FindAll() ([]model.Complex, error)
}

type complexRepository struct {
	db *gorm.DB
}

// NewComplexRepository 단지 저장소 생성
func NewComplexRepository(db *gorm.DB) ComplexRepository {
	return &complexRepository{db: db}
}

// Upsert 단지 정보 저장 (complex_no 기준 INSERT OR REPLACE)
func (r *complexRepository) Upsert(complex *model.Complex) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "complex_no"}},
		UpdateAll: true,
	}).Create(complex).Error
	if err != nil {
		logger.Error("Failed to upsert complex", err, map[string]interface{}{
			"complex_no": complex.ComplexNo,
		})
		return err
	}
	return nil
}

// FindByNo 단지 번호로 조회
func (r *complexRepository) FindByNo(complexNo string) (*model.Complex, error) {
	var complex model.Complex
	if err := r.db.Where("complex_no = ?", complexNo).First(&complex).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.Error("Failed to find complex", err)
		return nil, err
	}
	return &complex, nil
}

// FindAll 모든 단지 조회
func (r *complexRepository) FindAll() ([]model.Complex, error) {
	var complexes []model.Complex
	if err := r.db.Order("complex_name ASC").Find(&complexes).Error; err != nil {
		logger.Error("Failed to find all complexes", err)
		return nil, err
	}
	return complexes, nil
}
