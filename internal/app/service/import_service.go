package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/internal/app/repository"
	"github.com/jwlee/aptgap-backend/pkg/logger"
)

var (
	ErrInvalidPayload = errors.New("임포트 payload가 올바르지 않습니다")
	ErrNoImportFiles  = errors.New("임포트할 JSON 파일이 없습니다")
	ErrImportFailed   = errors.New("임포트에 실패한 단지가 있습니다")
)

// 단지 메타데이터에 건축년도가 없을 때 쓰는 기본값
const defaultBuildYear = 2010

// ImportService 매물 임포트 서비스 인터페이스
//
// 임포트 한 번은 "단지별 전체 교체 + 당일 집계"까지를 한 사이클로 처리한다.
// 레코드 단위 문제는 건너뛰고 계속 진행하며, 저장 실패는 해당 단지의
// 배치만 중단시킨다 (이전 상태 유지).
type ImportService interface {
	ImportPayload(ctx context.Context, payload *model.ImportPayload) (*model.ImportResult, error)
	ImportFile(ctx context.Context, path string) (*model.ImportResult, error)
	ImportDirectory(ctx context.Context, dir string) (*model.ImportResult, error)
}

type importService struct {
	complexRepo      repository.ComplexRepository
	listingRepo      repository.ListingRepository
	aggregateService AggregateService
	filterConfig     FilterConfig
	validate         *validator.Validate
	loc              *time.Location
}

// NewImportService 임포트 서비스 생성
func NewImportService(
	complexRepo repository.ComplexRepository,
	listingRepo repository.ListingRepository,
	aggregateService AggregateService,
	filterConfig FilterConfig,
	loc *time.Location,
) ImportService {
	if loc == nil {
		loc = time.Local
	}
	return &importService{
		complexRepo:      complexRepo,
		listingRepo:      listingRepo,
		aggregateService: aggregateService,
		filterConfig:     filterConfig,
		validate:         validator.New(),
		loc:              loc,
	}
}

// ImportPayload payload 하나를 임포트
//
// 배치 전체에 수집 시각 하나를 부여한다. 레코드마다 현재 시각을 찍으면
// 자정 부근 배치가 이틀로 쪼개져 일별 집계가 깨진다.
func (s *importService) ImportPayload(ctx context.Context, payload *model.ImportPayload) (*model.ImportResult, error) {
	if payload == nil || len(payload.Complexes) == 0 {
		return nil, ErrInvalidPayload
	}
	if err := s.validate.Struct(payload); err != nil {
		logger.Warn("Import payload validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	result := &model.ImportResult{
		BatchID:       uuid.NewString(),
		RemovedByRule: make(map[string]int),
	}
	collectedAt := time.Now().In(s.loc)

	logger.Info("Starting import batch", map[string]interface{}{
		"batch_id":  result.BatchID,
		"complexes": len(payload.Complexes),
	})

	for _, cp := range payload.Complexes {
		if err := s.importComplex(ctx, cp, payload.PriceUnit, collectedAt, result); err != nil {
			// 저장 실패는 해당 단지만 중단하고 다음 단지로 진행
			result.FailedComplexes = append(result.FailedComplexes, cp.Metadata.ComplexNo)
			logger.Error("Failed to import complex", err, map[string]interface{}{
				"batch_id":   result.BatchID,
				"complex_no": cp.Metadata.ComplexNo,
			})
			continue
		}
		result.Complexes++
	}

	logger.Info("Import batch completed", map[string]interface{}{
		"batch_id":  result.BatchID,
		"complexes": result.Complexes,
		"imported":  result.Imported,
		"skipped":   result.Skipped,
		"failed":    len(result.FailedComplexes),
	})

	if result.Complexes == 0 && len(result.FailedComplexes) > 0 {
		return result, ErrImportFailed
	}
	return result, nil
}

func (s *importService) importComplex(
	ctx context.Context,
	cp model.ComplexPayload,
	unit model.PriceUnit,
	collectedAt time.Time,
	result *model.ImportResult,
) error {
	buildYear := cp.Metadata.BuildYear
	if buildYear == 0 {
		buildYear = defaultBuildYear
	}

	complex := &model.Complex{
		ComplexNo:       cp.Metadata.ComplexNo,
		ComplexName:     cp.Metadata.ComplexName,
		Address:         cp.Metadata.Address,
		TotalHouseholds: cp.Metadata.TotalHouseholds,
		BuildYear:       buildYear,
		UpdatedAt:       collectedAt,
	}
	if err := s.complexRepo.Upsert(complex); err != nil {
		return err
	}

	var listings []model.Listing
	for _, export := range cp.Listings {
		for _, raw := range expandExportListing(export) {
			admitted, rule := Admit(raw, s.filterConfig)
			if !admitted {
				result.Skipped++
				result.RemovedByRule[rule]++
				continue
			}

			listing, err := NormalizeListing(raw, cp.Metadata.ComplexNo, unit, collectedAt)
			if err != nil {
				// 레코드 단위 검증 실패: 건너뛰고 배치 계속
				result.Skipped++
				result.RemovedByRule["invalid"]++
				logger.Warn("Skipping malformed listing", map[string]interface{}{
					"complex_no": cp.Metadata.ComplexNo,
					"error":      err.Error(),
				})
				continue
			}
			listings = append(listings, listing)
		}
	}

	// 전체 교체. 실패하면 이전 매물이 그대로 남는다.
	if err := s.listingRepo.ReplaceListings(cp.Metadata.ComplexNo, listings); err != nil {
		return err
	}
	result.Imported += len(listings)

	// 집계는 교체 커밋 이후에만 실행한다 (부분 교체 상태 집계 방지)
	summaries, err := s.aggregateService.AggregateDaily(cp.Metadata.ComplexNo, collectedAt)
	if err != nil {
		return err
	}
	result.SummaryRows += len(summaries)

	invalidateSummaryCache(ctx, cp.Metadata.ComplexNo)
	return nil
}

// expandExportListing 내보내기 행 하나를 거래 유형별 원시 매물로 분리
//
// 매매/전세 데이터가 같은 행에 실려 오므로 여기서 나눈다. 가격이나 개수가
// 0인 쪽은 생성하지 않는다.
func expandExportListing(export model.ExportListing) []model.RawListing {
	var raws []model.RawListing

	if export.SalePrice > 0 && export.SaleCount > 0 {
		raws = append(raws, model.RawListing{
			AreaType:        export.AreaType,
			ExclusiveArea:   export.ExclusiveArea,
			TransactionType: model.TransactionSale,
			Price:           export.SalePrice,
			FloorLabel:      export.SaleFloor,
			Direction:       export.Direction,
			Note:            export.Note,
		})
	}

	if export.LeasePrice > 0 && export.LeaseCount > 0 {
		raws = append(raws, model.RawListing{
			AreaType:        export.AreaType,
			ExclusiveArea:   export.ExclusiveArea,
			TransactionType: model.TransactionLease,
			Deposit:         export.LeasePrice,
			FloorLabel:      export.LeaseFloor,
			Direction:       export.Direction,
			Note:            export.Note,
		})
	}

	return raws
}

// ImportFile JSON 파일 하나를 임포트
func (s *importService) ImportFile(ctx context.Context, path string) (*model.ImportResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var payload model.ImportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	logger.Info("Importing JSON file", map[string]interface{}{
		"path":      path,
		"complexes": len(payload.Complexes),
	})
	return s.ImportPayload(ctx, &payload)
}

// ImportDirectory 디렉토리 내 모든 naver_*.json 파일 임포트
func (s *importService) ImportDirectory(ctx context.Context, dir string) (*model.ImportResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "naver_*.json"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoImportFiles
	}

	logger.Info("Importing directory", map[string]interface{}{
		"dir":   dir,
		"files": len(files),
	})

	total := &model.ImportResult{
		BatchID:       uuid.NewString(),
		RemovedByRule: make(map[string]int),
	}
	for _, file := range files {
		result, err := s.ImportFile(ctx, file)
		if err != nil {
			logger.Error("Failed to import file", err, map[string]interface{}{"path": file})
			continue
		}
		total.Merge(result)
	}

	return total, nil
}
