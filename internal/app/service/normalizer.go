package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/pkg/floor"
	"github.com/jwlee/aptgap-backend/pkg/logger"
)

var (
	ErrInvalidArea            = errors.New("전용면적이 올바르지 않습니다")
	ErrInvalidTransactionType = errors.New("거래 유형을 확인할 수 없습니다")
)

// wonThreshold 단위 태그가 없을 때 원 단위로 추정하는 크기 기준.
// 100만 "만원"(= 100억 원)을 넘는 매물가는 현실적으로 원 단위 값이다.
const wonThreshold = 1_000_000

// 면적 타입 파생용 공칭 면적
var nominalAreas = []int{59, 75, 84}

// NormalizeListing 허용된 원시 매물을 표준 Listing으로 변환
//
// 금액은 만원 단위로 통일되고, 거래 유형에 따라 price/deposit 중 하나만
// 채워진다. collectedAt은 배치 단위 타임스탬프다 (일별 집계가 깨지지 않도록
// 레코드별 현재 시각을 쓰지 않는다).
//
// 면적이나 거래 유형이 잘못된 레코드는 에러를 반환하며, 호출자는 해당
// 레코드만 건너뛰고 배치를 계속 진행해야 한다.
func NormalizeListing(raw model.RawListing, complexNo string, unit model.PriceUnit, collectedAt time.Time) (model.Listing, error) {
	if raw.ExclusiveArea <= 0 || math.IsNaN(raw.ExclusiveArea) {
		return model.Listing{}, ErrInvalidArea
	}
	if raw.TransactionType != model.TransactionSale && raw.TransactionType != model.TransactionLease {
		return model.Listing{}, fmt.Errorf("%w: %q", ErrInvalidTransactionType, raw.TransactionType)
	}

	areaType := raw.AreaType
	if areaType == "" {
		areaType = deriveAreaType(raw.ExclusiveArea)
	}

	tier, _ := floor.Classify(raw.FloorLabel)

	listing := model.Listing{
		ComplexNo:       complexNo,
		AreaType:        areaType,
		ExclusiveArea:   raw.ExclusiveArea,
		TransactionType: raw.TransactionType,
		FloorLabel:      raw.FloorLabel,
		FloorTier:       tier,
		Direction:       raw.Direction,
		CollectedAt:     collectedAt,
	}

	// 거래 유형에 따라 price/deposit 중 하나만 채운다. 매매는 Price 필드를,
	// 전세는 Deposit 필드를 사용하며 단위 변환은 양쪽에 동일하게 적용된다.
	switch raw.TransactionType {
	case model.TransactionSale:
		listing.Price = toManwon(raw.Price, unit, complexNo, "price")
		listing.Deposit = 0
	case model.TransactionLease:
		listing.Deposit = toManwon(raw.Deposit, unit, complexNo, "deposit")
		listing.Price = 0
	}

	return listing, nil
}

// toManwon 금액을 만원 단위로 변환
//
// 배치에 단위 태그가 있으면 태그만 신뢰한다. 태그가 없으면 크기 휴리스틱을
// 적용하되, 추정으로 스케일링했음을 경고 로그로 남긴다.
func toManwon(value int64, unit model.PriceUnit, complexNo, field string) int64 {
	if value == 0 {
		return 0
	}

	switch unit {
	case model.UnitManwon:
		return value
	case model.UnitWon:
		return value / 10000
	default:
		if value > wonThreshold {
			logger.Warn("Price unit tag missing; assuming won by magnitude", map[string]interface{}{
				"complex_no": complexNo,
				"field":      field,
				"raw_value":  value,
			})
			return value / 10000
		}
		return value
	}
}

// deriveAreaType 전용면적에서 면적 타입 라벨 파생 (예: 59.8 → "59A")
//
// payload에 명시 라벨이 있으면 이 함수는 호출되지 않는다 (라벨 원문 유지).
func deriveAreaType(area float64) string {
	nearest := nominalAreas[0]
	best := math.Abs(area - float64(nearest))
	for _, nominal := range nominalAreas[1:] {
		if d := math.Abs(area - float64(nominal)); d < best {
			best = d
			nearest = nominal
		}
	}
	return fmt.Sprintf("%dA", nearest)
}
