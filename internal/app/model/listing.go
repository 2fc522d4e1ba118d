package model

import "time"

// TransactionType 거래 유형
type TransactionType string

const (
	TransactionSale  TransactionType = "SALE"  // 매매
	TransactionLease TransactionType = "LEASE" // 전세
)

// PriceUnit 금액 단위 태그
//
// 수집 경계에서 배치 단위로 지정된다. 태그가 없는 배치는 크기 휴리스틱으로
// 추정하되 경고 로그를 남긴다 (normalizer 참조).
type PriceUnit string

const (
	UnitManwon  PriceUnit = "manwon" // 만원 (저장 단위)
	UnitWon     PriceUnit = "won"    // 원 (저장 전 10,000으로 나눔)
	UnitUnknown PriceUnit = ""       // 미지정 - 휴리스틱 적용
)

// Listing 특정 시점에 관측된 매물 한 건
//
// 불변식: transaction_type에 따라 price/deposit 중 정확히 하나만 0이 아니다.
// 모든 금액은 만원 단위로 저장된다.
type Listing struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	ComplexNo       string          `gorm:"type:varchar(20);not null;index" json:"complex_no"`       // 단지 번호
	AreaType        string          `gorm:"type:varchar(20);not null;index" json:"area_type"`        // 면적 타입 (예: 59A)
	ExclusiveArea   float64         `gorm:"not null" json:"exclusive_area"`                          // 전용면적 (m²)
	TransactionType TransactionType `gorm:"type:varchar(10);not null;index" json:"transaction_type"` // 거래 유형
	Price           int64           `gorm:"default:0" json:"price"`                                  // 매매가 (만원, 매매 외 0)
	Deposit         int64           `gorm:"default:0" json:"deposit"`                                // 보증금 (만원, 전세 외 0)
	FloorLabel      string          `gorm:"column:floor;type:varchar(30)" json:"floor"`              // 층 원문 라벨
	FloorTier       int             `gorm:"column:floor_number;index" json:"floor_number"`           // 층수 (0 = 불명)
	Direction       string          `gorm:"type:varchar(20)" json:"direction"`                       // 방향
	CollectedAt     time.Time       `gorm:"not null;index" json:"collected_at"`                      // 수집 시각 (배치 단위)
}

func (Listing) TableName() string {
	return "prices"
}

// RawListing 정규화 이전의 매물 한 건 (필터/정규화 입력)
type RawListing struct {
	AreaType        string          // 면적 타입 라벨 (원문 유지)
	ExclusiveArea   float64         // 전용면적 (m²)
	TransactionType TransactionType // 거래 유형
	Price           int64           // 매매가 (단위는 배치의 PriceUnit)
	Deposit         int64           // 보증금 (단위는 배치의 PriceUnit)
	FloorLabel      string          // 층 라벨 원문
	Direction       string          // 방향
	Note            string          // 특이사항 (세안고 판별용)
}
