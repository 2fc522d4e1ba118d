package model

import "time"

// DailySummary 일별 (단지, 면적타입) 가격 요약
//
// (complex_no, area_type, record_date) 조합으로 유일하며, 같은 키에 대한
// 재집계는 덮어쓰기(UPSERT)다. 통계 필드는 해당 거래 유형 매물이 없으면
// null로 남긴다 (0으로 취급하면 갭이 음수로 왜곡됨).
type DailySummary struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ComplexNo  string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_history_key" json:"complex_no"`
	AreaType   string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_history_key" json:"area_type"`
	RecordDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_history_key" json:"record_date"`

	// 매매 통계 (만원)
	SaleMinPrice *int64 `json:"sale_min_price,omitempty"`
	SaleMaxPrice *int64 `json:"sale_max_price,omitempty"`
	SaleAvgPrice *int64 `json:"sale_avg_price,omitempty"`
	SaleCount    int    `gorm:"default:0" json:"sale_count"`

	// 전세 통계 (보증금 기준, 만원)
	LeaseMinPrice *int64 `json:"lease_min_price,omitempty"`
	LeaseMaxPrice *int64 `json:"lease_max_price,omitempty"`
	LeaseAvgPrice *int64 `json:"lease_avg_price,omitempty"`
	LeaseCount    int    `gorm:"default:0" json:"lease_count"`

	// 계산 지표: 매매/전세 양쪽이 있을 때만 계산
	GapInvestment *int64   `json:"gap_investment,omitempty"` // 매매 최저가 - 전세 최고가 (만원)
	LeaseRatio    *float64 `json:"lease_ratio,omitempty"`    // 전세가율 (%, 소수 1자리)

	CreatedAt time.Time `json:"created_at"`
}

func (DailySummary) TableName() string {
	return "price_history"
}
