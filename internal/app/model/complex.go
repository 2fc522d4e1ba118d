package model

import "time"

// Complex 아파트 단지 정보
type Complex struct {
	ComplexNo       string    `gorm:"type:varchar(20);primarykey" json:"complex_no"` // 단지 번호 (외부 식별자)
	ComplexName     string    `gorm:"type:varchar(100);not null" json:"complex_name"` // 단지명
	Address         string    `gorm:"type:varchar(200)" json:"address"`               // 주소
	TotalHouseholds int       `gorm:"default:0" json:"total_households"`              // 세대수
	BuildYear       int       `json:"build_year"`                                     // 건축년도
	UpdatedAt       time.Time `json:"updated_at"`                                     // 갱신 시각
}

func (Complex) TableName() string {
	return "complexes"
}
