package service

import (
	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/pkg/floor"
)

// 제외 규칙 식별자 (임포트 결과의 규칙별 제외 개수 집계에 사용)
const (
	RuleAreaBand  = "area_band"  // 면적 구간 밖
	RuleFloor     = "floor"      // 층 조건 미달 (매매 한정)
	RuleSeango    = "seango"     // 세안고/승계 매물
	RuleLargeArea = "large_area" // 평수 상한 초과
)

// AreaBand 허용 전용면적 구간 (경계 포함)
type AreaBand struct {
	Min float64
	Max float64
}

// FilterConfig 매물 허용 규칙 설정
type FilterConfig struct {
	AreaBands        []AreaBand // 허용 면적 구간 (빈 값이면 면적 필터 미적용)
	ExcludeSeango    bool       // 세안고 매물 제외
	ExcludeLowFloors bool       // 총층수 5 이상 건물의 3층 이하 제외
	MaxPyeong        float64    // 평수 상한
	IncludeLargeArea bool       // true면 평수 상한 미적용
	SeangoKeywords   []string   // 세안고 판별 키워드
}

// DefaultFilterConfig 기본 필터 설정
//
// 면적 구간은 59/75/84m² 타입을 ±3m² 허용 범위로 근사한 값이다.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		AreaBands: []AreaBand{
			{Min: 56, Max: 62},
			{Min: 72, Max: 78},
			{Min: 81, Max: 87},
		},
		ExcludeSeango:    true,
		ExcludeLowFloors: true,
		MaxPyeong:        35,
		IncludeLargeArea: false,
		SeangoKeywords:   []string{"끼고", "안고", "승계", "세안고", "세입자"},
	}
}

// Admit 매물 허용 여부 판정
//
// 허용되면 (true, ""), 제외되면 (false, 제외 규칙)을 반환한다. 부수효과 없음.
//
// 층 규칙은 매매에만 적용한다. 전세는 층과 무관하게 허용한다.
func Admit(raw model.RawListing, cfg FilterConfig) (bool, string) {
	if !inAreaBands(raw.ExclusiveArea, cfg.AreaBands) {
		return false, RuleAreaBand
	}

	if cfg.ExcludeSeango && containsSeango(raw.Note, cfg.SeangoKeywords) {
		return false, RuleSeango
	}

	if raw.TransactionType == model.TransactionSale && rejectFloor(raw.FloorLabel, cfg.ExcludeLowFloors) {
		return false, RuleFloor
	}

	if !cfg.IncludeLargeArea && cfg.MaxPyeong > 0 && raw.ExclusiveArea/3.3 > cfg.MaxPyeong {
		return false, RuleLargeArea
	}

	return true, ""
}

func inAreaBands(area float64, bands []AreaBand) bool {
	if len(bands) == 0 {
		return true
	}
	for _, band := range bands {
		if area >= band.Min && area <= band.Max {
			return true
		}
	}
	return false
}

func containsSeango(note string, keywords []string) bool {
	if note == "" {
		return false
	}
	for _, keyword := range keywords {
		if keyword != "" && contains(note, keyword) {
			return true
		}
	}
	return false
}

// rejectFloor 매매 매물의 층 조건 판정
//
// 층수 불명은 제외한다. 탑층 판정과 "5층 이상 건물" 규칙은 총층수를 아는
// 경우에만 적용한다 — 총층수 불명을 "탑층 아님"으로 단정하지 않는다.
func rejectFloor(label string, excludeLowFloors bool) bool {
	tier, class := floor.Classify(label)
	if class == floor.ClassUnknown {
		return true
	}

	if floor.HasLowMarker(label) {
		return true
	}

	if tier >= 1 && tier <= 3 {
		return true
	}

	current, total := floor.Parse(label)
	if total > 0 {
		if current == total {
			return true // 탑층
		}
		if excludeLowFloors && total >= 5 && current <= 3 {
			return true
		}
	}

	return false
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && indexOf(s, substr) >= 0
}

func indexOf(s, substr string) int {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
