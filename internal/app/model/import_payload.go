package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// FlexCount 숫자 또는 숫자 문자열을 모두 허용하는 개수 필드
//
// 수집기 내보내기에 "3"과 3이 혼재하므로 디코딩 경계에서 흡수한다.
// 숫자로 해석 불가한 문자열은 0으로 디코딩된다.
type FlexCount int

func (c *FlexCount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*c = 0
		return nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			*c = 0
			return nil
		}
		*c = FlexCount(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		// 소수로 들어오는 경우가 간혹 있음
		var f float64
		if err2 := json.Unmarshal(data, &f); err2 != nil {
			return err
		}
		n = int(f)
	}
	*c = FlexCount(n)
	return nil
}

// ComplexMetadata 내보내기 payload의 단지 메타데이터
type ComplexMetadata struct {
	ComplexNo       string `json:"complex_no" validate:"required"`
	ComplexName     string `json:"complex_name" validate:"required"`
	Address         string `json:"address"`
	TotalHouseholds int    `json:"total_households" validate:"gte=0"`
	BuildYear       int    `json:"build_year"`
}

// ExportListing 내보내기 payload의 면적별 요약 행
//
// 한 행이 매매/전세 데이터를 동시에 담을 수 있으며, 임포트 시
// 거래 유형별 RawListing으로 분리된다.
type ExportListing struct {
	AreaType      string    `json:"area_type"`
	ExclusiveArea float64   `json:"exclusive_area" validate:"gt=0"`
	SalePrice     int64     `json:"sale_price"`
	SaleFloor     string    `json:"sale_floor"`
	SaleCount     FlexCount `json:"sale_count"`
	LeasePrice    int64     `json:"lease_price"`
	LeaseFloor    string    `json:"lease_floor"`
	LeaseCount    FlexCount `json:"lease_count"`
	Direction     string    `json:"direction"`
	Note          string    `json:"note"`
}

// ComplexPayload 단지 하나의 임포트 단위
type ComplexPayload struct {
	Metadata ComplexMetadata `json:"metadata" validate:"required"`
	Listings []ExportListing `json:"listings" validate:"dive"`
}

// ImportPayload 임포트 payload 전체
//
// 두 가지 JSON 형태를 모두 허용한다:
//   - 단일 단지: {"metadata": {...}, "listings": [...]}
//   - 복수 단지: {"complexes": [{"metadata": {...}, "listings": [...]}, ...]}
//
// 디코딩 경계에서 단지 목록 하나로 정규화된다.
type ImportPayload struct {
	Complexes []ComplexPayload `validate:"required,min=1,dive"`
	PriceUnit PriceUnit        // 금액 단위 태그 (없으면 휴리스틱 적용)
}

func (p *ImportPayload) UnmarshalJSON(data []byte) error {
	var probe struct {
		Complexes []ComplexPayload `json:"complexes"`
		Metadata  *ComplexMetadata `json:"metadata"`
		Listings  []ExportListing  `json:"listings"`
		PriceUnit string           `json:"price_unit"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	p.PriceUnit = PriceUnit(probe.PriceUnit)

	if probe.Complexes != nil {
		p.Complexes = probe.Complexes
		return nil
	}

	if probe.Metadata != nil {
		p.Complexes = []ComplexPayload{{
			Metadata: *probe.Metadata,
			Listings: probe.Listings,
		}}
	}
	return nil
}

// ImportResult 임포트 배치 결과
type ImportResult struct {
	BatchID        string         `json:"batch_id"`         // 배치 식별자
	Complexes      int            `json:"complexes"`        // 처리한 단지 수
	Imported       int            `json:"imported"`         // 저장된 매물 수
	Skipped        int            `json:"skipped"`          // 제외된 매물 수
	RemovedByRule  map[string]int `json:"removed_by_rule"`  // 제외 규칙별 개수
	SummaryRows    int            `json:"summary_rows"`     // 생성/갱신된 일별 요약 행 수
	FailedComplexes []string      `json:"failed_complexes,omitempty"` // 저장 실패한 단지 번호
}

// Merge 다른 배치 결과를 합산 (디렉토리 임포트용)
func (r *ImportResult) Merge(other *ImportResult) {
	if other == nil {
		return
	}
	r.Complexes += other.Complexes
	r.Imported += other.Imported
	r.Skipped += other.Skipped
	r.SummaryRows += other.SummaryRows
	r.FailedComplexes = append(r.FailedComplexes, other.FailedComplexes...)
	if r.RemovedByRule == nil {
		r.RemovedByRule = make(map[string]int)
	}
	for rule, n := range other.RemovedByRule {
		r.RemovedByRule[rule] += n
	}
}
