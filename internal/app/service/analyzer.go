package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/pkg/pricefmt"
)

// 신호등 기준값 (%). multiplier로 배율 조정.
const (
	signalLowValue    = 5  // 미만: 녹색
	signalMiddleValue = 10 // 이하: 주황, 초과: 빨강
)

// SignalColor 신호등 색상
type SignalColor string

const (
	SignalGreen  SignalColor = "green"
	SignalOrange SignalColor = "orange"
	SignalRed    SignalColor = "red"
	SignalGray   SignalColor = "gray" // 비교 대상 없음
)

// Signal 신호등 판정 결과
type Signal struct {
	Color   SignalColor `json:"color"`
	Tooltip string      `json:"tooltip"` // "4.0% / 500만원" 형식, 비교 불가 시 "-"
}

// AreaSummary 면적 타입별 가격 요약
type AreaSummary struct {
	SaleMin    int64  `json:"sale_min"`    // 매매 최저가 (만원)
	SaleFloor  string `json:"sale_floor"`  // 매매 최저가 매물의 층
	SaleCount  int    `json:"sale_count"`  // 매매 매물 수
	LeaseRepr  int64  `json:"lease_repr"`  // 전세 대표가 (만원, 기본 최고가)
	LeaseFloor string `json:"lease_floor"` // 전세 대표가 매물의 층
	LeaseCount int    `json:"lease_count"` // 전세 매물 수
	Gap        int64  `json:"gap"`         // 갭 (만원, 계산 불가 시 0)
	LeaseRatio string `json:"lease_ratio"` // 전세가율 ("83%" 또는 "-")
	Signal     Signal `json:"signal"`      // 신호등
}

// SummaryOptions 요약 계산 옵션
type SummaryOptions struct {
	UseLowestLease   bool // true면 전세 최저가를 대표값으로 사용 (기본은 최고가)
	SignalMultiplier int  // 신호등 배율 (1, 2, 3; 0이면 1)
}

// CalculateGapAndRatio 갭과 전세가율 계산
//
// 양쪽 값이 모두 양수일 때만 계산하고, 아니면 (0, "-")를 반환한다.
// 전세가율은 정수 퍼센트 내림이다 (예: 100000/120000 → "83%").
func CalculateGapAndRatio(salePrice, leasePrice int64) (int64, string) {
	if salePrice <= 0 || leasePrice <= 0 {
		return 0, "-"
	}

	gap := salePrice - leasePrice
	ratio := int(float64(leasePrice) / float64(salePrice) * 100)

	return gap, fmt.Sprintf("%d%%", ratio)
}

// SignalLightCheck 신호등 색상 판정
//
// 최저가(current)가 차상위 가격(compare)보다 얼마나 싼지를 백분율로 환산해
// 급매 정도를 표시한다. 비교 불가(값 없음 또는 compare ≤ current)면 회색.
func SignalLightCheck(currentPrice, comparePrice int64, multiplier int) Signal {
	if currentPrice <= 0 || comparePrice <= 0 || comparePrice <= currentPrice {
		return Signal{Color: SignalGray, Tooltip: "-"}
	}
	if multiplier <= 0 {
		multiplier = 1
	}

	gap := comparePrice - currentPrice
	percentage := 100 - float64(currentPrice)/float64(comparePrice)*100

	tooltip := fmt.Sprintf("%.1f%% / %s만원", percentage, pricefmt.Comma(gap))

	switch {
	case percentage < float64(signalLowValue*multiplier):
		return Signal{Color: SignalGreen, Tooltip: tooltip}
	case percentage <= float64(signalMiddleValue*multiplier):
		return Signal{Color: SignalOrange, Tooltip: tooltip}
	default:
		return Signal{Color: SignalRed, Tooltip: tooltip}
	}
}

// SummarizeByAreaType 매물 집합을 면적 타입별로 요약
//
// 매매는 최저가를, 전세는 최고가(옵션에 따라 최저가)를 대표값으로 고른다.
// 신호등은 같은 면적 타입 안에서 최저가와 그보다 비싼 첫 번째 가격을 비교한다.
// 입출력 외 부수효과 없음.
func SummarizeByAreaType(listings []model.Listing, opts SummaryOptions) map[string]AreaSummary {
	summaries := make(map[string]AreaSummary)
	if len(listings) == 0 {
		return summaries
	}

	byArea := make(map[string][]model.Listing)
	for _, l := range listings {
		byArea[l.AreaType] = append(byArea[l.AreaType], l)
	}

	for areaType, group := range byArea {
		summary := AreaSummary{
			SaleFloor:  "-",
			LeaseFloor: "-",
			LeaseRatio: "-",
			Signal:     Signal{Color: SignalGray, Tooltip: "-"},
		}

		var salePrices []int64
		for _, l := range group {
			switch l.TransactionType {
			case model.TransactionSale:
				summary.SaleCount++
				salePrices = append(salePrices, l.Price)
				if summary.SaleMin == 0 || l.Price < summary.SaleMin {
					summary.SaleMin = l.Price
					summary.SaleFloor = floorLabelOrDash(l.FloorLabel)
				}
			case model.TransactionLease:
				summary.LeaseCount++
				better := l.Deposit > summary.LeaseRepr
				if opts.UseLowestLease {
					better = summary.LeaseRepr == 0 || l.Deposit < summary.LeaseRepr
				}
				if summary.LeaseRepr == 0 || better {
					summary.LeaseRepr = l.Deposit
					summary.LeaseFloor = floorLabelOrDash(l.FloorLabel)
				}
			}
		}

		if summary.SaleMin > 0 && summary.LeaseRepr > 0 {
			summary.Gap, summary.LeaseRatio = CalculateGapAndRatio(summary.SaleMin, summary.LeaseRepr)
		}

		// 최저가보다 비싼 첫 번째 가격과 비교
		if next := nextHigherPrice(salePrices, summary.SaleMin); next > 0 {
			summary.Signal = SignalLightCheck(summary.SaleMin, next, opts.SignalMultiplier)
		}

		summaries[areaType] = summary
	}

	return summaries
}

// nextHigherPrice 정렬된 중복 제거 가격 중 min보다 큰 첫 값 (없으면 0)
func nextHigherPrice(prices []int64, min int64) int64 {
	if min <= 0 || len(prices) < 2 {
		return 0
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })
	for _, p := range prices {
		if p > min {
			return p
		}
	}
	return 0
}

func floorLabelOrDash(label string) string {
	if label == "" {
		return "-"
	}
	return label
}

// ChangeReport 기간 비교 가격 변동 보고
type ChangeReport struct {
	ComplexNo  string `json:"complex_no"`
	AreaType   string `json:"area_type"`
	PeriodDays int    `json:"period_days"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`

	SaleCurrent    *int64   `json:"sale_current,omitempty"`
	SaleChange     *int64   `json:"sale_change,omitempty"`
	SaleChangePct  *float64 `json:"sale_change_pct,omitempty"`
	LeaseCurrent   *int64   `json:"lease_current,omitempty"`
	LeaseChange    *int64   `json:"lease_change,omitempty"`
	LeaseChangePct *float64 `json:"lease_change_pct,omitempty"`
	GapCurrent     *int64   `json:"gap_current,omitempty"`
	GapChange      *int64   `json:"gap_change,omitempty"`
}

// PriceChange 히스토리의 최초/최종 행을 비교해 변동 보고를 만든다
//
// 행이 2개 미만이면 nil. 기준값이 없거나 0인 항목은 해당 필드를 비워 둔다
// (0으로 나누어 Inf/NaN을 만들지 않는다).
func PriceChange(history []model.DailySummary, compareDays int) *ChangeReport {
	if len(history) < 2 {
		return nil
	}

	first := history[0]
	last := history[len(history)-1]

	report := &ChangeReport{
		ComplexNo:  last.ComplexNo,
		AreaType:   last.AreaType,
		PeriodDays: compareDays,
		StartDate:  first.RecordDate.Format("2006-01-02"),
		EndDate:    last.RecordDate.Format("2006-01-02"),
	}

	if first.SaleAvgPrice != nil && last.SaleAvgPrice != nil && *first.SaleAvgPrice != 0 {
		change := *last.SaleAvgPrice - *first.SaleAvgPrice
		pct := round2(float64(change) / float64(*first.SaleAvgPrice) * 100)
		report.SaleCurrent = last.SaleAvgPrice
		report.SaleChange = &change
		report.SaleChangePct = &pct
	}

	if first.LeaseAvgPrice != nil && last.LeaseAvgPrice != nil && *first.LeaseAvgPrice != 0 {
		change := *last.LeaseAvgPrice - *first.LeaseAvgPrice
		pct := round2(float64(change) / float64(*first.LeaseAvgPrice) * 100)
		report.LeaseCurrent = last.LeaseAvgPrice
		report.LeaseChange = &change
		report.LeaseChangePct = &pct
	}

	if first.GapInvestment != nil && last.GapInvestment != nil {
		change := *last.GapInvestment - *first.GapInvestment
		report.GapCurrent = last.GapInvestment
		report.GapChange = &change
	}

	return report
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// dateOnly 시각을 현지 자정으로 절삭 (record_date 키 생성용)
func dateOnly(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
