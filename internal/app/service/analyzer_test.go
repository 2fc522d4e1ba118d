package service

import (
	"testing"
	"time"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateGapAndRatio(t *testing.T) {
	tests := []struct {
		name      string
		sale      int64
		lease     int64
		wantGap   int64
		wantRatio string
	}{
		{name: "Normal case", sale: 120000, lease: 100000, wantGap: 20000, wantRatio: "83%"},
		{name: "Lease above sale", sale: 100000, lease: 110000, wantGap: -10000, wantRatio: "110%"},
		{name: "Equal prices", sale: 100000, lease: 100000, wantGap: 0, wantRatio: "100%"},
		{name: "Zero sale", sale: 0, lease: 100000, wantGap: 0, wantRatio: "-"},
		{name: "Zero lease", sale: 120000, lease: 0, wantGap: 0, wantRatio: "-"},
		{name: "Negative price", sale: -1, lease: 100000, wantGap: 0, wantRatio: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gap, ratio := CalculateGapAndRatio(tt.sale, tt.lease)
			assert.Equal(t, tt.wantGap, gap)
			assert.Equal(t, tt.wantRatio, ratio)
		})
	}
}

func TestSignalLightCheck(t *testing.T) {
	tests := []struct {
		name       string
		current    int64
		compare    int64
		multiplier int
		wantColor  SignalColor
	}{
		{name: "Small discount is green", current: 12000, compare: 12500, multiplier: 1, wantColor: SignalGreen},
		{name: "Medium discount is orange", current: 11500, compare: 12500, multiplier: 1, wantColor: SignalOrange},
		{name: "Large discount is red", current: 10000, compare: 12500, multiplier: 1, wantColor: SignalRed},
		{name: "Multiplier widens green band", current: 11500, compare: 12500, multiplier: 2, wantColor: SignalGreen},
		{name: "No comparison price", current: 12000, compare: 0, multiplier: 1, wantColor: SignalGray},
		{name: "Compare below current", current: 12500, compare: 12000, multiplier: 1, wantColor: SignalGray},
		{name: "Zero multiplier falls back to one", current: 12000, compare: 12500, multiplier: 0, wantColor: SignalGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := SignalLightCheck(tt.current, tt.compare, tt.multiplier)
			assert.Equal(t, tt.wantColor, signal.Color)
			if tt.wantColor == SignalGray {
				assert.Equal(t, "-", signal.Tooltip)
			} else {
				assert.NotEqual(t, "-", signal.Tooltip)
			}
		})
	}
}

func TestSignalLightCheck_Tooltip(t *testing.T) {
	signal := SignalLightCheck(12000, 12500, 1)
	assert.Equal(t, SignalGreen, signal.Color)
	assert.Equal(t, "4.0% / 500만원", signal.Tooltip)
}

func TestSummarizeByAreaType(t *testing.T) {
	now := time.Now()
	listings := []model.Listing{
		{ComplexNo: "100001", AreaType: "59A", TransactionType: model.TransactionSale, Price: 120000, FloorLabel: "10/15", CollectedAt: now},
		{ComplexNo: "100001", AreaType: "59A", TransactionType: model.TransactionSale, Price: 125000, FloorLabel: "7/15", CollectedAt: now},
		{ComplexNo: "100001", AreaType: "59A", TransactionType: model.TransactionLease, Deposit: 95000, FloorLabel: "5/15", CollectedAt: now},
		{ComplexNo: "100001", AreaType: "59A", TransactionType: model.TransactionLease, Deposit: 100000, FloorLabel: "12/15", CollectedAt: now},
		{ComplexNo: "100001", AreaType: "84A", TransactionType: model.TransactionSale, Price: 150000, FloorLabel: "고", CollectedAt: now},
	}

	summaries := SummarizeByAreaType(listings, SummaryOptions{})
	require.Len(t, summaries, 2)

	s59 := summaries["59A"]
	assert.Equal(t, int64(120000), s59.SaleMin)
	assert.Equal(t, "10/15", s59.SaleFloor)
	assert.Equal(t, 2, s59.SaleCount)
	assert.Equal(t, int64(100000), s59.LeaseRepr) // 기본은 전세 최고가
	assert.Equal(t, "12/15", s59.LeaseFloor)
	assert.Equal(t, 2, s59.LeaseCount)
	assert.Equal(t, int64(20000), s59.Gap)
	assert.Equal(t, "83%", s59.LeaseRatio)
	assert.Equal(t, SignalGreen, s59.Signal.Color)

	s84 := summaries["84A"]
	assert.Equal(t, int64(150000), s84.SaleMin)
	assert.Equal(t, 1, s84.SaleCount)
	assert.Equal(t, 0, s84.LeaseCount)
	assert.Equal(t, int64(0), s84.Gap)
	assert.Equal(t, "-", s84.LeaseRatio)
	assert.Equal(t, SignalGray, s84.Signal.Color) // 비교 대상 없음
}

func TestSummarizeByAreaType_UseLowestLease(t *testing.T) {
	now := time.Now()
	listings := []model.Listing{
		{AreaType: "59A", TransactionType: model.TransactionSale, Price: 120000, CollectedAt: now},
		{AreaType: "59A", TransactionType: model.TransactionLease, Deposit: 95000, CollectedAt: now},
		{AreaType: "59A", TransactionType: model.TransactionLease, Deposit: 100000, CollectedAt: now},
	}

	summaries := SummarizeByAreaType(listings, SummaryOptions{UseLowestLease: true})
	s59 := summaries["59A"]
	assert.Equal(t, int64(95000), s59.LeaseRepr)
	assert.Equal(t, int64(25000), s59.Gap)
	assert.Equal(t, "79%", s59.LeaseRatio)
}

func TestSummarizeByAreaType_Empty(t *testing.T) {
	summaries := SummarizeByAreaType(nil, SummaryOptions{})
	assert.Empty(t, summaries)
}

func TestPriceChange(t *testing.T) {
	day := func(offset int) time.Time {
		return time.Date(2026, 8, 1+offset, 0, 0, 0, 0, time.UTC)
	}

	t.Run("Too few rows", func(t *testing.T) {
		history := []model.DailySummary{
			{ComplexNo: "100001", AreaType: "59A", RecordDate: day(0), SaleAvgPrice: ptr(int64(120000))},
		}
		assert.Nil(t, PriceChange(history, 7))
	})

	t.Run("Sale and lease change", func(t *testing.T) {
		history := []model.DailySummary{
			{
				ComplexNo: "100001", AreaType: "59A", RecordDate: day(0),
				SaleAvgPrice:  ptr(int64(120000)),
				LeaseAvgPrice: ptr(int64(100000)),
				GapInvestment: ptr(int64(20000)),
			},
			{
				ComplexNo: "100001", AreaType: "59A", RecordDate: day(7),
				SaleAvgPrice:  ptr(int64(126000)),
				LeaseAvgPrice: ptr(int64(99000)),
				GapInvestment: ptr(int64(27000)),
			},
		}

		report := PriceChange(history, 7)
		require.NotNil(t, report)
		assert.Equal(t, "100001", report.ComplexNo)
		assert.Equal(t, "59A", report.AreaType)
		assert.Equal(t, 7, report.PeriodDays)
		assert.Equal(t, "2026-08-01", report.StartDate)
		assert.Equal(t, "2026-08-08", report.EndDate)

		require.NotNil(t, report.SaleChange)
		assert.Equal(t, int64(6000), *report.SaleChange)
		require.NotNil(t, report.SaleChangePct)
		assert.Equal(t, 5.0, *report.SaleChangePct)

		require.NotNil(t, report.LeaseChange)
		assert.Equal(t, int64(-1000), *report.LeaseChange)
		require.NotNil(t, report.LeaseChangePct)
		assert.Equal(t, -1.0, *report.LeaseChangePct)

		require.NotNil(t, report.GapChange)
		assert.Equal(t, int64(7000), *report.GapChange)
	})

	t.Run("Missing baseline leaves fields empty", func(t *testing.T) {
		history := []model.DailySummary{
			{ComplexNo: "100001", AreaType: "59A", RecordDate: day(0)},
			{ComplexNo: "100001", AreaType: "59A", RecordDate: day(7), SaleAvgPrice: ptr(int64(126000))},
		}

		report := PriceChange(history, 7)
		require.NotNil(t, report)
		assert.Nil(t, report.SaleChange)
		assert.Nil(t, report.LeaseChange)
		assert.Nil(t, report.GapChange)
	})

	t.Run("Zero baseline avoids division", func(t *testing.T) {
		history := []model.DailySummary{
			{ComplexNo: "100001", AreaType: "59A", RecordDate: day(0), SaleAvgPrice: ptr(int64(0))},
			{ComplexNo: "100001", AreaType: "59A", RecordDate: day(7), SaleAvgPrice: ptr(int64(126000))},
		}

		report := PriceChange(history, 7)
		require.NotNil(t, report)
		assert.Nil(t, report.SaleChangePct)
	})
}
