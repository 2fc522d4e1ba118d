package service

import (
	"testing"

	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func saleRaw(area float64, floorLabel string) model.RawListing {
	return model.RawListing{
		AreaType:        "59A",
		ExclusiveArea:   area,
		TransactionType: model.TransactionSale,
		Price:           100000,
		FloorLabel:      floorLabel,
	}
}

func TestAdmit_AreaBands(t *testing.T) {
	cfg := DefaultFilterConfig()

	tests := []struct {
		name     string
		area     float64
		wantOK   bool
		wantRule string
	}{
		{name: "59 type lower bound", area: 56, wantOK: true},
		{name: "59 type upper bound", area: 62, wantOK: true},
		{name: "75 type lower bound", area: 72, wantOK: true},
		{name: "75 type upper bound", area: 78, wantOK: true},
		{name: "84 type lower bound", area: 81, wantOK: true},
		{name: "84 type upper bound", area: 87, wantOK: true},
		{name: "Between bands", area: 65, wantOK: false, wantRule: RuleAreaBand},
		{name: "Below all bands", area: 40, wantOK: false, wantRule: RuleAreaBand},
		{name: "Above all bands", area: 100, wantOK: false, wantRule: RuleAreaBand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, rule := Admit(saleRaw(tt.area, "10/15"), cfg)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRule, rule)
		})
	}
}

func TestAdmit_EmptyBandsDisableAreaFilter(t *testing.T) {
	cfg := DefaultFilterConfig()
	cfg.AreaBands = nil

	// 면적 구간이 비면 면적 필터는 꺼지지만 평수 상한은 그대로 적용된다
	ok, rule := Admit(saleRaw(65, "10/15"), cfg)
	assert.True(t, ok)
	assert.Empty(t, rule)

	ok, rule = Admit(saleRaw(150, "10/15"), cfg)
	assert.False(t, ok)
	assert.Equal(t, RuleLargeArea, rule)
}

func TestAdmit_SaleFloorRules(t *testing.T) {
	cfg := DefaultFilterConfig()

	tests := []struct {
		name     string
		label    string
		wantOK   bool
		wantRule string
	}{
		{name: "Mid floor of tall building", label: "10/15", wantOK: true},
		{name: "High marker", label: "고", wantOK: true},
		{name: "Mid marker", label: "중", wantOK: true},
		{name: "Low marker", label: "저", wantOK: false, wantRule: RuleFloor},
		{name: "Unknown floor", label: "", wantOK: false, wantRule: RuleFloor},
		{name: "Garbage label", label: "???", wantOK: false, wantRule: RuleFloor},
		{name: "First floor", label: "1/15", wantOK: false, wantRule: RuleFloor},
		{name: "Third floor of tall building", label: "3/15", wantOK: false, wantRule: RuleFloor},
		{name: "Top floor", label: "15/15", wantOK: false, wantRule: RuleFloor},
		{name: "Fourth floor of five", label: "4/5", wantOK: true},
		{name: "Plain digit mid", label: "7", wantOK: true},
		{name: "Plain digit low", label: "2", wantOK: false, wantRule: RuleFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, rule := Admit(saleRaw(59, tt.label), cfg)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRule, rule)
		})
	}
}

func TestAdmit_LeaseBypassesFloorRules(t *testing.T) {
	cfg := DefaultFilterConfig()

	labels := []string{"", "저", "1/15", "15/15", "???"}
	for _, label := range labels {
		raw := model.RawListing{
			AreaType:        "59A",
			ExclusiveArea:   59,
			TransactionType: model.TransactionLease,
			Deposit:         50000,
			FloorLabel:      label,
		}
		ok, rule := Admit(raw, cfg)
		assert.True(t, ok, "lease with floor label %q should be admitted", label)
		assert.Empty(t, rule)
	}
}

func TestAdmit_Seango(t *testing.T) {
	cfg := DefaultFilterConfig()

	tests := []struct {
		name   string
		note   string
		wantOK bool
	}{
		{name: "No note", note: "", wantOK: true},
		{name: "Plain note", note: "올수리 깨끗한 집", wantOK: true},
		{name: "Seango keyword", note: "세안고 매매", wantOK: false},
		{name: "Kkigo keyword", note: "전세 끼고 매매", wantOK: false},
		{name: "Ango keyword", note: "전세 안고", wantOK: false},
		{name: "Seungye keyword", note: "보증금 승계 조건", wantOK: false},
		{name: "Tenant keyword", note: "세입자 거주 중", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := saleRaw(59, "10/15")
			raw.Note = tt.note
			ok, rule := Admit(raw, cfg)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, RuleSeango, rule)
			}
		})
	}
}

func TestAdmit_SeangoDisabled(t *testing.T) {
	cfg := DefaultFilterConfig()
	cfg.ExcludeSeango = false

	raw := saleRaw(59, "10/15")
	raw.Note = "세안고"
	ok, _ := Admit(raw, cfg)
	assert.True(t, ok)
}

func TestAdmit_LargeArea(t *testing.T) {
	cfg := DefaultFilterConfig()
	cfg.AreaBands = nil // 평수 상한만 검증

	// 35평 = 115.5m² 초과 매물 제외
	ok, rule := Admit(saleRaw(120, "10/15"), cfg)
	assert.False(t, ok)
	assert.Equal(t, RuleLargeArea, rule)

	cfg.IncludeLargeArea = true
	ok, rule = Admit(saleRaw(120, "10/15"), cfg)
	assert.True(t, ok)
	assert.Empty(t, rule)
}
