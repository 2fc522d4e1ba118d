package floor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		wantTier  int
		wantClass Class
	}{
		{name: "고층 마커", label: "고층(13층 이상)", wantTier: 15, wantClass: ClassHigh},
		{name: "중층 마커", label: "중층(6~12층)", wantTier: 9, wantClass: ClassMid},
		{name: "저층 마커", label: "저층", wantTier: 3, wantClass: ClassLow},
		{name: "숫자만", label: "7", wantTier: 7, wantClass: ClassMid},
		{name: "N층 형식", label: "5층", wantTier: 5, wantClass: ClassMid},
		{name: "저층 숫자", label: "2층", wantTier: 2, wantClass: ClassLow},
		{name: "고층 숫자", label: "14층", wantTier: 14, wantClass: ClassHigh},
		{name: "현재/전체", label: "5/10층", wantTier: 5, wantClass: ClassMid},
		{name: "탑층은 HIGH", label: "10/10층", wantTier: 10, wantClass: ClassHigh},
		{name: "빈 문자열", label: "", wantTier: 0, wantClass: ClassUnknown},
		{name: "해석 불가", label: "로얄층", wantTier: 0, wantClass: ClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, class := Classify(tt.label)
			assert.Equal(t, tt.wantTier, tier)
			assert.Equal(t, tt.wantClass, class)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		wantCurrent int
		wantTotal   int
	}{
		{name: "현재/전체", label: "5/10층", wantCurrent: 5, wantTotal: 10},
		{name: "총층수 불명", label: "5층", wantCurrent: 5, wantTotal: 0},
		{name: "저층 마커", label: "저층", wantCurrent: 3, wantTotal: 0},
		{name: "중층 마커", label: "중층", wantCurrent: 9, wantTotal: 0},
		{name: "해석 불가", label: "복층형", wantCurrent: 0, wantTotal: 0},
		{name: "빈 문자열", label: "", wantCurrent: 0, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, total := Parse(tt.label)
			assert.Equal(t, tt.wantCurrent, current)
			assert.Equal(t, tt.wantTotal, total)
		})
	}
}
