package pricefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		manwon int64
		want   string
	}{
		{name: "0원", manwon: 0, want: "0"},
		{name: "억 미만", manwon: 5000, want: "5,000"},
		{name: "억 단위 딱 떨어짐", manwon: 120000, want: "12억"},
		{name: "억 + 만원", manwon: 120500, want: "12억 500"},
		{name: "억 + 천 단위 만원", manwon: 121500, want: "12억 1,500"},
		{name: "백억 이상", manwon: 1200000, want: "120억"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.manwon))
		})
	}
}

func TestComma(t *testing.T) {
	assert.Equal(t, "100", Comma(100))
	assert.Equal(t, "5,000", Comma(5000))
	assert.Equal(t, "1,234,567", Comma(1234567))
	assert.Equal(t, "-5,000", Comma(-5000))
}

func TestPerPyeong(t *testing.T) {
	// 59.8m² ≈ 18.12평, 120000만원 → 약 6622만원/평
	got := PerPyeong(120000, 59.8)
	assert.InDelta(t, 6622, got, 1)

	assert.Equal(t, int64(0), PerPyeong(120000, 0))
}
