package pricefmt

import (
	"fmt"
	"strconv"
)

// Format 만원 단위 가격을 억/만원 표기로 변환
//
// 예시: 0 → "0", 5000 → "5,000", 120000 → "12억", 120500 → "12억 500"
func Format(manwon int64) string {
	if manwon == 0 {
		return "0"
	}

	eok := manwon / 10000
	man := manwon % 10000

	switch {
	case eok > 0 && man > 0:
		return fmt.Sprintf("%d억 %s", eok, Comma(man))
	case eok > 0:
		return fmt.Sprintf("%d억", eok)
	default:
		return Comma(manwon)
	}
}

// Comma 천 단위 구분 기호 삽입 (예: 5000 → "5,000")
func Comma(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := strconv.FormatInt(v, 10)
	n := len(s)
	if n <= 3 {
		return sign + s
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return sign + string(out)
}

// PerPyeong 평당 가격 계산 (만원/3.3m²)
func PerPyeong(price int64, areaM2 float64) int64 {
	if areaM2 <= 0 {
		return 0
	}
	pyeong := areaM2 / 3.3
	return int64(float64(price) / pyeong)
}
