package floor

import (
	"regexp"
	"strconv"
	"strings"
)

// Class 층 구분
type Class string

const (
	ClassLow     Class = "LOW"     // 저층 (3층 이하)
	ClassMid     Class = "MID"     // 중층 (4~12층)
	ClassHigh    Class = "HIGH"    // 고층 (13층 이상)
	ClassUnknown Class = "UNKNOWN" // 층수 불명
)

// 층 라벨 마커 토큰 및 대표 층수
const (
	markerHigh = "고"
	markerMid  = "중"
	markerLow  = "저"

	TierHigh = 15 // "고층" 대표값
	TierMid  = 9  // "중층" 대표값
	TierLow  = 3  // "저층" 대표값
)

var currentTotalPattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)`)
var plainFloorPattern = regexp.MustCompile(`^(\d+)\s*층?$`)

// Classify 층 라벨을 (층수, 구분)으로 변환
//
// 우선순위: 고층 마커 → 중층 마커 → 숫자("7", "7층") → "현재/전체" 패턴("5/10층")
// → 저층 마커 → 불명(0, UNKNOWN).
// 해석 불가 라벨은 0/UNKNOWN으로 일급 상태로 취급한다 (임의의 층수로 간주하지 않음).
func Classify(label string) (int, Class) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, ClassUnknown
	}

	if strings.Contains(label, markerHigh) {
		return TierHigh, ClassHigh
	}
	if strings.Contains(label, markerMid) {
		return TierMid, ClassMid
	}

	if m := plainFloorPattern.FindStringSubmatch(label); m != nil {
		tier, _ := strconv.Atoi(m[1])
		return tier, classFromTier(tier)
	}

	if m := currentTotalPattern.FindStringSubmatch(label); m != nil {
		current, _ := strconv.Atoi(m[1])
		total, _ := strconv.Atoi(m[2])
		if current == total {
			// 탑층은 중층으로 취급하지 않음
			return current, ClassHigh
		}
		return current, classFromTier(current)
	}

	if strings.Contains(label, markerLow) {
		return TierLow, ClassLow
	}

	return 0, ClassUnknown
}

// Parse 층 라벨에서 (현재층, 총층수) 추출
//
// 총층수를 알 수 없는 형식("7층", "중층" 등)은 총층수 0을 반환한다.
// 총층수 0은 "불명"이며 탑층/저층 판정 시 확정 판단에 사용하면 안 된다.
func Parse(label string) (current, total int) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, 0
	}

	if m := currentTotalPattern.FindStringSubmatch(label); m != nil {
		current, _ = strconv.Atoi(m[1])
		total, _ = strconv.Atoi(m[2])
		return current, total
	}

	tier, class := Classify(label)
	if class == ClassUnknown {
		return 0, 0
	}
	return tier, 0
}

// HasLowMarker 라벨에 저층 마커 포함 여부
func HasLowMarker(label string) bool {
	return strings.Contains(label, markerLow)
}

func classFromTier(tier int) Class {
	switch {
	case tier <= 0:
		return ClassUnknown
	case tier <= 3:
		return ClassLow
	case tier <= 12:
		return ClassMid
	default:
		return ClassHigh
	}
}
