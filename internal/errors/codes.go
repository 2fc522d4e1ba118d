package errors

// 에러 코드 상수 정의
// 형식: CATEGORY_SPECIFIC_DETAIL
// 프론트엔드에서 이 코드를 기반으로 메시지를 매핑함

const (
	// ==================== 검증 (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // 잘못된 입력
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // 잘못된 ID
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // 잘못된 형식
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // 범위 초과
	ValidationRequired      = "VALIDATION_REQUIRED"       // 필수 항목

	// ==================== 리소스 (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // 리소스 없음
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // 이미 존재
	ResourceConflict      = "RESOURCE_CONFLICT"       // 충돌

	// ==================== 단지 (COMPLEX_) ====================
	ComplexNotFound = "COMPLEX_NOT_FOUND" // 단지 없음
	ComplexNoEmpty  = "COMPLEX_NO_EMPTY"  // 단지 번호 누락

	// ==================== 매물 (LISTING_) ====================
	ListingNotFound        = "LISTING_NOT_FOUND"         // 매물 없음
	ListingInvalidType     = "LISTING_INVALID_TYPE"      // 잘못된 거래유형
	ListingInvalidAreaType = "LISTING_INVALID_AREA_TYPE" // 잘못된 평형 타입

	// ==================== 시세 집계 (SUMMARY_) ====================
	SummaryNotFound     = "SUMMARY_NOT_FOUND"     // 집계 데이터 없음
	SummaryInvalidRange = "SUMMARY_INVALID_RANGE" // 잘못된 조회 기간

	// ==================== 수집/임포트 (IMPORT_) ====================
	ImportInvalidPayload = "IMPORT_INVALID_PAYLOAD" // 잘못된 수집 데이터
	ImportNoFiles        = "IMPORT_NO_FILES"        // 수집 파일 없음
	ImportPartialFailure = "IMPORT_PARTIAL_FAILURE" // 일부 단지 처리 실패
	ImportFailed         = "IMPORT_FAILED"          // 수집 반영 실패

	// ==================== 리포트 (REPORT_) ====================
	ReportGenerateFailed = "REPORT_GENERATE_FAILED" // 리포트 생성 실패

	// ==================== 내부 오류 (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // 서버 오류
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // DB 오류
	InternalCacheError    = "INTERNAL_CACHE_ERROR"    // 캐시 오류
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // 설정 오류
)
