package controller

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jwlee/aptgap-backend/internal/app/repository"
	"github.com/jwlee/aptgap-backend/internal/app/service"
	apperrors "github.com/jwlee/aptgap-backend/internal/errors"
	"github.com/jwlee/aptgap-backend/pkg/report"
)

// SummaryController 시세 요약/이력 컨트롤러
type SummaryController struct {
	listingService service.ListingService
}

// NewSummaryController 요약 컨트롤러 생성
func NewSummaryController(listingService service.ListingService) *SummaryController {
	return &SummaryController{
		listingService: listingService,
	}
}

// GetSummary 단지의 평형별 가격 요약 조회
// @Summary 평형별 요약 조회
// @Description 평형별 매매 최저가, 전세 대표가, 갭, 전세가율, 신호등을 조회합니다
// @Tags summaries
// @Produce json
// @Param no path string true "단지 번호"
// @Param lowest_lease query bool false "전세 최저가를 대표값으로 사용" default(false)
// @Param multiplier query int false "신호등 배율 (1~3)" default(1)
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/complexes/{no}/summary [get]
func (ctrl *SummaryController) GetSummary(c *gin.Context) {
	complexNo := c.Param("no")

	opts, ok := parseSummaryOptions(c)
	if !ok {
		return
	}

	summaries, err := ctrl.listingService.GetAreaSummaries(c.Request.Context(), complexNo, opts)
	if err != nil {
		if errors.Is(err, service.ErrComplexNotFound) {
			apperrors.NotFound(c, apperrors.ComplexNotFound, "단지를 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "시세 요약을 가져오는데 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summaries,
	})
}

// GetHistory 일별 집계 이력 조회
// @Summary 일별 시세 이력 조회
// @Tags summaries
// @Produce json
// @Param no path string true "단지 번호"
// @Param area_type query string true "평형 타입 (예: 59A)"
// @Param days query int false "조회 기간 (일)" default(30)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/complexes/{no}/history [get]
func (ctrl *SummaryController) GetHistory(c *gin.Context) {
	complexNo := c.Param("no")
	areaType := c.Query("area_type")
	if areaType == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "평형 타입이 필요합니다")
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		apperrors.BadRequest(c, apperrors.SummaryInvalidRange, "조회 기간이 올바르지 않습니다")
		return
	}

	history, err := ctrl.listingService.GetHistory(complexNo, areaType, days)
	if err != nil {
		apperrors.InternalError(c, "시세 이력을 가져오는데 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
		"count":   len(history),
	})
}

// GetPriceChange 기간 비교 가격 변동 조회
// @Summary 가격 변동 조회
// @Description 조회 기간의 최초/최종 집계를 비교한 변동폭을 반환합니다
// @Tags summaries
// @Produce json
// @Param no path string true "단지 번호"
// @Param area_type query string true "평형 타입"
// @Param days query int false "비교 기간 (일)" default(7)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/complexes/{no}/price-change [get]
func (ctrl *SummaryController) GetPriceChange(c *gin.Context) {
	complexNo := c.Param("no")
	areaType := c.Query("area_type")
	if areaType == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "평형 타입이 필요합니다")
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days <= 0 {
		apperrors.BadRequest(c, apperrors.SummaryInvalidRange, "비교 기간이 올바르지 않습니다")
		return
	}

	change, err := ctrl.listingService.GetPriceChange(complexNo, areaType, days)
	if err != nil {
		apperrors.InternalError(c, "가격 변동을 가져오는데 실패했습니다")
		return
	}
	if change == nil {
		apperrors.NotFound(c, apperrors.SummaryNotFound, "비교할 집계 데이터가 충분하지 않습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    change,
	})
}

// DownloadReport 단지 리포트 XLSX 다운로드
// @Summary 리포트 다운로드
// @Description 단지의 매물 또는 평형별 요약을 XLSX 파일로 내려받습니다
// @Tags summaries
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param no path string true "단지 번호"
// @Param type query string false "리포트 종류 (summary, listings)" default(summary)
// @Success 200 {file} binary
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/complexes/{no}/report [get]
func (ctrl *SummaryController) DownloadReport(c *gin.Context) {
	complexNo := c.Param("no")

	complex, err := ctrl.listingService.GetComplex(complexNo)
	if err != nil {
		if errors.Is(err, service.ErrComplexNotFound) {
			apperrors.NotFound(c, apperrors.ComplexNotFound, "단지를 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "단지 정보를 가져오는데 실패했습니다")
		return
	}

	reportType := c.DefaultQuery("type", "summary")

	var buf bytes.Buffer
	switch reportType {
	case "summary":
		opts, ok := parseSummaryOptions(c)
		if !ok {
			return
		}
		summaries, err := ctrl.listingService.GetAreaSummaries(c.Request.Context(), complexNo, opts)
		if err != nil {
			apperrors.InternalError(c, "시세 요약을 가져오는데 실패했습니다")
			return
		}
		if err := report.WriteSummariesXLSX(&buf, complex.ComplexName, summaries); err != nil {
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.ReportGenerateFailed, "리포트 생성에 실패했습니다")
			return
		}
	case "listings":
		listings, err := ctrl.listingService.GetListings(repository.ListingFilter{ComplexNo: complexNo})
		if err != nil {
			apperrors.InternalError(c, "매물 목록을 가져오는데 실패했습니다")
			return
		}
		if err := report.WriteListingsXLSX(&buf, complex.ComplexName, listings); err != nil {
			apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.ReportGenerateFailed, "리포트 생성에 실패했습니다")
			return
		}
	default:
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "리포트 종류는 summary 또는 listings여야 합니다")
		return
	}

	filename := fmt.Sprintf("%s_%s_%s.xlsx", complex.ComplexName, reportType, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// parseSummaryOptions 요약 옵션 쿼리 파싱. 실패 시 응답까지 처리하고 false 반환
func parseSummaryOptions(c *gin.Context) (service.SummaryOptions, bool) {
	opts := service.SummaryOptions{SignalMultiplier: 1}

	if lowest := c.Query("lowest_lease"); lowest != "" {
		v, err := strconv.ParseBool(lowest)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "lowest_lease 값이 올바르지 않습니다")
			return opts, false
		}
		opts.UseLowestLease = v
	}
	if mult := c.Query("multiplier"); mult != "" {
		v, err := strconv.Atoi(mult)
		if err != nil || v < 1 || v > 3 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "신호등 배율은 1~3 사이여야 합니다")
			return opts, false
		}
		opts.SignalMultiplier = v
	}
	return opts, true
}
