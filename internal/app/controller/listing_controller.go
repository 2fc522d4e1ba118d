package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/internal/app/repository"
	"github.com/jwlee/aptgap-backend/internal/app/service"
	apperrors "github.com/jwlee/aptgap-backend/internal/errors"
)

// ListingController 단지/매물 조회 컨트롤러
type ListingController struct {
	listingService service.ListingService
}

// NewListingController 매물 컨트롤러 생성
func NewListingController(listingService service.ListingService) *ListingController {
	return &ListingController{
		listingService: listingService,
	}
}

// GetComplexes 등록된 단지 목록 조회
// @Summary 단지 목록 조회
// @Tags complexes
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/complexes [get]
func (ctrl *ListingController) GetComplexes(c *gin.Context) {
	complexes, err := ctrl.listingService.GetComplexes()
	if err != nil {
		apperrors.InternalError(c, "단지 목록을 가져오는데 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complexes,
		"count":   len(complexes),
	})
}

// GetListings 단지의 현재 매물 조회
// @Summary 매물 조회
// @Description 단지의 현재 매물을 조회합니다. 평형/거래유형/면적 범위로 필터링할 수 있습니다
// @Tags complexes
// @Produce json
// @Param no path string true "단지 번호"
// @Param area_type query string false "평형 타입 (예: 59A)"
// @Param transaction_type query string false "거래유형 (SALE, LEASE)"
// @Param min_area query number false "전용면적 하한 (m²)"
// @Param max_area query number false "전용면적 상한 (m²)"
// @Param limit query int false "최대 건수"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/complexes/{no}/listings [get]
func (ctrl *ListingController) GetListings(c *gin.Context) {
	complexNo := c.Param("no")
	if complexNo == "" {
		apperrors.BadRequest(c, apperrors.ComplexNoEmpty, "단지 번호가 필요합니다")
		return
	}

	if _, err := ctrl.listingService.GetComplex(complexNo); err != nil {
		if errors.Is(err, service.ErrComplexNotFound) {
			apperrors.NotFound(c, apperrors.ComplexNotFound, "단지를 찾을 수 없습니다")
			return
		}
		apperrors.InternalError(c, "단지 정보를 가져오는데 실패했습니다")
		return
	}

	filter := repository.ListingFilter{
		ComplexNo: complexNo,
		AreaType:  c.Query("area_type"),
	}

	if txType := c.Query("transaction_type"); txType != "" {
		switch model.TransactionType(txType) {
		case model.TransactionSale, model.TransactionLease:
			filter.TransactionType = model.TransactionType(txType)
		default:
			apperrors.BadRequest(c, apperrors.ListingInvalidType, "잘못된 거래유형입니다")
			return
		}
	}
	if minArea := c.Query("min_area"); minArea != "" {
		v, err := strconv.ParseFloat(minArea, 64)
		if err != nil || v < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "면적 범위가 올바르지 않습니다")
			return
		}
		filter.MinArea = v
	}
	if maxArea := c.Query("max_area"); maxArea != "" {
		v, err := strconv.ParseFloat(maxArea, 64)
		if err != nil || v < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "면적 범위가 올바르지 않습니다")
			return
		}
		filter.MaxArea = v
	}
	if limit := c.Query("limit"); limit != "" {
		v, err := strconv.Atoi(limit)
		if err != nil || v < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "limit 값이 올바르지 않습니다")
			return
		}
		filter.Limit = v
	}

	listings, err := ctrl.listingService.GetListings(filter)
	if err != nil {
		apperrors.InternalError(c, "매물 목록을 가져오는데 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    listings,
		"count":   len(listings),
	})
}
