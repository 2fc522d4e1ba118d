package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jwlee/aptgap-backend/internal/app/model"
	"github.com/jwlee/aptgap-backend/internal/app/service"
	apperrors "github.com/jwlee/aptgap-backend/internal/errors"
)

// ImportController 수집 데이터 반영 컨트롤러
type ImportController struct {
	importService service.ImportService
}

// NewImportController 임포트 컨트롤러 생성
func NewImportController(importService service.ImportService) *ImportController {
	return &ImportController{
		importService: importService,
	}
}

// ImportPayload 수집 payload 반영
// @Summary 수집 데이터 반영
// @Description 크롤러가 수집한 매물 JSON을 저장하고 일별 집계를 갱신합니다
// @Tags imports
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/imports [post]
func (ctrl *ImportController) ImportPayload(c *gin.Context) {
	var payload model.ImportPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		apperrors.BadRequest(c, apperrors.ImportInvalidPayload, "수집 데이터 형식이 올바르지 않습니다")
		return
	}

	result, err := ctrl.importService.ImportPayload(c.Request.Context(), &payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPayload) {
			apperrors.BadRequest(c, apperrors.ImportInvalidPayload, "수집 데이터 형식이 올바르지 않습니다")
			return
		}
		if errors.Is(err, service.ErrImportFailed) && result != nil {
			// 일부 단지만 실패한 경우: 처리 내역과 함께 207 응답
			c.JSON(http.StatusMultiStatus, gin.H{
				"success": false,
				"error":   apperrors.ImportPartialFailure,
				"data":    result,
			})
			return
		}
		apperrors.InternalError(c, "수집 데이터 반영에 실패했습니다")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
