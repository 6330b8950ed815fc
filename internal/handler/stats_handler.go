package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"error-report-api/internal/response"
	"error-report-api/internal/service"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetErrorStats godoc
// @Summary      상태별 오류 통계
// @Description  대시보드 카드용 상태별 신고 건수를 조회합니다
// @Tags         stats
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.ErrorStatsResponse} "상태별 통계 조회 성공"
// @Router       /stats/errors [get]
func (h *StatsHandler) GetErrorStats(c *gin.Context) {
	stats, err := h.statsService.GetErrorStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}

// GetWeeklyStats godoc
// @Summary      주별 오류 추이
// @Description  최근 7주의 주별 신고/해결 건수를 조회합니다
// @Tags         stats
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.WeeklyStatsResponse} "주별 통계 조회 성공"
// @Router       /stats/weekly [get]
func (h *StatsHandler) GetWeeklyStats(c *gin.Context) {
	stats, err := h.statsService.GetWeeklyStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}

// GetCategoryStats godoc
// @Summary      시스템 분류별 오류 통계
// @Tags         stats
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.CategoryStatsResponse} "분류별 통계 조회 성공"
// @Router       /stats/categories [get]
func (h *StatsHandler) GetCategoryStats(c *gin.Context) {
	stats, err := h.statsService.GetCategoryStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, stats)
}
