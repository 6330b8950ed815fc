package handler

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"error-report-api/internal/classify"
	"error-report-api/internal/dto"
	"error-report-api/internal/metrics"
	"error-report-api/internal/response"
)

type ClassifyHandler struct {
	suggester classify.Suggester
	metrics   *metrics.Metrics
}

func NewClassifyHandler(suggester classify.Suggester, m *metrics.Metrics) *ClassifyHandler {
	return &ClassifyHandler{
		suggester: suggester,
		metrics:   m,
	}
}

// GenerateTitle godoc
// @Summary      오류 제목 자동 생성
// @Description  신고 내용으로 제목을 제안합니다. AI 제공자가 없으면 키워드 규칙으로 생성합니다
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body dto.SuggestTitleRequest true "제목 생성 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.SuggestTitleResponse} "제목 생성 성공"
// @Failure      400 {object} response.ErrorResponse "내용이 너무 짧음"
// @Router       /ai/generate-title [post]
func (h *ClassifyHandler) GenerateTitle(c *gin.Context) {
	var req dto.SuggestTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if len([]rune(content)) < classify.MinTitleContentLength {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation,
			"내용을 10자 이상 입력해주세요")
		return
	}

	h.metrics.IncrementClassifyRequest("title")

	title, err := h.suggester.SuggestTitle(c.Request.Context(), content)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.SuggestTitleResponse{Title: title})
}

// AnalyzeSystem godoc
// @Summary      시스템 분류 자동 추천
// @Description  신고 내용으로 담당 시스템 분류를 제안합니다
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body dto.SuggestCategoryRequest true "분류 추천 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.SuggestCategoryResponse} "분류 추천 성공"
// @Failure      400 {object} response.ErrorResponse "내용이 너무 짧음"
// @Router       /ai/analyze-system [post]
func (h *ClassifyHandler) AnalyzeSystem(c *gin.Context) {
	var req dto.SuggestCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	content := strings.TrimSpace(req.Content)
	if len([]rune(content)) < classify.MinCategoryContentLength {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation,
			"내용을 5자 이상 입력해주세요")
		return
	}

	h.metrics.IncrementClassifyRequest("category")

	system, err := h.suggester.SuggestCategory(c.Request.Context(), content)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.SuggestCategoryResponse{System: system})
}

// AnalyzeImage godoc
// @Summary      첨부 이미지 분석
// @Description  첨부된 스크린샷을 분석합니다. 비전 모델이 없으면 작성 안내 문구를 돌려줍니다
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        request body dto.AnalyzeImageRequest true "이미지 분석 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.AnalyzeImageResponse} "이미지 분석 성공"
// @Failure      400 {object} response.ErrorResponse "이미지 없음"
// @Router       /ai/analyze-image [post]
func (h *ClassifyHandler) AnalyzeImage(c *gin.Context) {
	var req dto.AnalyzeImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	encoded := strings.TrimSpace(req.Image)
	if encoded == "" {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "이미지가 필요합니다")
		return
	}
	// Strip a data URL prefix if the client sent one
	if idx := strings.Index(encoded, ","); idx != -1 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	image, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "잘못된 이미지 데이터입니다")
		return
	}

	h.metrics.IncrementClassifyRequest("image")

	analysis, err := h.suggester.AnalyzeImage(c.Request.Context(), image)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, dto.AnalyzeImageResponse{Analysis: analysis})
}
