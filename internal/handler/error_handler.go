package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"error-report-api/internal/client"
	"error-report-api/internal/dto"
	"error-report-api/internal/middleware"
	"error-report-api/internal/response"
	"error-report-api/internal/service"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ErrorHandler struct {
	errorService service.ErrorService
	store        client.FileStore
	maxFileSize  int64
	maxFiles     int
}

func NewErrorHandler(errorService service.ErrorService, store client.FileStore, maxFileSize int64, maxFiles int) *ErrorHandler {
	return &ErrorHandler{
		errorService: errorService,
		store:        store,
		maxFileSize:  maxFileSize,
		maxFiles:     maxFiles,
	}
}

// CreateError godoc
// @Summary      오류 신고 등록
// @Description  새로운 오류 신고를 등록합니다. multipart 요청은 이미지 첨부를 함께 받습니다
// @Tags         errors
// @Accept       json
// @Accept       multipart/form-data
// @Produce      json
// @Param        request body dto.CreateErrorRequest true "오류 신고 등록 요청"
// @Success      201 {object} response.SuccessResponse{data=domain.ErrorReport} "오류 신고 등록 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Router       /errors [post]
func (h *ErrorHandler) CreateError(c *gin.Context) {
	reporterID := c.GetString(middleware.UserIDKey)

	var req dto.CreateErrorRequest
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
			return
		}

		attachments, err := h.saveUploadedFiles(c)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		req.Attachments = attachments
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
			return
		}
		// Attachment paths are only accepted through multipart upload
		req.Attachments = nil
	}

	report, err := h.errorService.CreateError(c.Request.Context(), reporterID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, report)
}

// saveUploadedFiles stores the multipart image attachments and returns
// their serving paths
func (h *ErrorHandler) saveUploadedFiles(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid multipart form", err.Error())
	}

	files := form.File["attachments"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > h.maxFiles {
		return nil, response.NewAppError(response.ErrCodeValidation,
			"Too many attachments (max "+strconv.Itoa(h.maxFiles)+")", "")
	}

	var paths []string
	for _, fileHeader := range files {
		if fileHeader.Size > h.maxFileSize {
			return nil, response.NewAppError(response.ErrCodeValidation,
				"Attachment too large: "+fileHeader.Filename, "")
		}
		contentType := fileHeader.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			return nil, response.NewAppError(response.ErrCodeValidation,
				"Only image attachments are allowed: "+fileHeader.Filename, "")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to read attachment", err.Error())
		}

		name, err := h.store.Save(c.Request.Context(), fileHeader.Filename, file, contentType)
		file.Close()
		if err != nil {
			return nil, response.NewAppError(response.ErrCodeInternal, "Failed to store attachment", err.Error())
		}

		paths = append(paths, "/uploads/"+name)
	}
	return paths, nil
}

// GetErrors godoc
// @Summary      오류 신고 목록 조회
// @Description  검색어와 상태 필터, 페이지네이션으로 오류 신고 목록을 조회합니다
// @Tags         errors
// @Produce      json
// @Param        search query string false "제목/내용 검색어"
// @Param        status query string false "상태 필터 (모든 상태 = 필터 해제)"
// @Param        page query int false "페이지 번호 (기본 1)"
// @Param        limit query int false "페이지 크기 (기본 20, 최대 100)"
// @Success      200 {object} response.SuccessResponse{data=dto.ErrorListResponse} "오류 신고 목록 조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Router       /errors [get]
func (h *ErrorHandler) GetErrors(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil {
		limit = 20
	}

	filter := dto.ErrorListFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	list, err := h.errorService.GetErrors(c.Request.Context(), filter)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, list)
}

// GetError godoc
// @Summary      오류 신고 단건 조회
// @Tags         errors
// @Produce      json
// @Param        errorId path int true "Error ID"
// @Success      200 {object} response.SuccessResponse{data=domain.ErrorReport} "오류 신고 조회 성공"
// @Failure      404 {object} response.ErrorResponse "오류 신고를 찾을 수 없음"
// @Router       /errors/{errorId} [get]
func (h *ErrorHandler) GetError(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("errorId"), 10, 64)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid error ID")
		return
	}

	report, err := h.errorService.GetError(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, report)
}

// UpdateError godoc
// @Summary      오류 신고 수정
// @Description  전달된 필드만 수정합니다. 생략한 필드는 유지됩니다
// @Tags         errors
// @Accept       json
// @Produce      json
// @Param        errorId path int true "Error ID"
// @Param        request body dto.UpdateErrorRequest true "오류 신고 수정 요청"
// @Success      200 {object} response.SuccessResponse{data=domain.ErrorReport} "오류 신고 수정 성공"
// @Failure      400 {object} response.ErrorResponse "잘못된 요청"
// @Failure      404 {object} response.ErrorResponse "오류 신고를 찾을 수 없음"
// @Router       /errors/{errorId} [patch]
func (h *ErrorHandler) UpdateError(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("errorId"), 10, 64)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid error ID")
		return
	}

	var req dto.UpdateErrorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	report, err := h.errorService.UpdateError(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, report)
}

// DeleteError godoc
// @Summary      오류 신고 삭제
// @Tags         errors
// @Produce      json
// @Param        errorId path int true "Error ID"
// @Success      200 {object} response.SuccessResponse "오류 신고 삭제 성공"
// @Failure      404 {object} response.ErrorResponse "오류 신고를 찾을 수 없음"
// @Router       /errors/{errorId} [delete]
func (h *ErrorHandler) DeleteError(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("errorId"), 10, 64)
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid error ID")
		return
	}

	if err := h.errorService.DeleteError(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, gin.H{"message": "오류 신고가 삭제되었습니다"})
}
