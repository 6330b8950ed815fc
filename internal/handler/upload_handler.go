package handler

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"error-report-api/internal/client"
	"error-report-api/internal/response"
)

type UploadHandler struct {
	store client.FileStore
}

func NewUploadHandler(store client.FileStore) *UploadHandler {
	return &UploadHandler{
		store: store,
	}
}

// ServeFile godoc
// @Summary      첨부 파일 조회
// @Tags         uploads
// @Produce      octet-stream
// @Param        filename path string true "저장된 파일 이름"
// @Success      200 {file} binary "파일 내용"
// @Failure      404 {object} response.ErrorResponse "파일을 찾을 수 없음"
// @Router       /uploads/{filename} [get]
func (h *UploadHandler) ServeFile(c *gin.Context) {
	name := c.Param("filename")

	file, err := h.store.Open(c.Request.Context(), name)
	if err != nil {
		response.SendError(c, http.StatusNotFound, response.ErrCodeNotFound, "File not found")
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")

	c.Status(http.StatusOK)
	io.Copy(c.Writer, file)
}
