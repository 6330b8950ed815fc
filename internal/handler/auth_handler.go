package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"error-report-api/internal/dto"
	"error-report-api/internal/middleware"
	"error-report-api/internal/response"
	"error-report-api/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login godoc
// @Summary      로그인
// @Description  로컬 계정으로 로그인하고 JWT를 발급받습니다
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "로그인 요청"
// @Success      200 {object} response.SuccessResponse{data=dto.LoginResponse} "로그인 성공"
// @Failure      401 {object} response.ErrorResponse "잘못된 계정 정보"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Logout godoc
// @Summary      로그아웃
// @Description  토큰은 상태가 없으므로 클라이언트 폐기를 안내합니다
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse "로그아웃 성공"
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	response.SendSuccess(c, http.StatusOK, gin.H{"message": "로그아웃되었습니다"})
}

// GetUser godoc
// @Summary      내 정보 조회
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=domain.User} "사용자 조회 성공"
// @Failure      401 {object} response.ErrorResponse "인증 필요"
// @Router       /auth/user [get]
func (h *AuthHandler) GetUser(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, user)
}
