package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the gin context key holding the authenticated user ID
const UserIDKey = "user_id"

func abortUnauthorized(c *gin.Context, message, korean string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
		"message": korean,
	})
	c.Abort()
}

// Auth returns a middleware that validates JWT tokens locally
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", "인증이 필요합니다")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format", "잘못된 인증 헤더 형식입니다")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token", "유효하지 않거나 만료된 토큰입니다")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims", "유효하지 않은 토큰 정보입니다")
			return
		}

		// Extract user ID from claims (support multiple claim formats)
		var userID string
		if uid, ok := claims["user_id"].(string); ok {
			userID = uid
		} else if sub, ok := claims["sub"].(string); ok {
			userID = sub
		} else {
			abortUnauthorized(c, "User ID not found in token", "토큰에서 사용자 ID를 찾을 수 없습니다")
			return
		}

		// Store user ID in context for downstream use
		c.Set(UserIDKey, userID)

		c.Next()
	}
}
