package dto

import "error-report-api/internal/domain"

// LoginRequest is the local-credential login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// UpsertUserRequest is the insert-or-update payload keyed by user ID
type UpsertUserRequest struct {
	ID              string  `json:"id" binding:"required"`
	Email           *string `json:"email,omitempty"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	ProfileImageURL string  `json:"profileImageUrl"`
}
