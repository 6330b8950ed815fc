package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"error-report-api/internal/domain"
	"error-report-api/internal/dto"
	"error-report-api/internal/repository"
	"error-report-api/internal/response"
)

// Default admin account for air-gapped deployments without an identity
// provider. Created by the seed command.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123!"
)

// AuthService defines the interface for authentication and user identity
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpsertUser(ctx context.Context, req *dto.UpsertUserRequest) (*domain.User, error)
	EnsureDefaultAdmin(ctx context.Context) (*domain.User, error)
}

// authServiceImpl is the implementation of AuthService
type authServiceImpl struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

// Login verifies local credentials and issues a JWT
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid username or password", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to look up user", err.Error())
	}

	if user.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)) != nil {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid username or password", "")
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to issue token", err.Error())
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))
	return &dto.LoginResponse{Token: token, User: *user}, nil
}

// GetUser returns the identity record for an authenticated session
func (s *authServiceImpl) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "User not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch user", err.Error())
	}
	return user, nil
}

// UpsertUser inserts or updates an identity record keyed by ID. Called on
// every login from an external identity provider.
func (s *authServiceImpl) UpsertUser(ctx context.Context, req *dto.UpsertUserRequest) (*domain.User, error) {
	if req.ID == "" {
		return nil, response.NewAppError(response.ErrCodeValidation, "Invalid fields: id", "")
	}

	user, err := s.userRepo.Upsert(ctx, &domain.User{
		ID:              req.ID,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to upsert user", err.Error())
	}
	return user, nil
}

// EnsureDefaultAdmin creates the default admin account if it does not exist
func (s *authServiceImpl) EnsureDefaultAdmin(ctx context.Context) (*domain.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	username := DefaultAdminUsername
	passwordHash := string(hash)
	email := "admin@srmaas.local"

	user, err := s.userRepo.Upsert(ctx, &domain.User{
		ID:           uuid.New().String(),
		Email:        &email,
		FirstName:    "관리자",
		LastName:     "시스템",
		Username:     &username,
		PasswordHash: &passwordHash,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Default admin account created", zap.String("username", username))
	return user, nil
}

func (s *authServiceImpl) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
