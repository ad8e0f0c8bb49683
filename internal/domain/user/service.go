// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
	"github.com/your-org/storefront-api/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles account registration and authentication
type Service struct {
	db     *gorm.DB
	config *config.Config
	jwt    *auth.JWTManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
		jwt:    auth.NewJWTManager(cfg),
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account
type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthResponse carries the account plus a fresh token pair
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Register creates an account and returns a token pair
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, apperrors.New(apperrors.KindValidation, "email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to check email", err)
	}

	hash, err := auth.HashPassword(req.Password, s.config.Security.BcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to hash password", err)
	}

	account := User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to create account", err)
	}

	return s.issueTokens(&account)
}

// Login verifies credentials and returns a token pair
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var account User
	err := s.db.WithContext(ctx).Where("email = ? AND is_active = ?", email, true).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.KindAuthentication, "invalid email or password")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load account", err)
	}

	if !auth.CheckPassword(req.Password, account.PasswordHash) {
		return nil, apperrors.New(apperrors.KindAuthentication, "invalid email or password")
	}

	now := time.Now().UTC()
	s.db.WithContext(ctx).Model(&account).Update("last_login_at", now)

	return s.issueTokens(&account)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindAuthentication, "invalid refresh token", err)
	}

	var account User
	err = s.db.WithContext(ctx).Where("id = ? AND is_active = ?", claims.UserID, true).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.KindAuthentication, "account no longer active")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load account", err)
	}

	return s.issueTokens(&account)
}

// GetProfile returns the account's public view
func (s *Service) GetProfile(ctx context.Context, userID uint) (*UserResponse, error) {
	var account User
	err := s.db.WithContext(ctx).First(&account, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.New(apperrors.KindNotFound, "account not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to load account", err)
	}

	resp := toResponse(&account)
	return &resp, nil
}

func (s *Service) issueTokens(account *User) (*AuthResponse, error) {
	access, err := s.jwt.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to sign access token", err)
	}
	refresh, err := s.jwt.GenerateRefreshToken(account.ID, account.Email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindDataStore, "failed to sign refresh token", err)
	}

	return &AuthResponse{
		User:         toResponse(account),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

func toResponse(account *User) UserResponse {
	return UserResponse{
		ID:        account.ID,
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}
}
