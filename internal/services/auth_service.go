// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/config"
	"github.com/heaponte4/aerea/internal/database"
	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	denylist TokenDenylist
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Name     string      `json:"name" validate:"required"`
	Role     models.Role `json:"role,omitempty" validate:"omitempty,role"`
	Company  *string     `json:"company,omitempty"`
	Phone    *string     `json:"phone,omitempty"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access"`
	RefreshToken string       `json:"refresh"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config, denylist TokenDenylist) *AuthService {
	return &AuthService{
		db:       db,
		cfg:      cfg,
		denylist: denylist,
	}
}

func (s *AuthService) Signup(req *SignupRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	role := req.Role
	if role == "" {
		role = models.RoleBroker
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, NewValidationError("User already exists")
	}

	user := &models.User{
		Email:   req.Email,
		Role:    role,
		Company: req.Company,
		Phone:   req.Phone,
	}
	user.SetName(req.Name)

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return NewValidationError("User already exists")
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		if role == models.RolePhotographer {
			profile := &models.PhotographerProfile{UserID: user.ID}
			if err := tx.Create(profile).Error; err != nil {
				return fmt.Errorf("failed to create photographer profile: %w", err)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, NewValidationError(utils.ValidationDetail(err))
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	user.LastLoginAt = &now
	s.db.Save(&user)

	return s.issueTokens(&user)
}

// Refresh trades a live refresh token for a new access token. Denylisted
// tokens are treated the same as expired ones.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", ErrTokenRevoked
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("denylist lookup failed: %w", err)
	}
	if revoked {
		return "", ErrTokenRevoked
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return "", ErrTokenRevoked
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTokenRevoked
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	return utils.GenerateJWT(user.ID, user.Email, string(user.Role), s.cfg.JWT.AccessTokenTTL)
}

// Logout permanently revokes the presented refresh token by denylisting its
// JTI for the remainder of the token's lifetime.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return ErrTokenRevoked
	}

	revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("denylist lookup failed: %w", err)
	}
	if revoked {
		return ErrTokenRevoked
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.denylist.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Profile").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "User"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *AuthService) issueTokens(user *models.User) (*AuthResponse, error) {
	accessToken, err := utils.GenerateJWT(user.ID, user.Email, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWT.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
