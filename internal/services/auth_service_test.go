// internal/services/auth_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/heaponte4/aerea/internal/models"
	"github.com/heaponte4/aerea/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.db = setupTestDB(suite.T())
	cfg := testConfig(suite.T())
	utils.SetJWTSecret(cfg.JWT.SecretKey)
	suite.service = NewAuthService(suite.db, cfg, NewMemoryDenylist())
}

func (suite *AuthServiceTestSuite) TestSignupSplitsName() {
	resp, err := suite.service.Signup(&SignupRequest{
		Email:    "jane@example.com",
		Password: "password123",
		Name:     "Jane van der Berg",
	})

	suite.Require().NoError(err)
	suite.Equal("Jane", resp.User.FirstName)
	suite.Equal("van der Berg", resp.User.LastName)
	suite.Equal(models.RoleBroker, resp.User.Role)
	suite.NotEmpty(resp.AccessToken)
	suite.NotEmpty(resp.RefreshToken)
}

func (suite *AuthServiceTestSuite) TestSignupDuplicateEmail() {
	_, err := suite.service.Signup(&SignupRequest{
		Email:    "jane@example.com",
		Password: "password123",
		Name:     "Jane Doe",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Signup(&SignupRequest{
		Email:    "jane@example.com",
		Password: "password456",
		Name:     "Other Jane",
	})

	suite.Require().Error(err)
	suite.IsType(&ValidationError{}, err)
	suite.Contains(err.Error(), "already exists")
}

func (suite *AuthServiceTestSuite) TestSignupPhotographerCreatesProfile() {
	resp, err := suite.service.Signup(&SignupRequest{
		Email:    "photo@example.com",
		Password: "password123",
		Name:     "Pat Lens",
		Role:     models.RolePhotographer,
	})
	suite.Require().NoError(err)

	var profile models.PhotographerProfile
	suite.Require().NoError(suite.db.First(&profile, "user_id = ?", resp.User.ID).Error)
	suite.Equal(0, profile.CompletedJobs)
}

func (suite *AuthServiceTestSuite) TestSignupRejectsShortPassword() {
	_, err := suite.service.Signup(&SignupRequest{
		Email:    "jane@example.com",
		Password: "short",
		Name:     "Jane Doe",
	})

	suite.Require().Error(err)
	suite.IsType(&ValidationError{}, err)
}

func (suite *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := suite.service.Signup(&SignupRequest{
		Email:    "jane@example.com",
		Password: "password123",
		Name:     "Jane Doe",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong-password",
	})
	suite.Require().ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.service.Login(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	suite.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginStampsLastLogin() {
	_, err := suite.service.Signup(&SignupRequest{
		Email:    "jane@example.com",
		Password: "password123",
		Name:     "Jane Doe",
	})
	suite.Require().NoError(err)

	resp, err := suite.service.Login(&LoginRequest{
		Email:    "jane@example.com",
		Password: "password123",
	})
	suite.Require().NoError(err)
	suite.NotNil(resp.User.LastLoginAt)
}

func (suite *AuthServiceTestSuite) TestRefreshIssuesAccessToken() {
	ctx := context.Background()

	signup, err := suite.service.Signup(&SignupRequest{
		Email:    "jane@example.com",
		Password: "password123",
		Name:     "Jane Doe",
	})
	suite.Require().NoError(err)

	access, err := suite.service.Refresh(ctx, signup.RefreshToken)
	suite.Require().NoError(err)

	claims, err := utils.ValidateJWT(access)
	suite.Require().NoError(err)
	suite.Equal(signup.User.ID.String(), claims.UserID)
	suite.Equal("broker", claims.Role)
}

func (suite *AuthServiceTestSuite) TestLogoutRevokesRefreshToken() {
	ctx := context.Background()

	signup, err := suite.service.Signup(&SignupRequest{
		Email:    "jane@example.com",
		Password: "password123",
		Name:     "Jane Doe",
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.Logout(ctx, signup.RefreshToken))

	_, err = suite.service.Refresh(ctx, signup.RefreshToken)
	suite.Require().True(errors.Is(err, ErrTokenRevoked))

	// Second logout with the same token is rejected.
	err = suite.service.Logout(ctx, signup.RefreshToken)
	suite.Require().True(errors.Is(err, ErrTokenRevoked))
}

func (suite *AuthServiceTestSuite) TestRefreshRejectsGarbage() {
	_, err := suite.service.Refresh(context.Background(), "not-a-token")
	suite.Require().True(errors.Is(err, ErrTokenRevoked))
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
