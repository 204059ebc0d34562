// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/cevta/vat-license-backend/internal/models"
	"github.com/cevta/vat-license-backend/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.Secret)
	s.service = NewAuthService(s.db, cfg)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:           "new@example.com",
		Password:        "Passw0rdOk",
		ConfirmPassword: "Passw0rdOk",
	}
}

func (s *AuthServiceTestSuite) TestRegisterDefaultsToApplicantRole() {
	result, err := s.service.Register(registerRequest())
	s.Require().NoError(err)

	s.Equal(models.RoleApplicant, result.User.Role)
	s.Equal(models.UserStatusActive, result.User.Status)
	s.NotEmpty(result.Tokens.AccessToken)
	s.NotEmpty(result.Tokens.RefreshToken)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, err := s.service.Register(registerRequest())
	s.Require().NoError(err)

	_, err = s.service.Register(registerRequest())
	s.ErrorIs(err, ErrUserExists)
}

func (s *AuthServiceTestSuite) TestRegisterPasswordMismatch() {
	req := registerRequest()
	req.ConfirmPassword = "Different1"

	_, err := s.service.Register(req)
	s.ErrorIs(err, ErrPasswordMismatch)
}

func (s *AuthServiceTestSuite) TestRegisterWeakPassword() {
	req := registerRequest()
	req.Password = "alllowercase"
	req.ConfirmPassword = "alllowercase"

	_, err := s.service.Register(req)
	s.Error(err)
	s.NotErrorIs(err, ErrPasswordMismatch)
}

func (s *AuthServiceTestSuite) TestLogin() {
	_, err := s.service.Register(registerRequest())
	s.Require().NoError(err)

	result, err := s.service.Login(&LoginRequest{Email: "new@example.com", Password: "Passw0rdOk"})
	s.Require().NoError(err)
	s.NotEmpty(result.Tokens.AccessToken)
	s.NotNil(result.User.LastLoginAt)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, err := s.service.Register(registerRequest())
	s.Require().NoError(err)

	_, err = s.service.Login(&LoginRequest{Email: "new@example.com", Password: "WrongPass1"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginUnknownEmail() {
	_, err := s.service.Login(&LoginRequest{Email: "ghost@example.com", Password: "Passw0rdOk"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginSuspendedAccount() {
	result, err := s.service.Register(registerRequest())
	s.Require().NoError(err)

	s.Require().NoError(s.db.Model(result.User).Update("status", models.UserStatusSuspended).Error)

	_, err = s.service.Login(&LoginRequest{Email: "new@example.com", Password: "Passw0rdOk"})
	s.ErrorIs(err, ErrUserSuspended)
}

func (s *AuthServiceTestSuite) TestRefreshToken() {
	result, err := s.service.Register(registerRequest())
	s.Require().NoError(err)

	refreshed, err := s.service.RefreshToken(result.Tokens.RefreshToken)
	s.Require().NoError(err)
	s.Equal(result.User.ID, refreshed.User.ID)
	s.NotEmpty(refreshed.Tokens.AccessToken)
}

func (s *AuthServiceTestSuite) TestRefreshWithGarbageToken() {
	_, err := s.service.RefreshToken("not-a-token")
	s.Error(err)
}
