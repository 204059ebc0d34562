// internal/handlers/auth_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cevta/vat-license-backend/internal/config"
	"github.com/cevta/vat-license-backend/internal/middleware"
	"github.com/cevta/vat-license-backend/internal/models"
	"github.com/cevta/vat-license-backend/internal/services"
	"github.com/cevta/vat-license-backend/internal/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Applicant{},
		&models.EducationDegree{},
		&models.Application{},
		&models.Document{},
		&models.License{},
		&models.AuditLog{},
		&models.AdminNotification{},
	))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			AccessTokenTTL:  1,
			RefreshTokenTTL: 24,
		},
		Frontend: config.FrontendConfig{BaseURL: "http://localhost:3000"},
	}
}

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	cfg := testConfig()
	utils.SetJWTSecret(cfg.JWT.Secret)

	authService := services.NewAuthService(db, cfg)
	handler := NewAuthHandler(authService)

	r := gin.New()
	r.Use(middleware.Language())
	r.POST("/api/v1/auth/register", handler.Register)
	r.POST("/api/v1/auth/login", handler.Login)
	r.POST("/api/v1/auth/refresh", handler.Refresh)
	r.GET("/api/v1/auth/me", middleware.AuthRequired(), handler.Me)

	return r, db
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := postJSON(t, r, "/api/v1/auth/register", gin.H{
		"email":            "new@example.com",
		"password":         "Passw0rdOk",
		"confirm_password": "Passw0rdOk",
	}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	r, _ := setupAuthRouter(t)

	body := gin.H{
		"email":            "dup@example.com",
		"password":         "Passw0rdOk",
		"confirm_password": "Passw0rdOk",
	}
	postJSON(t, r, "/api/v1/auth/register", body, nil)
	w := postJSON(t, r, "/api/v1/auth/register", body, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestRegisterValidationErrors(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := postJSON(t, r, "/api/v1/auth/register", gin.H{
		"email":            "not-an-email",
		"password":         "weak",
		"confirm_password": "weak",
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)
}

func TestLoginAndMe(t *testing.T) {
	r, _ := setupAuthRouter(t)

	postJSON(t, r, "/api/v1/auth/register", gin.H{
		"email":            "user@example.com",
		"password":         "Passw0rdOk",
		"confirm_password": "Passw0rdOk",
	}, nil)

	w := postJSON(t, r, "/api/v1/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "Passw0rdOk",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		Data struct {
			Tokens struct {
				AccessToken string `json:"access_token"`
			} `json:"tokens"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Data.Tokens.AccessToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.Data.Tokens.AccessToken)
	me := httptest.NewRecorder()
	r.ServeHTTP(me, req)

	assert.Equal(t, http.StatusOK, me.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	r, _ := setupAuthRouter(t)

	w := postJSON(t, r, "/api/v1/auth/login", gin.H{
		"email":    "ghost@example.com",
		"password": "Whatever1",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeWithoutToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeWithMangledToken(t *testing.T) {
	r, _ := setupAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
