// internal/handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/cevta/vat-license-backend/internal/i18n"
	"github.com/cevta/vat-license-backend/internal/middleware"
	"github.com/cevta/vat-license-backend/internal/services"
	"github.com/cevta/vat-license-backend/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// currentUserID reads the authenticated caller's ID set by the auth
// middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	raw, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	s, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		lang := middleware.GetLanguage(c)
		switch {
		case errors.Is(err, services.ErrUserExists):
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyAuthUserExists))
		case errors.Is(err, services.ErrPasswordMismatch):
			utils.ErrorResponse(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "Passwords do not match")
		default:
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
				return
			}
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		}
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, result)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		lang := middleware.GetLanguage(c)
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		case errors.Is(err, services.ErrUserSuspended):
			utils.ForbiddenResponse(c, "Account is suspended")
		default:
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
				return
			}
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "refresh_token is required")
		return
	}

	result, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		utils.UnauthorizedResponse(c, "Invalid or expired refresh token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		utils.NotFoundResponse(c, "User not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, user)
}
