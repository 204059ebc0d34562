// internal/handlers/application.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cevta/vat-license-backend/internal/i18n"
	"github.com/cevta/vat-license-backend/internal/middleware"
	"github.com/cevta/vat-license-backend/internal/services"
	"github.com/cevta/vat-license-backend/internal/utils"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
}

func NewApplicationHandler(applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Submit runs the full submission pipeline. Validation problems come
// back as a 400 with the complete field error list; success returns the
// created application with its tracking number.
func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	lang := middleware.GetLanguage(c)
	app, fieldErrs, err := h.applicationService.Submit(userID, &req)
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		return
	}
	if len(fieldErrs) > 0 {
		utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
			i18n.T(lang, i18n.KeyApplicationInvalid), fieldErrs)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, app)
}

func (h *ApplicationHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	apps, err := h.applicationService.GetApplicationsByUser(userID)
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(middleware.GetLanguage(c), i18n.KeyInternalError))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, apps)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid application ID")
		return
	}

	lang := middleware.GetLanguage(c)
	app, err := h.applicationService.GetApplication(userID, applicationID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyApplicationNotFound))
		case errors.Is(err, services.ErrNotApplicationOwner):
			utils.ForbiddenResponse(c, "You do not have access to this application")
		default:
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, app)
}
