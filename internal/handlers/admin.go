// internal/handlers/admin.go
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

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(middleware.GetLanguage(c), i18n.KeyInternalError))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, stats)
}

func (h *AdminHandler) ListApplications(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	filter := services.ApplicationFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
	}

	apps, total, err := h.adminService.GetApplications(filter, params)
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(middleware.GetLanguage(c), i18n.KeyInternalError))
		return
	}

	utils.SuccessResponseWithMeta(c, http.StatusOK, apps, utils.BuildMeta(params, total))
}

func (h *AdminHandler) GetApplication(c *gin.Context) {
	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid application ID")
		return
	}

	app, err := h.adminService.GetApplicationDetail(applicationID)
	if err != nil {
		lang := middleware.GetLanguage(c)
		if errors.Is(err, services.ErrApplicationNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyApplicationNotFound))
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, app)
}

func (h *AdminHandler) ListNotifications(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	notifications, total, err := h.adminService.GetNotifications(c.Query("status"), params)
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(middleware.GetLanguage(c), i18n.KeyInternalError))
		return
	}

	utils.SuccessResponseWithMeta(c, http.StatusOK, notifications, utils.BuildMeta(params, total))
}

func (h *AdminHandler) MarkNotificationRead(c *gin.Context) {
	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid notification ID")
		return
	}

	if err := h.adminService.MarkNotificationRead(notificationID); err != nil {
		utils.NotFoundResponse(c, "Notification not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"marked_read": true})
}

// decide resolves the shared plumbing of the three review actions.
func (h *AdminHandler) decide(c *gin.Context, action func(applicationID, adminID uuid.UUID) (interface{}, error)) {
	adminID, ok := currentUserID(c)
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
	result, err := action(applicationID, adminID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrApplicationNotFound):
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyApplicationNotFound))
		case errors.Is(err, services.ErrStaleApplication):
			utils.ConflictResponse(c, "Application was already decided by another reviewer")
		case errors.Is(err, services.ErrReasonRequired):
			utils.ErrorResponse(c, http.StatusBadRequest, "REASON_REQUIRED", "A return reason is required")
		default:
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		}
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *AdminHandler) StartReview(c *gin.Context) {
	h.decide(c, func(applicationID, adminID uuid.UUID) (interface{}, error) {
		return h.adminService.StartReview(applicationID, adminID)
	})
}

func (h *AdminHandler) Approve(c *gin.Context) {
	h.decide(c, func(applicationID, adminID uuid.UUID) (interface{}, error) {
		return h.adminService.Approve(applicationID, adminID)
	})
}

type returnRequest struct {
	Reason string `json:"reason" binding:"required"`
}

func (h *AdminHandler) Return(c *gin.Context) {
	var req returnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "REASON_REQUIRED", "A return reason is required")
		return
	}

	h.decide(c, func(applicationID, adminID uuid.UUID) (interface{}, error) {
		return h.adminService.Return(applicationID, adminID, req.Reason)
	})
}
