// internal/handlers/applicant.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/cevta/vat-license-backend/internal/draft"
	"github.com/cevta/vat-license-backend/internal/i18n"
	"github.com/cevta/vat-license-backend/internal/middleware"
	"github.com/cevta/vat-license-backend/internal/services"
	"github.com/cevta/vat-license-backend/internal/utils"
)

type ApplicantHandler struct {
	applicantService *services.ApplicantService
	storageService   *services.StorageService
}

func NewApplicantHandler(applicantService *services.ApplicantService, storageService *services.StorageService) *ApplicantHandler {
	return &ApplicantHandler{
		applicantService: applicantService,
		storageService:   storageService,
	}
}

func (h *ApplicantHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	applicant, err := h.applicantService.GetProfileByUser(userID)
	if err != nil {
		lang := middleware.GetLanguage(c)
		if errors.Is(err, services.ErrApplicantNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyProfileNotFound))
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, applicant)
}

func (h *ApplicantHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	applicant, err := h.applicantService.UpdateProfile(userID, &req)
	if err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
			return
		}
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	utils.SuccessResponse(c, http.StatusOK, applicant)
}

// UploadDocument stores one attachment ahead of submission and returns
// the reference the client later places into the submit payload.
func (h *ApplicantHandler) UploadDocument(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "A file upload is required")
		return
	}

	ref, err := h.storageService.UploadDocument(fileHeader, "documents")
	if err != nil {
		lang := middleware.GetLanguage(c)
		switch {
		case errors.Is(err, draft.ErrFileTooLarge):
			utils.ErrorResponse(c, http.StatusBadRequest, "FILE_TOO_LARGE", i18n.T(lang, i18n.KeyDocumentTooLarge))
		case errors.Is(err, draft.ErrUnsupportedMimeType):
			utils.ErrorResponse(c, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", i18n.T(lang, i18n.KeyDocumentBadType))
		default:
			utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		}
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, ref)
}
