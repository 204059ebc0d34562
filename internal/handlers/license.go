// internal/handlers/license.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cevta/vat-license-backend/internal/i18n"
	"github.com/cevta/vat-license-backend/internal/middleware"
	"github.com/cevta/vat-license-backend/internal/services"
	"github.com/cevta/vat-license-backend/internal/utils"
)

type LicenseHandler struct {
	licenseService *services.LicenseService
}

func NewLicenseHandler(licenseService *services.LicenseService) *LicenseHandler {
	return &LicenseHandler{licenseService: licenseService}
}

// MyLicense returns the caller's issued license, if any.
func (h *LicenseHandler) MyLicense(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	lang := middleware.GetLanguage(c)
	license, err := h.licenseService.GetByUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrLicenseNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyLicenseNotFound))
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"license":          license,
		"verification_url": h.licenseService.VerificationURL(license.LicenseNumber),
	})
}

// Verify is the public endpoint behind the QR code. It discloses the
// holder name and validity window, never the full application.
func (h *LicenseHandler) Verify(c *gin.Context) {
	licenseNumber := c.Param("licenseNumber")
	lang := middleware.GetLanguage(c)

	license, err := h.licenseService.GetByNumber(licenseNumber)
	if err != nil && !errors.Is(err, services.ErrLicenseExpired) {
		if errors.Is(err, services.ErrLicenseNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyLicenseNotFound))
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		return
	}

	valid := !errors.Is(err, services.ErrLicenseExpired)
	message := i18n.KeyLicenseValid
	if !valid {
		message = i18n.KeyLicenseExpired
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{
		"valid":          valid,
		"message":        i18n.T(lang, message),
		"license_number": license.LicenseNumber,
		"holder_name":    license.HolderName,
		"issue_date":     license.IssueDate,
		"expiry_date":    license.ExpiryDate,
	})
}

// QRCode streams the verification QR as a PNG.
func (h *LicenseHandler) QRCode(c *gin.Context) {
	licenseNumber := c.Param("licenseNumber")
	lang := middleware.GetLanguage(c)

	if _, err := h.licenseService.GetByNumber(licenseNumber); err != nil && !errors.Is(err, services.ErrLicenseExpired) {
		if errors.Is(err, services.ErrLicenseNotFound) {
			utils.NotFoundResponse(c, i18n.T(lang, i18n.KeyLicenseNotFound))
			return
		}
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		return
	}

	png, err := h.licenseService.QRPNG(licenseNumber)
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyInternalError))
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
