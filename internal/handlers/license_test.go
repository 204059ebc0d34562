// internal/handlers/license_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cevta/vat-license-backend/internal/middleware"
	"github.com/cevta/vat-license-backend/internal/models"
	"github.com/cevta/vat-license-backend/internal/services"
)

func setupVerifyRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	cfg := testConfig()
	handler := NewLicenseHandler(services.NewLicenseService(db, cfg))

	r := gin.New()
	r.Use(middleware.Language())
	r.GET("/api/v1/verify/:licenseNumber", handler.Verify)
	r.GET("/api/v1/verify/:licenseNumber/qr", handler.QRCode)

	return r, db
}

func seedLicense(t *testing.T, db *gorm.DB, number string, expiry time.Time) {
	t.Helper()

	applicant := &models.Applicant{
		UserID:   uuid.New(),
		FullName: "Karima Begum",
		NID:      "1234567890",
		TIN:      "123456789012",
	}
	require.NoError(t, db.Create(applicant).Error)

	now := time.Now()
	app := &models.Application{
		ApplicantID:       applicant.ID,
		ApplicationNumber: "VAT-2026-TESTSEED",
		Status:            models.ApplicationStatusApproved,
		SubmittedAt:       &now,
	}
	require.NoError(t, db.Create(app).Error)

	license := &models.License{
		ApplicationID: app.ID,
		LicenseNumber: number,
		HolderName:    applicant.FullName,
		NID:           applicant.NID,
		IssueDate:     expiry.AddDate(-models.LicenseTermYears, 0, 0),
		ExpiryDate:    expiry,
	}
	require.NoError(t, db.Create(license).Error)
}

func TestVerifyValidLicense(t *testing.T) {
	r, db := setupVerifyRouter(t)
	seedLicense(t, db, "VCL-2026-ABCD2345", time.Now().AddDate(2, 0, 0))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verify/VCL-2026-ABCD2345", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":true`)
	assert.Contains(t, w.Body.String(), "Karima Begum")
}

func TestVerifyExpiredLicense(t *testing.T) {
	r, db := setupVerifyRouter(t)
	seedLicense(t, db, "VCL-2019-OLD12345", time.Now().AddDate(-1, 0, 0))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verify/VCL-2019-OLD12345", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"valid":false`)
}

func TestVerifyUnknownLicense(t *testing.T) {
	r, _ := setupVerifyRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verify/VCL-2026-MISSING1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyQRCodePNG(t *testing.T) {
	r, db := setupVerifyRouter(t)
	seedLicense(t, db, "VCL-2026-QRTEST22", time.Now().AddDate(2, 0, 0))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/verify/VCL-2026-QRTEST22/qr", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	// PNG magic bytes.
	assert.True(t, len(w.Body.Bytes()) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes()[:4])
}
