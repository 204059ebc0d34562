// internal/services/license_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cevta/vat-license-backend/internal/models"
)

func TestLicenseVerification(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()

	applications := NewApplicationService(db, nil)
	licenses := NewLicenseService(db, cfg)
	admin := NewAdminService(db, licenses, nil)

	applicantUser := createTestUser(t, db, "applicant@example.com", models.RoleApplicant)
	adminUser := createTestUser(t, db, "admin@example.com", models.RoleAdmin)

	app, fieldErrs, err := applications.Submit(applicantUser.ID, validSubmitRequest())
	require.NoError(t, err)
	require.Empty(t, fieldErrs)

	approved, err := admin.Approve(app.ID, adminUser.ID)
	require.NoError(t, err)
	require.NotNil(t, approved.License)

	t.Run("verify by number", func(t *testing.T) {
		license, err := licenses.GetByNumber(approved.License.LicenseNumber)
		require.NoError(t, err)
		assert.Equal(t, "Rahim Uddin", license.HolderName)
	})

	t.Run("unknown number", func(t *testing.T) {
		_, err := licenses.GetByNumber("VCL-2026-XXXXXXXX")
		assert.ErrorIs(t, err, ErrLicenseNotFound)
	})

	t.Run("expired license still resolves", func(t *testing.T) {
		past := time.Now().AddDate(-6, 0, 0)
		require.NoError(t, db.Model(&models.License{}).
			Where("license_number = ?", approved.License.LicenseNumber).
			Updates(map[string]interface{}{
				"issue_date":  past,
				"expiry_date": past.AddDate(models.LicenseTermYears, 0, 0),
			}).Error)

		license, err := licenses.GetByNumber(approved.License.LicenseNumber)
		assert.ErrorIs(t, err, ErrLicenseExpired)
		require.NotNil(t, license)
		assert.Equal(t, "Rahim Uddin", license.HolderName)
	})

	t.Run("lookup by user", func(t *testing.T) {
		license, err := licenses.GetByUser(applicantUser.ID)
		require.NoError(t, err)
		assert.Equal(t, approved.License.LicenseNumber, license.LicenseNumber)
	})

	t.Run("verification url and qr", func(t *testing.T) {
		url := licenses.VerificationURL(approved.License.LicenseNumber)
		assert.Equal(t, "http://localhost:3000/verify/"+approved.License.LicenseNumber, url)

		png, err := licenses.QRPNG(approved.License.LicenseNumber)
		require.NoError(t, err)
		assert.NotEmpty(t, png)
	})
}
