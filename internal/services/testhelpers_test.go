// internal/services/testhelpers_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cevta/vat-license-backend/internal/config"
	"github.com/cevta/vat-license-backend/internal/draft"
	"github.com/cevta/vat-license-backend/internal/models"
	"github.com/cevta/vat-license-backend/internal/utils"
)

func paginationDefaults() utils.PaginationParams {
	return utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}
}

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

func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Email:  email,
		Role:   role,
		Status: models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Passw0rdOk"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func testDocInput() *DocumentInput {
	return &DocumentInput{
		FileName: "doc.pdf",
		FileKey:  "documents/abc.pdf",
		FileURL:  "/uploads/documents/abc.pdf",
		Size:     256 * 1024,
		MimeType: "application/pdf",
	}
}

func validSubmitRequest() *SubmitApplicationRequest {
	photo := *testDocInput()
	photo.MimeType = "image/jpeg"

	return &SubmitApplicationRequest{
		General: GeneralInfoInput{
			FullName:      "Rahim Uddin",
			NID:           "1234567890123",
			TIN:           "123456789012",
			ApplicantType: "general",
			DateOfBirth:   "1985-03-14",
			Nationality:   "Bangladeshi",
			Address:       "House 12, Road 5, Dhanmondi, Dhaka",
			CellNumber:    "01712345678",
			Email:         "rahim@example.com",
		},
		Education: []EducationInput{
			{
				DegreeName:           "SSC",
				AchievementYear:      2001,
				EducationalInstitute: "Dhaka High School",
				Grade:                "First Division",
			},
		},
		Documents: DocumentsInput{
			SecondaryCertificate: testDocInput(),
			HighestCertificate:   testDocInput(),
			NIDCopy:              testDocInput(),
			PayOrder:             testDocInput(),
			PassportPhotos:       []DocumentInput{photo},
		},
		PayOrder: PayOrderInput{
			Amount:   "5000",
			Number:   "PO-998877",
			Bank:     "Sonali Bank",
			Branch:   "Motijheel",
			Date:     "2026-01-10",
			Attested: true,
		},
		Declaration: draft.Declaration{TermsAgreed: true},
	}
}
