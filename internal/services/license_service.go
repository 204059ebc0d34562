// internal/services/license_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/cevta/vat-license-backend/internal/config"
	"github.com/cevta/vat-license-backend/internal/models"
	"github.com/cevta/vat-license-backend/internal/utils"
)

var (
	ErrLicenseNotFound = errors.New("license not found")
	ErrLicenseExpired  = errors.New("license has expired")
)

type LicenseService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewLicenseService(db *gorm.DB, cfg *config.Config) *LicenseService {
	return &LicenseService{db: db, cfg: cfg}
}

// CreateForApplication issues a license inside the caller's transaction
// so approval and issuance commit or roll back together. Holder fields
// are copied from the applicant profile as it stands at approval time.
func (s *LicenseService) CreateForApplication(tx *gorm.DB, app *models.Application, applicant *models.Applicant) (*models.License, error) {
	issueDate := time.Now()
	license := &models.License{
		ApplicationID: app.ID,
		LicenseNumber: utils.GenerateLicenseNumber(),
		HolderName:    applicant.FullName,
		NID:           applicant.NID,
		BIN:           applicant.BIN,
		Address:       applicant.Address,
		IssueDate:     issueDate,
		ExpiryDate:    issueDate.AddDate(models.LicenseTermYears, 0, 0),
	}

	if err := tx.Create(license).Error; err != nil {
		return nil, fmt.Errorf("failed to create license: %w", err)
	}

	return license, nil
}

// GetByNumber serves the public verification endpoint. Expired licenses
// are still returned so the page can show the holder alongside the
// expiry state, with ErrLicenseExpired signalling validity.
func (s *LicenseService) GetByNumber(licenseNumber string) (*models.License, error) {
	var license models.License
	err := s.db.Where("license_number = ?", licenseNumber).First(&license).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, err
	}

	if license.IsExpired(time.Now()) {
		return &license, ErrLicenseExpired
	}

	return &license, nil
}

// GetByUser returns the newest license held by a user's applicant profile.
func (s *LicenseService) GetByUser(userID uuid.UUID) (*models.License, error) {
	var license models.License
	err := s.db.
		Select("licenses.*").
		Joins("JOIN applications ON applications.id = licenses.application_id").
		Joins("JOIN applicants ON applicants.id = applications.applicant_id").
		Where("applicants.user_id = ?", userID).
		Order("licenses.issue_date DESC").
		First(&license).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLicenseNotFound
		}
		return nil, err
	}
	return &license, nil
}

// VerificationURL is the public link encoded into the license QR code.
func (s *LicenseService) VerificationURL(licenseNumber string) string {
	return fmt.Sprintf("%s/verify/%s", s.cfg.Frontend.BaseURL, licenseNumber)
}

// QRPNG renders the verification QR code as a PNG image.
func (s *LicenseService) QRPNG(licenseNumber string) ([]byte, error) {
	return qrcode.Encode(s.VerificationURL(licenseNumber), qrcode.Medium, 256)
}
