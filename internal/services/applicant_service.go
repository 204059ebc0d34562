// internal/services/applicant_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cevta/vat-license-backend/internal/models"
	"github.com/cevta/vat-license-backend/internal/utils"
)

var ErrApplicantNotFound = errors.New("applicant profile not found")

type ApplicantService struct {
	db *gorm.DB
}

func NewApplicantService(db *gorm.DB) *ApplicantService {
	return &ApplicantService{db: db}
}

type UpdateProfileRequest struct {
	FullName      string `json:"full_name" validate:"required,min=2,max=255"`
	NID           string `json:"nid" validate:"required,nid"`
	TIN           string `json:"tin" validate:"required,tin"`
	BIN           string `json:"bin" validate:"omitempty,bin"`
	ApplicantType string `json:"applicant_type" validate:"required,oneof=general firm company"`
	DateOfBirth   string `json:"date_of_birth" validate:"required"`
	Nationality   string `json:"nationality" validate:"required,max=100"`
	Address       string `json:"address" validate:"required,max=1000"`
	CellNumber    string `json:"cell_number" validate:"required,bd_mobile"`
	Email         string `json:"email" validate:"required,email"`
	Designation   string `json:"designation" validate:"max=255"`
}

// GetProfileByUser returns the applicant profile with education history.
func (s *ApplicantService) GetProfileByUser(userID uuid.UUID) (*models.Applicant, error) {
	var applicant models.Applicant
	err := s.db.Preload("Education").Where("user_id = ?", userID).First(&applicant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return &applicant, nil
}

// UpdateProfile upserts the applicant profile for a user account.
// A profile created here is later linked to applications on submission.
func (s *ApplicantService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.Applicant, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, errors.New("date_of_birth must be in YYYY-MM-DD format")
	}

	var applicant models.Applicant
	err = s.db.Where("user_id = ?", userID).First(&applicant).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	applicant.UserID = userID
	applicant.FullName = req.FullName
	applicant.NID = req.NID
	applicant.TIN = req.TIN
	applicant.BIN = req.BIN
	applicant.ApplicantType = models.ApplicantType(req.ApplicantType)
	applicant.DateOfBirth = dob
	applicant.Nationality = req.Nationality
	applicant.Address = req.Address
	applicant.CellNumber = req.CellNumber
	applicant.Email = req.Email
	applicant.Designation = req.Designation

	if err := s.db.Save(&applicant).Error; err != nil {
		return nil, err
	}

	return &applicant, nil
}
