// internal/services/application_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cevta/vat-license-backend/internal/database"
	"github.com/cevta/vat-license-backend/internal/draft"
	"github.com/cevta/vat-license-backend/internal/models"
	"github.com/cevta/vat-license-backend/internal/utils"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrNotApplicationOwner = errors.New("application belongs to another applicant")
)

type ApplicationService struct {
	db           *gorm.DB
	notification *NotificationService
}

func NewApplicationService(db *gorm.DB, notification *NotificationService) *ApplicationService {
	return &ApplicationService{db: db, notification: notification}
}

type DocumentInput struct {
	FileName string `json:"file_name"`
	FileKey  string `json:"file_key"`
	FileURL  string `json:"file_url"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}

func (d DocumentInput) toFileRef() draft.FileRef {
	return draft.FileRef{
		FileName: d.FileName,
		FileKey:  d.FileKey,
		FileURL:  d.FileURL,
		Size:     d.Size,
		MimeType: d.MimeType,
	}
}

type GeneralInfoInput struct {
	FullName      string `json:"full_name"`
	NID           string `json:"nid"`
	TIN           string `json:"tin"`
	BIN           string `json:"bin"`
	ApplicantType string `json:"applicant_type"`
	DateOfBirth   string `json:"date_of_birth"`
	Nationality   string `json:"nationality"`
	Address       string `json:"address"`
	CellNumber    string `json:"cell_number"`
	Email         string `json:"email"`
	Designation   string `json:"designation"`
}

type EducationInput struct {
	DegreeName           string `json:"degree_name"`
	AchievementYear      int    `json:"achievement_year"`
	EducationalInstitute string `json:"educational_institute"`
	Grade                string `json:"grade"`
	SpecialAchievement   string `json:"special_achievement"`
}

type DocumentsInput struct {
	SecondaryCertificate *DocumentInput  `json:"secondary_certificate"`
	HighestCertificate   *DocumentInput  `json:"highest_certificate"`
	NIDCopy              *DocumentInput  `json:"nid_copy"`
	PayOrder             *DocumentInput  `json:"pay_order"`
	PassportPhotos       []DocumentInput `json:"passport_photos"`
}

type PayOrderInput struct {
	Amount   string `json:"amount"`
	Number   string `json:"number"`
	Bank     string `json:"bank"`
	Branch   string `json:"branch"`
	Date     string `json:"date"`
	Attested bool   `json:"attested"`
}

type SubmitApplicationRequest struct {
	General     GeneralInfoInput  `json:"general"`
	Education   []EducationInput  `json:"education"`
	Documents   DocumentsInput    `json:"documents"`
	PayOrder    PayOrderInput     `json:"pay_order"`
	Declaration draft.Declaration `json:"declaration"`
}

// ToDraft assembles a draft from the request payload. Parse and slot
// problems are reported as field errors alongside whatever Validate
// finds later, so the client sees everything in one response.
func (r *SubmitApplicationRequest) ToDraft() (*draft.Draft, []draft.FieldError) {
	var errs []draft.FieldError
	d := draft.NewDraft()

	d.General = draft.GeneralInfo{
		FullName:      r.General.FullName,
		NID:           r.General.NID,
		TIN:           r.General.TIN,
		BIN:           r.General.BIN,
		ApplicantType: models.ApplicantType(r.General.ApplicantType),
		Nationality:   r.General.Nationality,
		Address:       r.General.Address,
		CellNumber:    r.General.CellNumber,
		Email:         r.General.Email,
		Designation:   r.General.Designation,
	}
	if r.General.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", r.General.DateOfBirth)
		if err != nil {
			errs = append(errs, draft.FieldError{Field: "date_of_birth", Message: "Date of birth must be in YYYY-MM-DD format"})
		} else {
			d.General.DateOfBirth = dob
		}
	}

	d.Education = d.Education[:0]
	for _, e := range r.Education {
		d.Education = append(d.Education, draft.EducationEntry{
			DegreeName:           e.DegreeName,
			AchievementYear:      e.AchievementYear,
			EducationalInstitute: e.EducationalInstitute,
			Grade:                e.Grade,
			SpecialAchievement:   e.SpecialAchievement,
		})
	}

	slots := []struct {
		slot  models.DocumentType
		input *DocumentInput
	}{
		{models.DocumentTypeSecondaryCertificate, r.Documents.SecondaryCertificate},
		{models.DocumentTypeHighestCertificate, r.Documents.HighestCertificate},
		{models.DocumentTypeNIDCopy, r.Documents.NIDCopy},
		{models.DocumentTypePayOrder, r.Documents.PayOrder},
	}
	for _, s := range slots {
		if s.input == nil {
			continue
		}
		if err := d.Documents.SetSlot(s.slot, s.input.toFileRef()); err != nil {
			errs = append(errs, draft.FieldError{Field: "documents." + string(s.slot), Message: err.Error()})
		}
	}
	if len(r.Documents.PassportPhotos) > 0 {
		photos := make([]draft.FileRef, 0, len(r.Documents.PassportPhotos))
		for _, p := range r.Documents.PassportPhotos {
			photos = append(photos, p.toFileRef())
		}
		if err := d.Documents.SetPassportPhotos(photos); err != nil {
			errs = append(errs, draft.FieldError{Field: "documents.passport_photo", Message: err.Error()})
		}
	}

	d.PayOrder = draft.PayOrderDetails{
		Number:   r.PayOrder.Number,
		Bank:     r.PayOrder.Bank,
		Branch:   r.PayOrder.Branch,
		Attested: r.PayOrder.Attested,
	}
	if r.PayOrder.Amount != "" {
		amount, err := decimal.NewFromString(r.PayOrder.Amount)
		if err != nil {
			errs = append(errs, draft.FieldError{Field: "pay_order.amount", Message: "Amount must be a decimal number"})
		} else {
			d.PayOrder.Amount = amount
		}
	}
	if r.PayOrder.Date != "" {
		date, err := time.Parse("2006-01-02", r.PayOrder.Date)
		if err != nil {
			errs = append(errs, draft.FieldError{Field: "pay_order.date", Message: "Pay order date must be in YYYY-MM-DD format"})
		} else {
			d.PayOrder.Date = date
		}
	}

	d.Declaration = r.Declaration

	return d, errs
}

// Submit runs the whole pipeline: validate, snapshot, then persist the
// applicant profile, education history, application row, and document
// rows in one transaction. Field errors abort before any write; a
// storage error rolls back every row so no half-submitted application
// can exist.
func (s *ApplicationService) Submit(userID uuid.UUID, req *SubmitApplicationRequest) (*models.Application, []draft.FieldError, error) {
	d, errs := req.ToDraft()

	submission, validationErrs := d.Snapshot()
	errs = append(errs, validationErrs...)
	if len(errs) > 0 {
		return nil, errs, nil
	}

	var app *models.Application
	var applicant *models.Applicant

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		var err error
		applicant, err = s.upsertApplicant(tx, userID, submission.General)
		if err != nil {
			return err
		}

		if err := s.replaceEducation(tx, applicant.ID, submission.Education); err != nil {
			return err
		}

		now := time.Now()
		app = &models.Application{
			ApplicantID:       applicant.ID,
			ApplicationNumber: utils.GenerateApplicationNumber(),
			Status:            models.ApplicationStatusSubmitted,
			SubmittedAt:       &now,
			PayOrderAmount:    submission.PayOrder.Amount,
			PayOrderNumber:    submission.PayOrder.Number,
			PayOrderBank:      submission.PayOrder.Bank,
			PayOrderBranch:    submission.PayOrder.Branch,
			PayOrderDate:      submission.PayOrder.Date,
			DeclarationAgreed: submission.Declaration.TermsAgreed,
		}
		if err := tx.Create(app).Error; err != nil {
			return err
		}

		for _, doc := range submission.Documents {
			row := &models.Document{
				ApplicationID: app.ID,
				DocumentType:  doc.Type,
				FileURL:       doc.File.FileURL,
				FileKey:       doc.File.FileKey,
				FileSize:      doc.File.Size,
				MimeType:      doc.File.MimeType,
			}
			if err := tx.Create(row).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	logrus.WithFields(logrus.Fields{
		"application_number": app.ApplicationNumber,
		"applicant_id":       applicant.ID,
	}).Info("Application submitted")

	if s.notification != nil {
		go s.notification.NotifyApplicationSubmitted(app, applicant)
	}

	return app, nil, nil
}

// upsertApplicant finds or creates the one profile row per user account
// and refreshes it with the submitted general section.
func (s *ApplicationService) upsertApplicant(tx *gorm.DB, userID uuid.UUID, info draft.GeneralInfo) (*models.Applicant, error) {
	var applicant models.Applicant
	err := tx.Where("user_id = ?", userID).First(&applicant).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	applicant.UserID = userID
	applicant.FullName = info.FullName
	applicant.NID = info.NID
	applicant.TIN = info.TIN
	applicant.BIN = info.BIN
	applicant.ApplicantType = info.ApplicantType
	applicant.DateOfBirth = info.DateOfBirth
	applicant.Nationality = info.Nationality
	applicant.Address = info.Address
	applicant.CellNumber = info.CellNumber
	applicant.Email = info.Email
	applicant.Designation = info.Designation

	if err := tx.Save(&applicant).Error; err != nil {
		return nil, err
	}
	return &applicant, nil
}

// replaceEducation swaps the full education history. Resubmissions carry
// the complete table, so the old rows are dropped rather than merged.
func (s *ApplicationService) replaceEducation(tx *gorm.DB, applicantID uuid.UUID, entries []draft.EducationEntry) error {
	if err := tx.Where("applicant_id = ?", applicantID).Delete(&models.EducationDegree{}).Error; err != nil {
		return err
	}
	for _, e := range entries {
		row := &models.EducationDegree{
			ApplicantID:          applicantID,
			DegreeName:           e.DegreeName,
			AchievementYear:      e.AchievementYear,
			EducationalInstitute: e.EducationalInstitute,
			Grade:                e.Grade,
			SpecialAchievement:   e.SpecialAchievement,
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetApplicationsByUser lists the caller's applications newest first.
func (s *ApplicationService) GetApplicationsByUser(userID uuid.UUID) ([]models.Application, error) {
	var applicant models.Applicant
	if err := s.db.Where("user_id = ?", userID).First(&applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.Application{}, nil
		}
		return nil, err
	}

	var apps []models.Application
	err := s.db.
		Preload("Documents").
		Preload("License").
		Where("applicant_id = ?", applicant.ID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// GetApplication fetches one application, enforcing ownership.
func (s *ApplicationService) GetApplication(userID, applicationID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.db.
		Preload("Applicant").
		Preload("Documents").
		Preload("License").
		First(&app, "id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}

	if app.Applicant.UserID != userID {
		return nil, ErrNotApplicationOwner
	}

	return &app, nil
}
