// Package draft models an in-progress license application: the form
// sections an applicant fills in, the rules each field must satisfy, and
// the snapshot step that turns a valid draft into an immutable submission.
package draft

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cevta/vat-license-backend/internal/models"
	"github.com/cevta/vat-license-backend/internal/utils"
)

var (
	ErrEducationIndexOutOfRange = errors.New("education entry index out of range")
	ErrPrimaryEducationEntry    = errors.New("the first education entry cannot be removed")
)

// MinPayOrderAmount is the statutory minimum application fee in BDT.
var MinPayOrderAmount = decimal.NewFromInt(5000)

// FieldError is one actionable problem with a draft field, keyed the
// same way the form names its inputs.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// GeneralInfo carries the personal and business identity section.
// BIN is conditionally required: firms and companies must supply it,
// general applicants may leave it blank.
type GeneralInfo struct {
	FullName      string               `json:"full_name" validate:"required,min=2,max=255"`
	NID           string               `json:"nid" validate:"required,nid"`
	TIN           string               `json:"tin" validate:"required,tin"`
	BIN           string               `json:"bin" validate:"omitempty,bin"`
	ApplicantType models.ApplicantType `json:"applicant_type" validate:"required,oneof=general firm company"`
	DateOfBirth   time.Time            `json:"date_of_birth" validate:"required"`
	Nationality   string               `json:"nationality" validate:"required,max=100"`
	Address       string               `json:"address" validate:"required,max=1000"`
	CellNumber    string               `json:"cell_number" validate:"required,bd_mobile"`
	Email         string               `json:"email" validate:"required,email"`
	Designation   string               `json:"designation" validate:"max=255"`
}

// EducationEntry is one row of the education history table.
type EducationEntry struct {
	DegreeName           string `json:"degree_name" validate:"required,max=255"`
	AchievementYear      int    `json:"achievement_year" validate:"required,achievement_year"`
	EducationalInstitute string `json:"educational_institute" validate:"required,max=255"`
	Grade                string `json:"grade" validate:"required,max=50"`
	SpecialAchievement   string `json:"special_achievement" validate:"max=500"`
}

// PayOrderDetails records the bank pay order covering the application
// fee. Attested affirms the order is issued in favour of the correct
// payee and must be true at submission.
type PayOrderDetails struct {
	Amount   decimal.Decimal `json:"amount"`
	Number   string          `json:"number" validate:"required,max=50"`
	Bank     string          `json:"bank" validate:"required,max=255"`
	Branch   string          `json:"branch" validate:"required,max=255"`
	Date     time.Time       `json:"date" validate:"required"`
	Attested bool            `json:"attested"`
}

// Declaration holds the final affirmation the applicant must tick.
type Declaration struct {
	TermsAgreed bool `json:"terms_agreed"`
}

// Draft is a mutable application under construction. It enforces only
// structural rules while editing (education list shape, document slot
// constraints); full field validation happens at Validate/Snapshot time
// so an applicant can save partial work.
type Draft struct {
	General     GeneralInfo      `json:"general"`
	Education   []EducationEntry `json:"education"`
	Documents   DocumentSet      `json:"documents"`
	PayOrder    PayOrderDetails  `json:"pay_order"`
	Declaration Declaration      `json:"declaration"`
}

// NewDraft returns an empty draft seeded with the one education entry
// every application must have.
func NewDraft() *Draft {
	return &Draft{
		Education: []EducationEntry{{}},
		Documents: NewDocumentSet(),
	}
}

// AddEducation appends a blank row to the education table.
func (d *Draft) AddEducation() {
	d.Education = append(d.Education, EducationEntry{})
}

// RemoveEducation drops the entry at index i. The first row is the
// mandatory minimum and is never removable.
func (d *Draft) RemoveEducation(i int) error {
	if i < 0 || i >= len(d.Education) {
		return ErrEducationIndexOutOfRange
	}
	if i == 0 {
		return ErrPrimaryEducationEntry
	}
	d.Education = append(d.Education[:i], d.Education[i+1:]...)
	return nil
}

// Validate checks every rule a submission must satisfy and returns all
// problems at once. A nil result means the draft is submittable.
func (d *Draft) Validate() []FieldError {
	var errs []FieldError

	if err := utils.ValidateStruct(d.General); err != nil {
		for _, ve := range utils.GetValidationErrors(err) {
			errs = append(errs, FieldError{Field: ve.Field, Message: ve.Message})
		}
	}

	// BIN becomes mandatory the moment the applicant is not an individual.
	if d.General.ApplicantType != "" && d.General.ApplicantType != models.ApplicantTypeGeneral && d.General.BIN == "" {
		errs = append(errs, FieldError{
			Field:   "bin",
			Message: "BIN is required for firm and company applicants",
		})
	}

	if len(d.Education) == 0 {
		errs = append(errs, FieldError{
			Field:   "education",
			Message: "At least one education entry is required",
		})
	}
	for i, entry := range d.Education {
		if err := utils.ValidateStruct(entry); err != nil {
			for _, ve := range utils.GetValidationErrors(err) {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("education[%d].%s", i, ve.Field),
					Message: ve.Message,
				})
			}
		}
	}

	for _, slot := range d.Documents.MissingSlots() {
		errs = append(errs, FieldError{
			Field:   "documents." + string(slot),
			Message: "Document is required",
		})
	}

	if err := utils.ValidateStruct(d.PayOrder); err != nil {
		for _, ve := range utils.GetValidationErrors(err) {
			errs = append(errs, FieldError{Field: "pay_order." + ve.Field, Message: ve.Message})
		}
	}
	if d.PayOrder.Amount.LessThan(MinPayOrderAmount) {
		errs = append(errs, FieldError{
			Field:   "pay_order.amount",
			Message: "Pay order amount must be at least 5000 BDT",
		})
	}

	if !d.PayOrder.Attested {
		errs = append(errs, FieldError{
			Field:   "pay_order.attested",
			Message: "The pay order must be attested as issued in favour of the correct payee",
		})
	}

	if !d.Declaration.TermsAgreed {
		errs = append(errs, FieldError{
			Field:   "declaration.terms_agreed",
			Message: "The declaration must be agreed to",
		})
	}

	return errs
}
