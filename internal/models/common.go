// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	RoleApplicant UserRole = "applicant"
	RoleAdmin     UserRole = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type ApplicantType string

const (
	ApplicantTypeGeneral ApplicantType = "general"
	ApplicantTypeFirm    ApplicantType = "firm"
	ApplicantTypeCompany ApplicantType = "company"
)

type ApplicationStatus string

const (
	ApplicationStatusDraft       ApplicationStatus = "draft"
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusApproved    ApplicationStatus = "approved"
	ApplicationStatusReturned    ApplicationStatus = "returned"
)

// validTransitions holds the lifecycle edges. approved and returned are
// terminal: nothing leaves them.
var validTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusDraft:       {ApplicationStatusSubmitted},
	ApplicationStatusSubmitted:   {ApplicationStatusUnderReview, ApplicationStatusApproved, ApplicationStatusReturned},
	ApplicationStatusUnderReview: {ApplicationStatusApproved, ApplicationStatusReturned},
}

func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusReturned
}

type DocumentType string

const (
	DocumentTypeSecondaryCertificate DocumentType = "secondary_certificate"
	DocumentTypeHighestCertificate   DocumentType = "highest_certificate"
	DocumentTypeNIDCopy              DocumentType = "nid_copy"
	DocumentTypePayOrder             DocumentType = "pay_order"
	DocumentTypePassportPhoto        DocumentType = "passport_photo"
)

// RequiredDocumentTypes are the slots every submission must fill.
// Passport photos are one logical slot that may carry up to three images,
// persisted as passport_photo_1..n.
var RequiredDocumentTypes = []DocumentType{
	DocumentTypeSecondaryCertificate,
	DocumentTypeHighestCertificate,
	DocumentTypeNIDCopy,
	DocumentTypePayOrder,
	DocumentTypePassportPhoto,
}
