// internal/models/application.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Application is the aggregate root of one submission moving through the
// lifecycle. A returned application is terminal; the applicant starts a
// fresh submission instead of resuming the record.
type Application struct {
	BaseModel
	ApplicantID       uuid.UUID         `json:"applicant_id" gorm:"type:uuid;not null;index"`
	ApplicationNumber string            `json:"application_number" gorm:"uniqueIndex;size:30;not null"`
	Status            ApplicationStatus `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	SubmittedAt       *time.Time        `json:"submitted_at"`

	PayOrderAmount decimal.Decimal `json:"pay_order_amount" gorm:"type:numeric(12,2)"`
	PayOrderNumber string          `json:"pay_order_number" gorm:"size:50"`
	PayOrderBank   string          `json:"pay_order_bank" gorm:"size:255"`
	PayOrderBranch string          `json:"pay_order_branch" gorm:"size:255"`
	PayOrderDate   time.Time       `json:"pay_order_date"`

	DeclarationAgreed bool       `json:"declaration_agreed" gorm:"not null;default:false"`
	ReturnReason      string     `json:"return_reason,omitempty" gorm:"type:text"`
	ReviewedBy        *uuid.UUID `json:"reviewed_by" gorm:"type:uuid"`
	ReviewedAt        *time.Time `json:"reviewed_at"`

	// Relationships
	Applicant Applicant  `json:"applicant,omitempty" gorm:"foreignKey:ApplicantID"`
	Documents []Document `json:"documents,omitempty" gorm:"foreignKey:ApplicationID"`
	License   *License   `json:"license,omitempty" gorm:"foreignKey:ApplicationID"`
	Reviewer  *User      `json:"reviewer,omitempty" gorm:"foreignKey:ReviewedBy"`
}

// Document is one uploaded attachment reference bound to an application.
// The bytes live in object storage; only the reference is persisted.
type Document struct {
	BaseModel
	ApplicationID uuid.UUID `json:"application_id" gorm:"type:uuid;not null;index"`
	DocumentType  string    `json:"document_type" gorm:"size:50;not null"`
	FileURL       string    `json:"file_url" gorm:"type:text;not null"`
	FileKey       string    `json:"file_key" gorm:"size:255"`
	FileSize      int64     `json:"file_size"`
	MimeType      string    `json:"mime_type" gorm:"size:100"`
}
