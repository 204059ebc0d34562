// internal/models/license.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// LicenseTermYears is the fixed validity term of an issued license.
const LicenseTermYears = 5

// License is the terminal artifact issued when an application is approved.
// Exactly one is created per approved application and it is never mutated.
// Holder fields are snapshotted at issue time so later profile edits do
// not rewrite an issued certificate.
type License struct {
	BaseModel
	ApplicationID uuid.UUID `json:"application_id" gorm:"type:uuid;uniqueIndex;not null"`
	LicenseNumber string    `json:"license_number" gorm:"uniqueIndex;size:30;not null"`
	HolderName    string    `json:"holder_name" gorm:"size:255;not null"`
	NID           string    `json:"nid" gorm:"size:17"`
	BIN           string    `json:"bin" gorm:"size:13"`
	Address       string    `json:"address" gorm:"type:text"`
	IssueDate     time.Time `json:"issue_date" gorm:"not null"`
	ExpiryDate    time.Time `json:"expiry_date" gorm:"not null"`

	// Relationships
	Application Application `json:"application,omitempty" gorm:"foreignKey:ApplicationID"`
}

func (l *License) IsExpired(now time.Time) bool {
	return now.After(l.ExpiryDate)
}
