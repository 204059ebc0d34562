// internal/models/applicant.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Applicant is the profile record for a license-seeking identity.
// At most one exists per user account; it is created on first submission
// and updated on profile edits, never deleted through the normal flow.
type Applicant struct {
	BaseModel
	UserID        uuid.UUID     `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	FullName      string        `json:"full_name" gorm:"size:255;not null"`
	NID           string        `json:"nid" gorm:"size:17;not null;index"`
	TIN           string        `json:"tin" gorm:"size:12;not null"`
	BIN           string        `json:"bin" gorm:"size:13"`
	ApplicantType ApplicantType `json:"applicant_type" gorm:"type:varchar(20);default:'general'"`
	DateOfBirth   time.Time     `json:"date_of_birth"`
	Nationality   string        `json:"nationality" gorm:"size:50"`
	Address       string        `json:"address" gorm:"type:text"`
	CellNumber    string        `json:"cell_number" gorm:"size:11"`
	Email         string        `json:"email" gorm:"size:255"`
	Designation   string        `json:"designation" gorm:"size:100"`

	// Relationships
	User         User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Education    []EducationDegree `json:"education,omitempty" gorm:"foreignKey:ApplicantID"`
	Applications []Application     `json:"applications,omitempty" gorm:"foreignKey:ApplicantID"`
}

// EducationDegree is one entry of an applicant's education history.
// Rows are freely replaced while the owning application is in draft and
// immutable once it is submitted.
type EducationDegree struct {
	BaseModel
	ApplicantID          uuid.UUID `json:"applicant_id" gorm:"type:uuid;not null;index"`
	DegreeName           string    `json:"degree_name" gorm:"size:255;not null"`
	AchievementYear      int       `json:"achievement_year" gorm:"not null"`
	EducationalInstitute string    `json:"educational_institute" gorm:"size:255;not null"`
	Grade                string    `json:"grade" gorm:"size:100;not null"`
	SpecialAchievement   string    `json:"special_achievement,omitempty" gorm:"type:text"`
}
