// internal/services/admin_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cevta/vat-license-backend/internal/database"
	"github.com/cevta/vat-license-backend/internal/models"
	"github.com/cevta/vat-license-backend/internal/utils"
)

var (
	ErrStaleApplication = errors.New("application was already decided by another reviewer")
	ErrReasonRequired   = errors.New("a return reason is required")
)

type AdminService struct {
	db           *gorm.DB
	licenses     *LicenseService
	notification *NotificationService
}

func NewAdminService(db *gorm.DB, licenses *LicenseService, notification *NotificationService) *AdminService {
	return &AdminService{db: db, licenses: licenses, notification: notification}
}

type DashboardStats struct {
	TotalApplications int64 `json:"total_applications"`
	Pending           int64 `json:"pending"`
	UnderReview       int64 `json:"under_review"`
	Approved          int64 `json:"approved"`
	Returned          int64 `json:"returned"`
	LicensesIssued    int64 `json:"licenses_issued"`
}

func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	counts := []struct {
		dest   *int64
		status models.ApplicationStatus
	}{
		{&stats.Pending, models.ApplicationStatusSubmitted},
		{&stats.UnderReview, models.ApplicationStatusUnderReview},
		{&stats.Approved, models.ApplicationStatusApproved},
		{&stats.Returned, models.ApplicationStatusReturned},
	}

	if err := s.db.Model(&models.Application{}).Count(&stats.TotalApplications).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		if err := s.db.Model(&models.Application{}).Where("status = ?", c.status).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	if err := s.db.Model(&models.License{}).Count(&stats.LicensesIssued).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

type ApplicationFilter struct {
	Status string
	Search string
}

var applicationSortColumns = map[string]string{
	"created_at":   "applications.created_at",
	"submitted_at": "applications.submitted_at",
	"status":       "applications.status",
}

// GetApplications lists applications for the review queue, filterable by
// status and searchable by application number or applicant name.
func (s *AdminService) GetApplications(filter ApplicationFilter, params utils.PaginationParams) ([]models.Application, int64, error) {
	query := s.db.Model(&models.Application{}).
		Select("applications.*").
		Joins("JOIN applicants ON applicants.id = applications.applicant_id")

	if filter.Status != "" {
		query = query.Where("applications.status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("applications.application_number ILIKE ? OR applicants.full_name ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	query = utils.ApplySort(query, params, applicationSortColumns)
	query = utils.ApplyPagination(query, params)
	if err := query.Preload("Applicant").Preload("License").Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// GetApplicationDetail fetches one application with everything a
// reviewer needs on screen.
func (s *AdminService) GetApplicationDetail(applicationID uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.db.
		Preload("Applicant").
		Preload("Applicant.Education").
		Preload("Documents").
		Preload("License").
		Preload("Reviewer").
		First(&app, "id = ?", applicationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// claimTransition performs a compare-and-set status move. The WHERE
// clause on the current status serializes racing reviewers: whoever
// updates zero rows lost the race and sees ErrStaleApplication.
func claimTransition(tx *gorm.DB, applicationID uuid.UUID, from []models.ApplicationStatus, updates map[string]interface{}) error {
	result := tx.Model(&models.Application{}).
		Where("id = ? AND status IN ?", applicationID, from).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&models.Application{}).Where("id = ?", applicationID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrApplicationNotFound
		}
		return ErrStaleApplication
	}
	return nil
}

// StartReview moves a submitted application into under_review and stamps
// the reviewer.
func (s *AdminService) StartReview(applicationID, adminID uuid.UUID) (*models.Application, error) {
	now := time.Now()
	err := claimTransition(s.db, applicationID,
		[]models.ApplicationStatus{models.ApplicationStatusSubmitted},
		map[string]interface{}{
			"status":      models.ApplicationStatusUnderReview,
			"reviewed_by": adminID,
			"reviewed_at": now,
		})
	if err != nil {
		return nil, err
	}

	app, detailErr := s.GetApplicationDetail(applicationID)
	if detailErr != nil {
		return nil, detailErr
	}

	s.audit(adminID, "application.start_review", app.ID, nil)
	return app, nil
}

// Approve finalizes an application and issues its license in the same
// transaction; a failure in either leaves both untouched.
func (s *AdminService) Approve(applicationID, adminID uuid.UUID) (*models.Application, error) {
	var license *models.License

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		now := time.Now()
		if err := claimTransition(tx, applicationID,
			[]models.ApplicationStatus{models.ApplicationStatusSubmitted, models.ApplicationStatusUnderReview},
			map[string]interface{}{
				"status":      models.ApplicationStatusApproved,
				"reviewed_by": adminID,
				"reviewed_at": now,
			}); err != nil {
			return err
		}

		var app models.Application
		if err := tx.Preload("Applicant").First(&app, "id = ?", applicationID).Error; err != nil {
			return err
		}

		var err error
		license, err = s.licenses.CreateForApplication(tx, &app, &app.Applicant)
		return err
	})
	if err != nil {
		return nil, err
	}

	app, err := s.GetApplicationDetail(applicationID)
	if err != nil {
		return nil, err
	}

	s.audit(adminID, "application.approve", app.ID, models.JSONB{"license_number": license.LicenseNumber})

	logrus.WithFields(logrus.Fields{
		"application_number": app.ApplicationNumber,
		"license_number":     license.LicenseNumber,
	}).Info("Application approved, license issued")

	if s.notification != nil {
		go s.notification.NotifyApplicationApproved(app, &app.Applicant, license.LicenseNumber)
	}

	return app, nil
}

// Return sends an application back with a mandatory reason. The record
// is terminal afterwards; the applicant submits a fresh application.
func (s *AdminService) Return(applicationID, adminID uuid.UUID, reason string) (*models.Application, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}

	now := time.Now()
	err := claimTransition(s.db, applicationID,
		[]models.ApplicationStatus{models.ApplicationStatusSubmitted, models.ApplicationStatusUnderReview},
		map[string]interface{}{
			"status":        models.ApplicationStatusReturned,
			"return_reason": reason,
			"reviewed_by":   adminID,
			"reviewed_at":   now,
		})
	if err != nil {
		return nil, err
	}

	app, err := s.GetApplicationDetail(applicationID)
	if err != nil {
		return nil, err
	}

	s.audit(adminID, "application.return", app.ID, models.JSONB{"reason": reason})

	if s.notification != nil {
		go s.notification.NotifyApplicationReturned(app, &app.Applicant, reason)
	}

	return app, nil
}

// GetNotifications lists the admin inbox, newest first, optionally
// filtered to unread.
func (s *AdminService) GetNotifications(status string, params utils.PaginationParams) ([]models.AdminNotification, int64, error) {
	query := s.db.Model(&models.AdminNotification{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.AdminNotification
	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params)
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkNotificationRead flips one inbox entry to read.
func (s *AdminService) MarkNotificationRead(id uuid.UUID) error {
	now := time.Now()
	result := s.db.Model(&models.AdminNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": "read", "read_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// audit records an admin action. Written synchronously so the trail is
// complete the moment the handler responds.
func (s *AdminService) audit(adminID uuid.UUID, action string, resourceID uuid.UUID, newValues models.JSONB) {
	entry := &models.AuditLog{
		UserID:       &adminID,
		Action:       action,
		ResourceType: "application",
		ResourceID:   &resourceID,
		NewValues:    newValues,
	}
	if err := s.db.Create(entry).Error; err != nil {
		logrus.WithError(err).WithField("action", action).Error("Failed to write audit log")
	}
}
