// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/cevta/vat-license-backend/internal/config"
	"github.com/cevta/vat-license-backend/internal/models"
)

type NotificationService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{db: db, cfg: cfg}
}

var emailTemplate = template.Must(template.New("email").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>{{.Title}}</h2>
	<p>Dear {{.Name}},</p>
	<p>{{.Body}}</p>
	{{if .Reference}}<p>Reference: <strong>{{.Reference}}</strong></p>{{end}}
	<p>Regards,<br>VAT Consultant License Portal</p>
</body>
</html>
`))

type emailData struct {
	Title     string
	Name      string
	Body      string
	Reference string
}

// NotifyApplicationSubmitted emails the applicant and records an admin
// inbox entry so reviewers see new work without polling the list.
func (n *NotificationService) NotifyApplicationSubmitted(app *models.Application, applicant *models.Applicant) {
	n.createAdminNotification(
		"application_submitted",
		"New application submitted",
		fmt.Sprintf("Application %s was submitted by %s", app.ApplicationNumber, applicant.FullName),
		"application", app.ID,
	)
	n.sendEmail(applicant.Email, "Application Received", emailData{
		Title:     "Application Received",
		Name:      applicant.FullName,
		Body:      "Your VAT consultant license application has been received and is awaiting review.",
		Reference: app.ApplicationNumber,
	})
}

func (n *NotificationService) NotifyApplicationApproved(app *models.Application, applicant *models.Applicant, licenseNumber string) {
	n.sendEmail(applicant.Email, "Application Approved", emailData{
		Title:     "Application Approved",
		Name:      applicant.FullName,
		Body:      fmt.Sprintf("Congratulations! Your application has been approved and license %s has been issued.", licenseNumber),
		Reference: app.ApplicationNumber,
	})
}

func (n *NotificationService) NotifyApplicationReturned(app *models.Application, applicant *models.Applicant, reason string) {
	n.sendEmail(applicant.Email, "Application Returned", emailData{
		Title:     "Application Returned",
		Name:      applicant.FullName,
		Body:      fmt.Sprintf("Your application was returned for correction. Reason: %s. Please submit a fresh application addressing the issue.", reason),
		Reference: app.ApplicationNumber,
	})
}

func (n *NotificationService) createAdminNotification(notifType, title, message, resourceType string, resourceID uuid.UUID) {
	notification := &models.AdminNotification{
		Type:                notifType,
		Title:               title,
		Message:             message,
		Priority:            "medium",
		Status:              "unread",
		RelatedResourceType: resourceType,
		RelatedResourceID:   &resourceID,
	}
	if err := n.db.Create(notification).Error; err != nil {
		logrus.WithError(err).Error("Failed to create admin notification")
	}
}

func (n *NotificationService) sendEmail(to, subject string, data emailData) {
	if !n.cfg.Email.Enabled || to == "" {
		return
	}

	var body bytes.Buffer
	if err := emailTemplate.Execute(&body, data); err != nil {
		logrus.WithError(err).Error("Failed to render email template")
		return
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		n.cfg.Email.FromAddress, to, subject, body.String(),
	)

	addr := n.cfg.Email.SMTPHost + ":" + n.cfg.Email.SMTPPort
	auth := smtp.PlainAuth("", n.cfg.Email.SMTPUser, n.cfg.Email.SMTPPassword, n.cfg.Email.SMTPHost)

	if err := smtp.SendMail(addr, auth, n.cfg.Email.FromAddress, []string{to}, []byte(msg)); err != nil {
		logrus.WithError(err).WithField("to", to).Error("Failed to send email")
	}
}
