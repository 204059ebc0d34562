// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cevta/vat-license-backend/internal/config"
	"github.com/cevta/vat-license-backend/internal/models"
)

var DB *gorm.DB

func Initialize(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if !cfg.IsProduction() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	logrus.Info("Database connection established")

	return db, nil
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Applicant{},
		&models.EducationDegree{},
		&models.Application{},
		&models.Document{},
		&models.License{},
		&models.AuditLog{},
		&models.AdminNotification{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_applications_status_submitted ON applications(status, submitted_at)",
		"CREATE INDEX IF NOT EXISTS idx_education_degrees_applicant ON education_degrees(applicant_id)",
		"CREATE INDEX IF NOT EXISTS idx_documents_application ON documents(application_id)",
		"CREATE INDEX IF NOT EXISTS idx_audit_logs_created_at ON audit_logs(created_at)",
	}
	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			logrus.WithError(err).Warnf("Failed to create index: %s", idx)
		}
	}

	logrus.Info("Database migrations completed")
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithTransaction runs fn inside a transaction, rolling back on error.
func WithTransaction(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.Transaction(fn)
}

// SeedInitialData creates the default admin account when none exists.
func SeedInitialData(db *gorm.DB, adminEmail, adminPassword string) error {
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &models.User{
		Email:  adminEmail,
		Role:   models.RoleAdmin,
		Status: models.UserStatusActive,
	}
	if err := admin.SetPassword(adminPassword); err != nil {
		return err
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	logrus.WithField("email", adminEmail).Info("Seeded default admin account")
	return nil
}
