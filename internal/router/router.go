// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cevta/vat-license-backend/internal/config"
	"github.com/cevta/vat-license-backend/internal/handlers"
	"github.com/cevta/vat-license-backend/internal/middleware"
	"github.com/cevta/vat-license-backend/internal/services"
)

func Setup(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.Language())
	r.Use(middleware.RateLimit(20, 40))

	storageService, err := services.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	notificationService := services.NewNotificationService(db, cfg)
	authService := services.NewAuthService(db, cfg)
	applicantService := services.NewApplicantService(db)
	applicationService := services.NewApplicationService(db, notificationService)
	licenseService := services.NewLicenseService(db, cfg)
	adminService := services.NewAdminService(db, licenseService, notificationService)

	authHandler := handlers.NewAuthHandler(authService)
	applicantHandler := handlers.NewApplicantHandler(applicantService, storageService)
	applicationHandler := handlers.NewApplicationHandler(applicationService)
	adminHandler := handlers.NewAdminHandler(adminService)
	licenseHandler := handlers.NewLicenseHandler(licenseService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.AWS.UseLocalStorage {
		r.Static("/uploads", cfg.AWS.LocalStorageDir)
	}

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Use(middleware.AuthRateLimit())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
	}
	api.GET("/auth/me", middleware.AuthRequired(), authHandler.Me)

	applicant := api.Group("/applicant")
	applicant.Use(middleware.AuthRequired())
	{
		applicant.GET("/profile", applicantHandler.GetProfile)
		applicant.PUT("/profile", applicantHandler.UpdateProfile)
		applicant.POST("/documents", middleware.UploadRateLimit(), applicantHandler.UploadDocument)
		applicant.POST("/application", applicationHandler.Submit)
		applicant.GET("/applications", applicationHandler.List)
		applicant.GET("/applications/:id", applicationHandler.Get)
		applicant.GET("/license", licenseHandler.MyLicense)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/dashboard/stats", adminHandler.Dashboard)
		admin.GET("/applications", adminHandler.ListApplications)
		admin.GET("/applications/:id", adminHandler.GetApplication)
		admin.PUT("/applications/:id/review", adminHandler.StartReview)
		admin.PUT("/applications/:id/approve", adminHandler.Approve)
		admin.PUT("/applications/:id/return", adminHandler.Return)
		admin.GET("/notifications", adminHandler.ListNotifications)
		admin.PUT("/notifications/:id/read", adminHandler.MarkNotificationRead)
	}

	api.GET("/verify/:licenseNumber", middleware.OptionalAuth(), licenseHandler.Verify)
	api.GET("/verify/:licenseNumber/qr", middleware.OptionalAuth(), licenseHandler.QRCode)

	return r, nil
}
