// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"

	// Applicant profile
	KeyProfileUpdated  = "profile.updated"
	KeyProfileNotFound = "profile.not_found"

	// Applications
	KeyApplicationSubmitted   = "application.submitted"
	KeyApplicationNotFound    = "application.not_found"
	KeyApplicationUnderReview = "application.under_review"
	KeyApplicationApproved    = "application.approved"
	KeyApplicationReturned    = "application.returned"
	KeyApplicationInvalid     = "application.invalid"

	// Documents
	KeyDocumentUploaded = "document.uploaded"
	KeyDocumentTooLarge = "document.too_large"
	KeyDocumentBadType  = "document.bad_type"

	// Licenses
	KeyLicenseIssued   = "license.issued"
	KeyLicenseNotFound = "license.not_found"
	KeyLicenseExpired  = "license.expired"
	KeyLicenseValid    = "license.valid"

	// System
	KeyInternalError    = "system.internal_error"
	KeyRateLimitReached = "system.rate_limit_reached"
)
