// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	digitsOnly   = regexp.MustCompile(`^\d+$`)
	mobilePrefix = regexp.MustCompile(`^01\d{9}$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("nid", validateNID)
	validate.RegisterValidation("bin", validateBIN)
	validate.RegisterValidation("tin", validateTIN)
	validate.RegisterValidation("bd_mobile", validateBDMobile)
	validate.RegisterValidation("achievement_year", validateAchievementYear)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasNumber bool

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	return hasUpper && hasLower && hasNumber
}

// National ID cards come in three generations: 10, 13, and 17 digits.
func validateNID(fl validator.FieldLevel) bool {
	nid := fl.Field().String()
	if !digitsOnly.MatchString(nid) {
		return false
	}
	return len(nid) == 10 || len(nid) == 13 || len(nid) == 17
}

func validateBIN(fl validator.FieldLevel) bool {
	bin := fl.Field().String()
	return len(bin) == 13 && digitsOnly.MatchString(bin)
}

func validateTIN(fl validator.FieldLevel) bool {
	tin := fl.Field().String()
	return len(tin) == 12 && digitsOnly.MatchString(tin)
}

func validateBDMobile(fl validator.FieldLevel) bool {
	return mobilePrefix.MatchString(fl.Field().String())
}

func validateAchievementYear(fl validator.FieldLevel) bool {
	year := int(fl.Field().Int())
	return year >= 1900 && year <= time.Now().Year()
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "strong_password":
		return "Password must contain at least 8 characters with uppercase, lowercase, and number"
	case "nid":
		return "NID must be 10, 13, or 17 digits"
	case "bin":
		return "BIN must be exactly 13 digits"
	case "tin":
		return "TIN must be exactly 12 digits"
	case "bd_mobile":
		return "Mobile number must match 01XXXXXXXXX"
	case "achievement_year":
		return "Year must be between 1900 and the current year"
	default:
		return e.Field() + " is invalid"
	}
}
