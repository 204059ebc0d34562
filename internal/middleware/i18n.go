// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const ContextLanguageKey = "language"

var supportedLanguages = map[string]bool{
	"en": true,
	"bn": true,
}

// Language resolves the response language from the Accept-Language
// header, defaulting to English.
func Language() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := "en"

		header := c.GetHeader("Accept-Language")
		if header != "" {
			// Only the primary subtag matters: "bn-BD,bn;q=0.9" -> "bn".
			primary := strings.SplitN(header, ",", 2)[0]
			primary = strings.SplitN(primary, "-", 2)[0]
			primary = strings.ToLower(strings.TrimSpace(primary))
			if supportedLanguages[primary] {
				lang = primary
			}
		}

		c.Set(ContextLanguageKey, lang)
		c.Next()
	}
}

// GetLanguage reads the resolved language for translation lookups.
func GetLanguage(c *gin.Context) string {
	if lang, exists := c.Get(ContextLanguageKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return "en"
}
