package middleware

import (
	"hireable-backend/pkg/content"

	"github.com/gin-gonic/gin"
)

// LocaleKey is the gin context key holding the negotiated content.Locale.
const LocaleKey = "Locale"

// Locale resolves the request locale once, from the NEXT_LOCALE cookie and
// then Accept-Language, and carries it on the request context. Requests
// with neither get fallback.
func Locale(fallback content.Locale) gin.HandlerFunc {
	if fallback == "" {
		fallback = content.DefaultLocale
	}
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(content.LocaleCookie)
		accept := c.GetHeader("Accept-Language")

		l := fallback
		if cookie != "" || accept != "" {
			l = content.Negotiate(cookie, accept)
		}

		c.Set(LocaleKey, l)
		c.Request = c.Request.WithContext(content.WithLocale(c.Request.Context(), l))
		c.Header("Content-Language", string(l))
		c.Next()
	}
}
