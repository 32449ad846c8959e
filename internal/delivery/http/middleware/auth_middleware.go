package middleware

import (
	"context"
	"net/http"
	"strings"

	"hireable-backend/internal/delivery/http/response"
	"hireable-backend/internal/domain"
	"hireable-backend/pkg/auth"
	"hireable-backend/pkg/content"
	"hireable-backend/pkg/logger"
	"hireable-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// TokenParser verifies a bearer token. *auth.Verifier implements it.
type TokenParser interface {
	Parse(raw string) (*auth.Claims, error)
}

// RoleLookup finds the stored role for an email.
type RoleLookup interface {
	RoleForEmail(ctx context.Context, email string) (domain.Role, error)
}

// AuthCookie is the fallback cookie for the bearer token.
const AuthCookie = "auth_token"

func bearer(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := c.Cookie(AuthCookie); err == nil {
		return cookie
	}
	return ""
}

// authenticate verifies the token and installs the identity. The role comes
// from the users table, never from the token.
func authenticate(c *gin.Context, parser TokenParser, roles RoleLookup) (domain.Identity, error) {
	claims, err := parser.Parse(bearer(c))
	if err != nil {
		return domain.Identity{}, err
	}
	id := domain.Identity{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}
	if id.Role, err = roles.RoleForEmail(c.Request.Context(), id.Email); err != nil {
		return domain.Identity{}, err
	}

	c.Set(string(domain.KeyUserID), id.Subject)
	c.Set(string(domain.KeyUserEmail), id.Email)
	c.Set(string(domain.KeyUserName), id.Name)
	c.Set(string(domain.KeyUserRole), string(id.Role))
	c.Request = c.Request.WithContext(domain.WithIdentity(c.Request.Context(), id))
	return id, nil
}

// Auth rejects requests without a valid token.
func Auth(parser TokenParser, roles RoleLookup, audit *security.AuditLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearer(c) == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}
		if _, err := authenticate(c, parser, roles); err != nil {
			logger.Log.Warn("token rejected", "error", err, "path", c.FullPath())
			audit.UnauthorizedAccess(c.Request.Context(), c.ClientIP(), c.GetString(response.RequestIDKey), "invalid token")
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth installs the identity when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(parser TokenParser, roles RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if bearer(c) != "" {
			if _, err := authenticate(c, parser, roles); err != nil {
				logger.Log.Debug("optional token ignored", "error", err)
			}
		}
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(dict *content.Dictionary, role domain.Role) gin.HandlerFunc {
	key := content.KeyErrCandidateOnly
	if role == domain.RoleRecruiter {
		key = content.KeyErrRecruiterOnly
	}
	return func(c *gin.Context) {
		if domain.Role(c.GetString(string(domain.KeyUserRole))) != role {
			msg := string(key)
			if dict != nil {
				msg = dict.Get(content.LocaleFrom(c.Request.Context()), key, nil)
			}
			response.Error(c, http.StatusForbidden, msg, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
