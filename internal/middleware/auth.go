package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/models"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
	"github.com/noah-isme/exam-portal/pkg/logger"
	"github.com/noah-isme/exam-portal/pkg/response"
)

const (
	// ContextPrincipalKey is the gin context key storing the authenticated caller.
	ContextPrincipalKey = "principal"
	// ContextSessionTokenKey stores the raw session token of the caller.
	ContextSessionTokenKey = "session_token"
	// CookieTokenKey is the field inside the signed cookie holding the session token.
	CookieTokenKey = "sid"
	// LoginPath is where unauthenticated callers are sent.
	LoginPath = "/login"
)

// SessionResolver turns a token into a principal.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.Principal, error)
	ParseBearer(tokenString string) (string, error)
}

// Authenticate attaches the caller's principal when a valid bearer token or session cookie is
// present. It never blocks; Authorize and RequireSession decide what an anonymous caller gets.
func Authenticate(resolver SessionResolver, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		token := tokenFromRequest(c, resolver)
		if token == "" {
			c.Next()
			return
		}

		principal, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, appErrors.ErrUnauthenticated) {
				log.Warn("session lookup failed", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Set(ContextSessionTokenKey, token)
		c.Set(logger.UserIDKey, principal.UserID)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context, resolver SessionResolver) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if sid, err := resolver.ParseBearer(strings.TrimSpace(parts[1])); err == nil {
				return sid
			}
		}
		return ""
	}
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return ""
	}
	if sid, ok := sessions.Default(c).Get(CookieTokenKey).(string); ok {
		return sid
	}
	return ""
}

// PrincipalFrom returns the authenticated caller or nil.
func PrincipalFrom(c *gin.Context) *models.Principal {
	value, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*models.Principal)
	if !ok {
		return nil
	}
	return principal
}

// SessionToken returns the caller's session token, or "" when anonymous.
func SessionToken(c *gin.Context) string {
	return c.GetString(ContextSessionTokenKey)
}

// Authorize enforces the role required by op before the handler runs.
func Authorize(op authz.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch authz.Check(PrincipalFrom(c), op) {
		case authz.Allow:
			c.Next()
		case authz.RequireLogin:
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
		default:
			response.Forbidden(c)
		}
	}
}

// RequireSession admits any authenticated caller regardless of role.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if PrincipalFrom(c) == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}
