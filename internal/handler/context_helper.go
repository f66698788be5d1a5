package handler

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-portal/internal/middleware"
	"github.com/noah-isme/exam-portal/internal/models"
)

func principalFromContext(c *gin.Context) *models.Principal {
	return middleware.PrincipalFrom(c)
}

// wantsJSON reports whether the caller is an API client rather than a browser form.
func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), gin.MIMEJSON)
}

func cookieSession(c *gin.Context) sessions.Session {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	return sessions.Default(c)
}
