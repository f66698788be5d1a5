package handler

import (
	"context"
	"html/template"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/middleware"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/internal/web"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
}

func templates(t *testing.T) *template.Template {
	t.Helper()
	tmpl, err := web.Templates()
	require.NoError(t, err)
	return tmpl
}

// newContext builds a test context with the HTML templates loaded and an optional caller.
func newContext(t *testing.T, req *httptestRequest, principal *models.Principal) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(rec)
	engine.SetHTMLTemplate(templates(t))
	c.Request = httptest.NewRequest(req.method, req.target, req.body)
	if req.contentType != "" {
		c.Request.Header.Set("Content-Type", req.contentType)
	}
	if principal != nil {
		c.Set(middleware.ContextPrincipalKey, principal)
	}
	return c, rec
}

// serve runs handler and flushes a status written without a body, as the engine does after
// the handler chain.
func serve(c *gin.Context, handler gin.HandlerFunc) {
	handler(c)
	c.Writer.WriteHeaderNow()
}

type httptestRequest struct {
	method      string
	target      string
	body        io.Reader
	contentType string
}

type fakeAuthSrv struct {
	loginReq    dto.LoginRequest
	loginResp   *dto.LoginResult
	loginErr    error
	registerReq dto.RegisterRequest
	registerErr error
	loggedOut   []string
}

func (f *fakeAuthSrv) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	f.loginReq = req
	return f.loginResp, f.loginErr
}

func (f *fakeAuthSrv) Register(_ context.Context, req dto.RegisterRequest) (*models.User, error) {
	f.registerReq = req
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u-new", Email: req.Email, Name: req.Name, Role: models.Role(req.Role)}, nil
}

func (f *fakeAuthSrv) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func loginResult(role models.Role) *dto.LoginResult {
	principal := models.Principal{UserID: "u-1", Email: "head@example.com", Name: "Head", Role: role}
	return &dto.LoginResult{
		Session:     &models.Session{Token: "session-token", UserID: "u-1", Role: role},
		User:        principal,
		AccessToken: "jwt",
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
		Redirect:    "/exam-head/dashboard",
	}
}
