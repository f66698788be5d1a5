package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/models"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
)

type resolverStub struct {
	sessions map[string]*models.Principal
}

func (r *resolverStub) ResolveSession(ctx context.Context, token string) (*models.Principal, error) {
	if p, ok := r.sessions[token]; ok {
		return p, nil
	}
	return nil, appErrors.ErrUnauthenticated
}

func (r *resolverStub) ParseBearer(tokenString string) (string, error) {
	if tokenString == "" {
		return "", appErrors.ErrUnauthenticated
	}
	return "bearer-" + tokenString, nil
}

type observerStub struct {
	paths []string
}

func (o *observerStub) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	o.paths = append(o.paths, path)
}

func newEngine(t *testing.T, handlerCalls *int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	resolver := &resolverStub{sessions: map[string]*models.Principal{
		"bearer-head":    {UserID: "head", Role: models.RoleExamHead},
		"bearer-student": {UserID: "stu", Role: models.RoleStudent},
		"cookie-inv":     {UserID: "inv", Role: models.RoleInvigilator},
	}}

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	r.Use(Authenticate(resolver, nil))
	r.GET("/login-as-invigilator", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set(CookieTokenKey, "cookie-inv")
		require.NoError(t, s.Save())
		c.Status(http.StatusNoContent)
	})
	r.GET("/exam-head/dashboard", Authorize(authz.OpExamHeadDashboard), func(c *gin.Context) {
		*handlerCalls++
		c.String(http.StatusOK, PrincipalFrom(c).UserID)
	})
	r.GET("/invigilator/dashboard", Authorize(authz.OpInvigilatorDashboard), func(c *gin.Context) {
		*handlerCalls++
		c.String(http.StatusOK, SessionToken(c))
	})
	r.GET("/dashboard", RequireSession(), func(c *gin.Context) {
		*handlerCalls++
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthorizeAllowsMatchingRole(t *testing.T) {
	calls := 0
	r := newEngine(t, &calls)
	req := httptest.NewRequest(http.MethodGet, "/exam-head/dashboard", nil)
	req.Header.Set("Authorization", "Bearer head")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "head", rec.Body.String())
	assert.Equal(t, 1, calls)
}

func TestAuthorizeForbidsOtherRoles(t *testing.T) {
	calls := 0
	r := newEngine(t, &calls)
	req := httptest.NewRequest(http.MethodGet, "/exam-head/dashboard", nil)
	req.Header.Set("Authorization", "Bearer student")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", rec.Body.String())
	assert.Zero(t, calls)
}

func TestAuthorizeRedirectsAnonymous(t *testing.T) {
	calls := 0
	r := newEngine(t, &calls)
	for _, path := range []string{"/exam-head/dashboard", "/dashboard"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, LoginPath, rec.Header().Get("Location"), path)
	}

	req := httptest.NewRequest(http.MethodGet, "/exam-head/dashboard", nil)
	req.Header.Set("Authorization", "Bearer unknown")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Zero(t, calls)
}

func TestAuthenticateReadsSessionCookie(t *testing.T) {
	calls := 0
	r := newEngine(t, &calls)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login-as-invigilator", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/invigilator/dashboard", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cookie-inv", rec.Body.String())
	assert.Equal(t, 1, calls)
}

func TestMetricsLabelsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	obs := &observerStub{}
	r := gin.New()
	r.Use(Metrics(obs))
	r.GET("/exams/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/exams/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, []string{"/exams/:id", "unmatched"}, obs.paths)
}
