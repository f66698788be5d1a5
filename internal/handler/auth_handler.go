package handler

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/middleware"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/internal/web"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
	"github.com/noah-isme/exam-portal/pkg/response"
)

// DeveloperDashboardText is shown to DEVELOPER accounts, which have no dashboard yet.
const DeveloperDashboardText = "Developer Dashboard - Under Construction"

type authService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler serves login, registration, logout and dashboard dispatch.
type AuthHandler struct {
	service authService
	logger  *zap.Logger
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{service: svc, logger: logger}
}

// Index sends signed-in callers to their dashboard and everyone else to the login form.
func (h *AuthHandler) Index(c *gin.Context) {
	if principalFromContext(c) != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, web.LoginPage, gin.H{"Title": "Login"})
}

// Login godoc
// @Summary Authenticate user
// @Description Verify email and password, start a session and return a bearer token for API clients
// @Tags Authentication
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body dto.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Success 302 "Redirect to /dashboard for form posts"
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	jsonClient := wantsJSON(c)

	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.loginFailed(c, jsonClient, req, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.loginFailed(c, jsonClient, req, err)
		return
	}

	if sess := cookieSession(c); sess != nil {
		sess.Set(middleware.CookieTokenKey, res.Session.Token)
		if err := sess.Save(); err != nil {
			h.logger.Error("failed to save session cookie", zap.Error(err))
			response.Error(c, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to start session"))
			return
		}
	}

	if jsonClient {
		response.JSON(c, http.StatusOK, res)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *AuthHandler) loginFailed(c *gin.Context, jsonClient bool, req dto.LoginRequest, err error) {
	if jsonClient {
		response.Error(c, err)
		return
	}
	appErr := appErrors.FromError(err)
	c.HTML(appErr.Status, web.LoginPage, gin.H{"Title": "Login", "Error": appErr.Message, "Email": req.Email})
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, web.RegisterPage, gin.H{"Title": "Register", "Form": dto.RegisterRequest{}, "Roles": models.Roles()})
}

// Register godoc
// @Summary Register account
// @Description Create credentials and a profile; STUDENT accounts also get a student record
// @Tags Authentication
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body dto.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Success 302 "Redirect to /login for form posts"
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	jsonClient := wantsJSON(c)

	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.registerFailed(c, jsonClient, req, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.registerFailed(c, jsonClient, req, err)
		return
	}

	if jsonClient {
		response.Created(c, user)
		return
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

func (h *AuthHandler) registerFailed(c *gin.Context, jsonClient bool, req dto.RegisterRequest, err error) {
	if jsonClient {
		response.Error(c, err)
		return
	}
	req.Password = ""
	appErr := appErrors.FromError(err)
	c.HTML(appErr.Status, web.RegisterPage, gin.H{"Title": "Register", "Error": appErr.Message, "Form": req, "Roles": models.Roles()})
}

// Logout destroys the caller's session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.SessionToken(c); token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			h.logger.Warn("failed to destroy session", zap.Error(err))
		}
	}
	if sess := cookieSession(c); sess != nil {
		sess.Clear()
		sess.Options(sessions.Options{Path: "/", MaxAge: -1})
		if err := sess.Save(); err != nil {
			h.logger.Warn("failed to clear session cookie", zap.Error(err))
		}
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
}

// Dashboard dispatches the caller to the dashboard of their role.
func (h *AuthHandler) Dashboard(c *gin.Context) {
	principal := principalFromContext(c)
	if principal == nil {
		c.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}
	path, ok := authz.DashboardPath(principal.Role)
	if !ok {
		c.String(http.StatusOK, DeveloperDashboardText)
		return
	}
	c.Redirect(http.StatusFound, path)
}
