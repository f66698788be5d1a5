package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/identity"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/internal/repository"
	"github.com/noah-isme/exam-portal/internal/session"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
)

type authUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type authStudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id string) error
}

// AuthConfig defines token settings shared by cookies and bearer tokens.
type AuthConfig struct {
	Secret string
	Issuer string
}

// BearerClaims is the JWT payload handed to API clients; sid references the server-side session.
type BearerClaims struct {
	SessionID string      `json:"sid"`
	Role      models.Role `json:"role"`
	jwt.RegisteredClaims
}

// AuthService is the authentication gate: login, registration and session resolution.
type AuthService struct {
	identities identity.Provider
	users      authUserRepository
	students   authStudentRepository
	sessions   session.Store
	validator  *validator.Validate
	logger     *zap.Logger
	config     AuthConfig
	now        func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(identities identity.Provider, users authUserRepository, students authStudentRepository, sessions session.Store, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.Issuer == "" {
		config.Issuer = "exam-portal"
	}
	return &AuthService{
		identities: identities,
		users:      users,
		students:   students,
		sessions:   sessions,
		validator:  validate,
		logger:     logger,
		config:     config,
		now:        time.Now,
	}
}

// Login verifies credentials, loads the profile and opens a new session.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	ident, err := s.identities.VerifyCredentials(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrIdentityNotFound) || errors.Is(err, identity.ErrPasswordMismatch) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, internalError(err, "failed to verify credentials")
	}

	user, err := s.users.FindByID(ctx, ident.UID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("identity without profile", zap.String("uid", ident.UID))
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, internalError(err, "failed to load user profile")
	}

	sess, err := s.sessions.Create(ctx, models.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	})
	if err != nil {
		return nil, internalError(err, "failed to create session")
	}

	token, err := s.IssueBearer(sess)
	if err != nil {
		return nil, internalError(err, "failed to sign access token")
	}

	redirect, ok := authz.DashboardPath(user.Role)
	if !ok {
		redirect = "/dashboard"
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return &dto.LoginResult{
		Session:     sess,
		User:        *sess.Principal(),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   sess.ExpiresAt,
		Redirect:    redirect,
	}, nil
}

// Register creates the identity and profile documents. A failed profile write undoes the
// earlier writes in reverse order; failures while undoing are logged, never returned.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	req.ShortCode = strings.TrimSpace(req.ShortCode)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid registration")
	}
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid role")
	}
	if role == models.RoleStudent && req.ShortCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required for students")
	}

	ident, err := s.identities.CreateUser(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateEmail, "")
		}
		return nil, internalError(err, "failed to create identity")
	}

	user := &models.User{
		ID:        ident.UID,
		Email:     ident.Email,
		Name:      req.Name,
		Role:      role,
		ShortCode: req.ShortCode,
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.compensate(ctx, ident.UID, false)
		return nil, internalError(err, "failed to create user profile")
	}

	if role == models.RoleStudent {
		student := &models.Student{
			ID:        ident.UID,
			StudentID: req.ShortCode,
			Branch:    strings.TrimSpace(req.Branch),
			Semester:  strings.TrimSpace(req.Semester),
		}
		if err := s.students.Create(ctx, student); err != nil {
			s.compensate(ctx, ident.UID, true)
			return nil, internalError(err, "failed to create student profile")
		}
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

func (s *AuthService) compensate(ctx context.Context, uid string, userWritten bool) {
	if userWritten {
		if err := s.users.Delete(ctx, uid); err != nil {
			s.logger.Warn("failed to roll back user profile", zap.String("uid", uid), zap.Error(err))
		}
	}
	if err := s.identities.DeleteUser(ctx, uid); err != nil {
		s.logger.Warn("failed to roll back identity", zap.String("uid", uid), zap.Error(err))
	}
}

// Logout destroys the session. Unknown tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Destroy(ctx, token); err != nil {
		return internalError(err, "failed to destroy session")
	}
	return nil
}

// ResolveSession maps a session token to its principal.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.Principal, error) {
	if token == "" {
		return nil, appErrors.ErrUnauthenticated
	}
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, appErrors.ErrUnauthenticated
		}
		return nil, internalError(err, "failed to load session")
	}
	return sess.Principal(), nil
}

// IssueBearer signs an HS256 token referencing the session.
func (s *AuthService) IssueBearer(sess *models.Session) (string, error) {
	if s.config.Secret == "" {
		return "", fmt.Errorf("auth secret not configured")
	}
	claims := &BearerClaims{
		SessionID: sess.Token,
		Role:      sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			NotBefore: jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
}

// ParseBearer validates a bearer token and returns the session token it carries.
func (s *AuthService) ParseBearer(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &BearerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithIssuer(s.config.Issuer))
	if err != nil {
		return "", appErrors.WrapAs(appErrors.ErrUnauthenticated, err, "invalid token")
	}
	claims, ok := token.Claims.(*BearerClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", appErrors.Clone(appErrors.ErrUnauthenticated, "invalid token claims")
	}
	return claims.SessionID, nil
}
