package dto

import (
	"time"

	"github.com/noah-isme/exam-portal/internal/models"
)

// LoginRequest is bound from the login form or a JSON body.
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

// RegisterRequest is bound from the registration form or a JSON body.
type RegisterRequest struct {
	Name      string `form:"name" json:"name" validate:"required"`
	Email     string `form:"email" json:"email" validate:"required,email"`
	Password  string `form:"password" json:"password" validate:"required,min=6"`
	Role      string `form:"role" json:"role" validate:"required"`
	ShortCode string `form:"short_code" json:"short_code" validate:"excludesall=0x7C"`
	Branch    string `form:"branch" json:"branch"`
	Semester  string `form:"semester" json:"semester"`
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	Session     *models.Session  `json:"-"`
	User        models.Principal `json:"user"`
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   time.Time        `json:"expires_at"`
	Redirect    string           `json:"redirect"`
}
