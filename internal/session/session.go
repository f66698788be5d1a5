// Package session stores login sessions behind opaque random tokens.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/noah-isme/exam-portal/internal/models"
)

// ErrSessionNotFound is returned for unknown or expired tokens.
var ErrSessionNotFound = errors.New("session not found")

// Store is implemented by every session backend.
type Store interface {
	Create(ctx context.Context, principal models.Principal) (*models.Session, error)
	Get(ctx context.Context, token string) (*models.Session, error)
	Destroy(ctx context.Context, token string) error
}

const tokenBytes = 32

func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
