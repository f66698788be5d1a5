// Package identity verifies credentials and owns the identities collection.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// Collection holds credential documents.
const Collection = "identities"

var (
	// ErrEmailExists is returned by CreateUser when the email is already registered.
	ErrEmailExists = errors.New("identity: email already exists")
	// ErrIdentityNotFound is returned when no identity matches.
	ErrIdentityNotFound = errors.New("identity: not found")
	// ErrPasswordMismatch is returned when the password does not verify.
	ErrPasswordMismatch = errors.New("identity: password mismatch")
)

// Provider is the external identity boundary used by the auth gate.
type Provider interface {
	CreateUser(ctx context.Context, email, password string) (*models.Identity, error)
	VerifyCredentials(ctx context.Context, email, password string) (*models.Identity, error)
	LookupByEmail(ctx context.Context, email string) (*models.Identity, error)
	DeleteUser(ctx context.Context, uid string) error
}

// LocalProvider keeps bcrypt hashes in the document store.
type LocalProvider struct {
	store docstore.Store
	cost  int
	now   func() time.Time
	// serialises email uniqueness checks within this process
	mu sync.Mutex
}

// NewLocalProvider constructs a provider. A cost of zero selects bcrypt.DefaultCost.
func NewLocalProvider(store docstore.Store, cost int) *LocalProvider {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &LocalProvider{store: store, cost: cost, now: time.Now}
}

// CreateUser hashes the password and stores a new identity.
func (p *LocalProvider) CreateUser(ctx context.Context, email, password string) (*models.Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("identity: email and password required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.LookupByEmail(ctx, email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrIdentityNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, fmt.Errorf("identity: hash password: %w", err)
	}
	ident := &models.Identity{Email: email, PasswordHash: string(hash), CreatedAt: p.now().UTC()}
	uid, err := p.store.Add(ctx, Collection, ident)
	if err != nil {
		return nil, fmt.Errorf("identity: store: %w", err)
	}
	ident.UID = uid
	return ident, nil
}

// VerifyCredentials returns the identity when the password matches its hash.
func (p *LocalProvider) VerifyCredentials(ctx context.Context, email, password string) (*models.Identity, error) {
	ident, err := p.LookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return nil, ErrPasswordMismatch
	}
	return ident, nil
}

// LookupByEmail finds an identity by its normalised email.
func (p *LocalProvider) LookupByEmail(ctx context.Context, email string) (*models.Identity, error) {
	snaps, err := p.store.Query(ctx, Collection, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("email", normalizeEmail(email))},
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("identity: lookup: %w", err)
	}
	if len(snaps) == 0 {
		return nil, ErrIdentityNotFound
	}
	var ident models.Identity
	if err := snaps[0].DataTo(&ident); err != nil {
		return nil, err
	}
	ident.UID = snaps[0].ID
	return &ident, nil
}

// DeleteUser removes an identity. Deleting a missing identity is not an error.
func (p *LocalProvider) DeleteUser(ctx context.Context, uid string) error {
	if err := p.store.Delete(ctx, Collection, uid); err != nil && !errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("identity: delete: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
