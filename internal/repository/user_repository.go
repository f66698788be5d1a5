package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// UserRepository persists user profiles keyed by identity uid.
type UserRepository struct {
	store docstore.Store
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create writes the profile under user.ID.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.store.Set(ctx, CollectionUsers, user.ID, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID loads a profile.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := getInto(ctx, r.store, CollectionUsers, id, &user); err != nil {
		return nil, err
	}
	user.ID = id
	return &user, nil
}

// Delete removes a profile.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.store, CollectionUsers, id)
}
