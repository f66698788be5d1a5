package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// InvigilatorRepository stores classroom assignments keyed by the invigilator's user id.
type InvigilatorRepository struct {
	store docstore.Store
}

// NewInvigilatorRepository constructs an InvigilatorRepository.
func NewInvigilatorRepository(store docstore.Store) *InvigilatorRepository {
	return &InvigilatorRepository{store: store}
}

// FindByID loads the assignment for userID.
func (r *InvigilatorRepository) FindByID(ctx context.Context, userID string) (*models.Invigilator, error) {
	var inv models.Invigilator
	if err := getInto(ctx, r.store, CollectionInvigilators, userID, &inv); err != nil {
		return nil, err
	}
	inv.ID = userID
	return &inv, nil
}

// Assign upserts the assignment.
func (r *InvigilatorRepository) Assign(ctx context.Context, inv *models.Invigilator) error {
	if err := r.store.Set(ctx, CollectionInvigilators, inv.ID, inv); err != nil {
		return fmt.Errorf("assign invigilator: %w", err)
	}
	return nil
}
