package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// EvaluationRepository reads answer sheets and results.
type EvaluationRepository struct {
	store docstore.Store
}

// NewEvaluationRepository constructs an EvaluationRepository.
func NewEvaluationRepository(store docstore.Store) *EvaluationRepository {
	return &EvaluationRepository{store: store}
}

// ListAnswerSheets returns sheets in status.
func (r *EvaluationRepository) ListAnswerSheets(ctx context.Context, status string) ([]models.AnswerSheet, error) {
	snaps, err := r.store.Query(ctx, CollectionAnswerSheets, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("status", status)},
	})
	if err != nil {
		return nil, fmt.Errorf("list answer sheets: %w", err)
	}
	return docstore.Decode(snaps, func(a *models.AnswerSheet, id string) { a.ID = id })
}

// ListResults returns results in status.
func (r *EvaluationRepository) ListResults(ctx context.Context, status string) ([]models.Result, error) {
	snaps, err := r.store.Query(ctx, CollectionResults, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("status", status)},
	})
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return docstore.Decode(snaps, func(res *models.Result, id string) { res.ID = id })
}
