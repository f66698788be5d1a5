package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// MalpracticeRepository persists malpractice reports.
type MalpracticeRepository struct {
	store docstore.Store
}

// NewMalpracticeRepository constructs a MalpracticeRepository.
func NewMalpracticeRepository(store docstore.Store) *MalpracticeRepository {
	return &MalpracticeRepository{store: store}
}

// Create stores a report and stamps its id.
func (r *MalpracticeRepository) Create(ctx context.Context, report *models.MalpracticeReport) error {
	id, err := r.store.Add(ctx, CollectionMalpracticeReports, report)
	if err != nil {
		return fmt.Errorf("create malpractice report: %w", err)
	}
	report.ID = id
	return nil
}

// FindByID loads one report.
func (r *MalpracticeRepository) FindByID(ctx context.Context, id string) (*models.MalpracticeReport, error) {
	var report models.MalpracticeReport
	if err := getInto(ctx, r.store, CollectionMalpracticeReports, id, &report); err != nil {
		return nil, err
	}
	report.ID = id
	return &report, nil
}

// ListByStatus returns reports in status.
func (r *MalpracticeRepository) ListByStatus(ctx context.Context, status models.MalpracticeStatus) ([]models.MalpracticeReport, error) {
	snaps, err := r.store.Query(ctx, CollectionMalpracticeReports, docstore.Query{
		Filters: []docstore.Filter{docstore.Where("status", status)},
	})
	if err != nil {
		return nil, fmt.Errorf("list malpractice reports: %w", err)
	}
	return docstore.Decode(snaps, func(m *models.MalpracticeReport, id string) { m.ID = id })
}

// Resolve marks a report resolved by resolverID.
func (r *MalpracticeRepository) Resolve(ctx context.Context, id, resolverID string, at time.Time) error {
	fields := map[string]interface{}{
		"status":      models.MalpracticeResolved,
		"resolved_by": resolverID,
		"resolved_at": at,
	}
	if err := r.store.Update(ctx, CollectionMalpracticeReports, id, fields); err != nil {
		return fmt.Errorf("resolve malpractice report: %w", err)
	}
	return nil
}
