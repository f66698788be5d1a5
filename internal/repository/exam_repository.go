package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// ExamRepository persists exams.
type ExamRepository struct {
	store docstore.Store
}

// NewExamRepository constructs an ExamRepository.
func NewExamRepository(store docstore.Store) *ExamRepository {
	return &ExamRepository{store: store}
}

// Create stores the exam and stamps the generated id.
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	id, err := r.store.Add(ctx, CollectionExams, exam)
	if err != nil {
		return fmt.Errorf("create exam: %w", err)
	}
	exam.ID = id
	return nil
}

// FindByID loads one exam.
func (r *ExamRepository) FindByID(ctx context.Context, id string) (*models.Exam, error) {
	var exam models.Exam
	if err := getInto(ctx, r.store, CollectionExams, id, &exam); err != nil {
		return nil, err
	}
	exam.ID = id
	return &exam, nil
}

// List returns all exams, or only those in status when it is non-empty.
func (r *ExamRepository) List(ctx context.Context, status models.ExamStatus) ([]models.Exam, error) {
	q := docstore.Query{}
	if status != "" {
		q.Filters = append(q.Filters, docstore.Where("status", status))
	}
	snaps, err := r.store.Query(ctx, CollectionExams, q)
	if err != nil {
		return nil, fmt.Errorf("list exams: %w", err)
	}
	return docstore.Decode(snaps, func(e *models.Exam, id string) { e.ID = id })
}

// UpdateStatus sets the lifecycle status.
func (r *ExamRepository) UpdateStatus(ctx context.Context, id string, status models.ExamStatus) error {
	if err := r.store.Update(ctx, CollectionExams, id, map[string]interface{}{"status": status}); err != nil {
		return fmt.Errorf("update exam status: %w", err)
	}
	return nil
}
