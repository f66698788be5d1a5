package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// HallTicketRepository persists issued hall tickets.
type HallTicketRepository struct {
	store docstore.Store
}

// NewHallTicketRepository constructs a HallTicketRepository.
func NewHallTicketRepository(store docstore.Store) *HallTicketRepository {
	return &HallTicketRepository{store: store}
}

// Create stores a ticket and stamps its id.
func (r *HallTicketRepository) Create(ctx context.Context, ticket *models.HallTicket) error {
	id, err := r.store.Add(ctx, CollectionHallTickets, ticket)
	if err != nil {
		return fmt.Errorf("create hall ticket: %w", err)
	}
	ticket.ID = id
	return nil
}

// ListByStudent returns the tickets naming studentID.
func (r *HallTicketRepository) ListByStudent(ctx context.Context, studentID string) ([]models.HallTicket, error) {
	return r.query(ctx, docstore.Query{Filters: []docstore.Filter{docstore.Where("student_id", studentID)}})
}

// FindByStudentAndExam returns every ticket matching both keys; callers decide on cardinality.
func (r *HallTicketRepository) FindByStudentAndExam(ctx context.Context, studentID, examID string) ([]models.HallTicket, error) {
	return r.query(ctx, docstore.Query{Filters: []docstore.Filter{
		docstore.Where("student_id", studentID),
		docstore.Where("exam_id", examID),
	}})
}

// ListByClassroom returns tickets seated in classroomID.
func (r *HallTicketRepository) ListByClassroom(ctx context.Context, classroomID string) ([]models.HallTicket, error) {
	return r.query(ctx, docstore.Query{Filters: []docstore.Filter{docstore.Where("classroom_id", classroomID)}})
}

func (r *HallTicketRepository) query(ctx context.Context, q docstore.Query) ([]models.HallTicket, error) {
	snaps, err := r.store.Query(ctx, CollectionHallTickets, q)
	if err != nil {
		return nil, fmt.Errorf("query hall tickets: %w", err)
	}
	return docstore.Decode(snaps, func(h *models.HallTicket, id string) { h.ID = id })
}
