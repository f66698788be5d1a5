package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// AttendanceRepository appends attendance marks.
type AttendanceRepository struct {
	store docstore.Store
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(store docstore.Store) *AttendanceRepository {
	return &AttendanceRepository{store: store}
}

// Create appends a record and stamps its id.
func (r *AttendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	id, err := r.store.Add(ctx, CollectionAttendance, record)
	if err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	record.ID = id
	return nil
}

// ListByClassroomAndDate returns marks for one classroom on one calendar day.
func (r *AttendanceRepository) ListByClassroomAndDate(ctx context.Context, classroomID, date string) ([]models.AttendanceRecord, error) {
	snaps, err := r.store.Query(ctx, CollectionAttendance, docstore.Query{Filters: []docstore.Filter{
		docstore.Where("classroom_id", classroomID),
		docstore.Where("date", date),
	}})
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return docstore.Decode(snaps, func(a *models.AttendanceRecord, id string) { a.ID = id })
}
