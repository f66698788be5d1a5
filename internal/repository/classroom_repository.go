package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// ClassroomRepository persists seating grids.
type ClassroomRepository struct {
	store docstore.Store
}

// NewClassroomRepository constructs a ClassroomRepository.
func NewClassroomRepository(store docstore.Store) *ClassroomRepository {
	return &ClassroomRepository{store: store}
}

// Create stores a classroom and stamps its id.
func (r *ClassroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	id, err := r.store.Add(ctx, CollectionClassrooms, classroom)
	if err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}
	classroom.ID = id
	return nil
}

// Update overwrites name and grid dimensions.
func (r *ClassroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	fields := map[string]interface{}{
		"name":    classroom.Name,
		"rows":    classroom.Rows,
		"columns": classroom.Columns,
	}
	if err := r.store.Update(ctx, CollectionClassrooms, classroom.ID, fields); err != nil {
		return fmt.Errorf("update classroom: %w", err)
	}
	return nil
}

// FindByID loads one classroom.
func (r *ClassroomRepository) FindByID(ctx context.Context, id string) (*models.Classroom, error) {
	var classroom models.Classroom
	if err := getInto(ctx, r.store, CollectionClassrooms, id, &classroom); err != nil {
		return nil, err
	}
	classroom.ID = id
	return &classroom, nil
}

// List returns every classroom.
func (r *ClassroomRepository) List(ctx context.Context) ([]models.Classroom, error) {
	snaps, err := r.store.Query(ctx, CollectionClassrooms, docstore.Query{})
	if err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return docstore.Decode(snaps, func(c *models.Classroom, id string) { c.ID = id })
}
