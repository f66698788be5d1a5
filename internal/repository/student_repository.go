package repository

import (
	"context"
	"fmt"

	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// StudentRepository persists student-only profile fields.
type StudentRepository struct {
	store docstore.Store
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(store docstore.Store) *StudentRepository {
	return &StudentRepository{store: store}
}

// Create writes the record under student.ID, which equals the user id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.store.Set(ctx, CollectionStudents, student.ID, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// FindByID loads a student record.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := getInto(ctx, r.store, CollectionStudents, id, &student); err != nil {
		return nil, err
	}
	student.ID = id
	return &student, nil
}

// Delete removes a student record.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	return deleteDoc(ctx, r.store, CollectionStudents, id)
}
