package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/noah-isme/exam-portal/pkg/docstore"
)

// Collection names shared by every backend.
const (
	CollectionUsers              = "users"
	CollectionStudents           = "students"
	CollectionExams              = "exams"
	CollectionClassrooms         = "classrooms"
	CollectionHallTickets        = "hall_tickets"
	CollectionAttendance         = "attendance"
	CollectionMalpracticeReports = "malpractice_reports"
	CollectionAnswerSheets       = "answer_sheets"
	CollectionResults            = "results"
	CollectionInvigilators       = "invigilators"
)

// ErrNotFound mirrors docstore.ErrNotFound so services need not import the driver package.
var ErrNotFound = docstore.ErrNotFound

func getInto(ctx context.Context, store docstore.Store, collection, id string, dest interface{}) error {
	snap, err := store.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return snap.DataTo(dest)
}

func deleteDoc(ctx context.Context, store docstore.Store, collection, id string) error {
	if err := store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}
