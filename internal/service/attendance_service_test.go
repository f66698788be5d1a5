package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/internal/repository"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
)

type attendanceRecorderStub struct {
	statuses []string
}

func (s *attendanceRecorderStub) AttendanceMarked(status string) {
	s.statuses = append(s.statuses, status)
}

func TestAttendanceServiceMarkDerivesDateFromTimestamp(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("UTC-5", -5*3600)
	recorder := &attendanceRecorderStub{}
	svc := NewAttendanceService(repository.NewAttendanceRepository(newCountingStore()), recorder, nil, nil, loc)
	svc.now = fixedClock(time.Date(2024, 5, 2, 3, 30, 0, 0, time.UTC))

	record, err := svc.Mark(ctx, principal("inv", models.RoleInvigilator), dto.MarkAttendanceRequest{StudentID: "s1", ClassroomID: "c1", Status: "PRESENT"})
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "2024-05-01", record.Date)
	assert.Equal(t, record.Date, record.Timestamp.Format("2006-01-02"))
	assert.Equal(t, models.AttendancePresent, record.Status)
	assert.Equal(t, "inv", record.MarkedBy)
	assert.Equal(t, []string{"present"}, recorder.statuses)
}

func TestAttendanceServiceAppendsWithoutDedup(t *testing.T) {
	ctx := context.Background()
	svc := NewAttendanceService(repository.NewAttendanceRepository(newCountingStore()), nil, nil, nil, time.UTC)
	inv := principal("inv", models.RoleInvigilator)
	req := dto.MarkAttendanceRequest{StudentID: "s1", ClassroomID: "c1", Status: "present"}

	_, err := svc.Mark(ctx, inv, req)
	require.NoError(t, err)
	_, err = svc.Mark(ctx, inv, req)
	require.NoError(t, err)

	count, err := svc.CountForClassroom(ctx, "c1", svc.now().UTC().Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAttendanceServiceRejections(t *testing.T) {
	store := newCountingStore()
	svc := NewAttendanceService(repository.NewAttendanceRepository(store), nil, nil, nil, time.UTC)

	_, err := svc.Mark(context.Background(), principal("inv", models.RoleInvigilator), dto.MarkAttendanceRequest{StudentID: "s1", ClassroomID: "c1", Status: "late"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Mark(context.Background(), principal("inv", models.RoleInvigilator), dto.MarkAttendanceRequest{ClassroomID: "c1", Status: "present"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Mark(context.Background(), principal("head", models.RoleExamHead), dto.MarkAttendanceRequest{StudentID: "s1", ClassroomID: "c1", Status: "present"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Zero(t, store.Writes())
}
