package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/internal/repository"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
	"github.com/noah-isme/exam-portal/pkg/export"
)

type rendererStub struct {
	docs []export.HallTicketDocument
	err  error
}

func (r *rendererStub) Render(doc export.HallTicketDocument) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.docs = append(r.docs, doc)
	return []byte("%PDF-stub"), nil
}

type hallTicketRecorderStub struct{ rendered int }

func (s *hallTicketRecorderStub) HallTicketRendered() { s.rendered++ }

type hallTicketFixture struct {
	store      *countingStore
	svc        *HallTicketService
	tickets    *repository.HallTicketRepository
	exams      *repository.ExamRepository
	classrooms *repository.ClassroomRepository
	students   *repository.StudentRepository
	renderer   *rendererStub
	recorder   *hallTicketRecorderStub
}

func newHallTicketFixture() *hallTicketFixture {
	store := newCountingStore()
	f := &hallTicketFixture{
		store:      store,
		tickets:    repository.NewHallTicketRepository(store),
		exams:      repository.NewExamRepository(store),
		classrooms: repository.NewClassroomRepository(store),
		students:   repository.NewStudentRepository(store),
		renderer:   &rendererStub{},
		recorder:   &hallTicketRecorderStub{},
	}
	f.svc = NewHallTicketService(HallTicketServiceParams{
		Tickets:    f.tickets,
		Exams:      f.exams,
		Classrooms: f.classrooms,
		Students:   f.students,
		Renderer:   f.renderer,
		Metrics:    f.recorder,
	})
	return f
}

func (f *hallTicketFixture) seed(t *testing.T) (*models.Exam, *models.Classroom) {
	t.Helper()
	ctx := context.Background()
	exam := &models.Exam{Name: "Midterm", Date: "2024-05-01", Time: "10:00", Status: models.ExamStatusActive}
	require.NoError(t, f.exams.Create(ctx, exam))
	classroom := &models.Classroom{Name: "R101", Rows: 2, Columns: 3}
	require.NoError(t, f.classrooms.Create(ctx, classroom))
	require.NoError(t, f.students.Create(ctx, &models.Student{ID: "s1", StudentID: "CS001"}))
	require.NoError(t, f.students.Create(ctx, &models.Student{ID: "s2", StudentID: "CS002"}))
	return exam, classroom
}

func TestHallTicketServiceGetNotFoundThenFound(t *testing.T) {
	ctx := context.Background()
	f := newHallTicketFixture()

	_, err := f.svc.Get(ctx, "s1", "e1")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	stored := &models.HallTicket{StudentID: "s1", ExamID: "e1", Room: "R101"}
	require.NoError(t, f.tickets.Create(ctx, stored))
	require.NoError(t, f.tickets.Create(ctx, &models.HallTicket{StudentID: "s2", ExamID: "e1"}))

	ticket, err := f.svc.Get(ctx, "s1", "e1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, ticket.ID)

	_, err = f.svc.Get(ctx, "s1", "e2")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestHallTicketServiceIssue(t *testing.T) {
	ctx := context.Background()
	f := newHallTicketFixture()
	exam, classroom := f.seed(t)
	head := principal("head", models.RoleExamHead)

	ticket, err := f.svc.Issue(ctx, head, dto.IssueHallTicketRequest{StudentID: "s1", ExamID: exam.ID, ClassroomID: classroom.ID, Row: 1, Seat: 2})
	require.NoError(t, err)
	assert.Equal(t, "Midterm", ticket.ExamName)
	assert.Equal(t, "CS001", ticket.StudentCode)
	assert.Equal(t, "R101", ticket.Room)
	assert.Equal(t, "2024-05-01", ticket.Date)
	assert.Equal(t, "CS001|"+exam.ID+"|R101", ticket.QRPayload())

	_, err = f.svc.Issue(ctx, head, dto.IssueHallTicketRequest{StudentID: "s1", ExamID: exam.ID, ClassroomID: classroom.ID, Row: 2, Seat: 2})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = f.svc.Issue(ctx, head, dto.IssueHallTicketRequest{StudentID: "s2", ExamID: exam.ID, ClassroomID: classroom.ID, Row: 1, Seat: 2})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = f.svc.Issue(ctx, head, dto.IssueHallTicketRequest{StudentID: "s2", ExamID: exam.ID, ClassroomID: classroom.ID, Row: 3, Seat: 1})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = f.svc.Issue(ctx, head, dto.IssueHallTicketRequest{StudentID: "ghost", ExamID: exam.ID, ClassroomID: classroom.ID, Row: 1, Seat: 1})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	mine, err := f.svc.ListForStudent(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestHallTicketServiceIssueKeepsQRPayloadParseable(t *testing.T) {
	ctx := context.Background()
	f := newHallTicketFixture()
	exam, _ := f.seed(t)
	head := principal("head", models.RoleExamHead)

	piped := &models.Classroom{Name: "Block A|101", Rows: 2, Columns: 2}
	require.NoError(t, f.classrooms.Create(ctx, piped))
	ticket, err := f.svc.Issue(ctx, head, dto.IssueHallTicketRequest{StudentID: "s1", ExamID: exam.ID, ClassroomID: piped.ID, Row: 1, Seat: 1})
	require.NoError(t, err)
	assert.Equal(t, piped.ID, ticket.Room)

	claim, err := models.ParseQRPayload(ticket.QRPayload())
	require.NoError(t, err)
	assert.Equal(t, models.QRClaim{StudentCode: "CS001", ExamID: exam.ID, Room: piped.ID}, claim)

	require.NoError(t, f.students.Create(ctx, &models.Student{ID: "s3", StudentID: "CS|01"}))
	before := f.store.Writes()
	_, err = f.svc.Issue(ctx, head, dto.IssueHallTicketRequest{StudentID: "s3", ExamID: exam.ID, ClassroomID: piped.ID, Row: 2, Seat: 2})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Equal(t, before, f.store.Writes())
}

func TestHallTicketServiceIssueForbidden(t *testing.T) {
	f := newHallTicketFixture()
	exam, classroom := f.seed(t)
	before := f.store.Writes()

	_, err := f.svc.Issue(context.Background(), principal("s1", models.RoleStudent), dto.IssueHallTicketRequest{StudentID: "s1", ExamID: exam.ID, ClassroomID: classroom.ID, Row: 1, Seat: 1})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	assert.Equal(t, before, f.store.Writes())
}

func TestHallTicketServiceRender(t *testing.T) {
	f := newHallTicketFixture()
	ticket := &models.HallTicket{ExamID: "e1", ExamName: "Midterm", StudentCode: "CS001", Room: "R101", Row: 1, Seat: 4, Date: "2024-05-01", Time: "10:00"}

	pdf, err := f.svc.Render(ticket, "Asha")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), pdf)
	require.Len(t, f.renderer.docs, 1)
	assert.Equal(t, "CS001|e1|R101", f.renderer.docs[0].QRPayload)
	assert.Equal(t, "Asha", f.renderer.docs[0].StudentName)
	assert.Equal(t, 1, f.recorder.rendered)

	f.renderer.err = errors.New("boom")
	_, err = f.svc.Render(ticket, "Asha")
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
