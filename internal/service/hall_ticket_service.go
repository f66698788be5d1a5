package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/internal/repository"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
	"github.com/noah-isme/exam-portal/pkg/export"
)

type hallTicketRepository interface {
	Create(ctx context.Context, ticket *models.HallTicket) error
	ListByStudent(ctx context.Context, studentID string) ([]models.HallTicket, error)
	FindByStudentAndExam(ctx context.Context, studentID, examID string) ([]models.HallTicket, error)
	ListByClassroom(ctx context.Context, classroomID string) ([]models.HallTicket, error)
}

type examReader interface {
	FindByID(ctx context.Context, id string) (*models.Exam, error)
}

type classroomReader interface {
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
}

type studentReader interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// HallTicketRenderer turns a ticket into a printable document.
type HallTicketRenderer interface {
	Render(doc export.HallTicketDocument) ([]byte, error)
}

type hallTicketRecorder interface {
	HallTicketRendered()
}

// HallTicketServiceParams groups constructor dependencies.
type HallTicketServiceParams struct {
	Tickets    hallTicketRepository
	Exams      examReader
	Classrooms classroomReader
	Students   studentReader
	Renderer   HallTicketRenderer
	Metrics    hallTicketRecorder
	Validator  *validator.Validate
	Logger     *zap.Logger
}

// HallTicketService issues, lists and renders hall tickets.
type HallTicketService struct {
	tickets    hallTicketRepository
	exams      examReader
	classrooms classroomReader
	students   studentReader
	renderer   HallTicketRenderer
	metrics    hallTicketRecorder
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewHallTicketService constructs a HallTicketService.
func NewHallTicketService(params HallTicketServiceParams) *HallTicketService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	return &HallTicketService{
		tickets:    params.Tickets,
		exams:      params.Exams,
		classrooms: params.Classrooms,
		students:   params.Students,
		renderer:   params.Renderer,
		metrics:    params.Metrics,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

// ListForStudent returns the tickets naming studentID.
func (s *HallTicketService) ListForStudent(ctx context.Context, studentID string) ([]models.HallTicket, error) {
	tickets, err := s.tickets.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, internalError(err, "failed to list hall tickets")
	}
	return tickets, nil
}

// ListForClassroom returns the tickets seated in classroomID.
func (s *HallTicketService) ListForClassroom(ctx context.Context, classroomID string) ([]models.HallTicket, error) {
	tickets, err := s.tickets.ListByClassroom(ctx, classroomID)
	if err != nil {
		return nil, internalError(err, "failed to list classroom hall tickets")
	}
	return tickets, nil
}

// Get returns the ticket for (studentID, examID).
func (s *HallTicketService) Get(ctx context.Context, studentID, examID string) (*models.HallTicket, error) {
	tickets, err := s.tickets.FindByStudentAndExam(ctx, studentID, examID)
	if err != nil {
		return nil, internalError(err, "failed to load hall ticket")
	}
	if len(tickets) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "hall ticket not found")
	}
	if len(tickets) > 1 {
		s.logger.Warn("duplicate hall tickets", zap.String("student_id", studentID), zap.String("exam_id", examID), zap.Int("count", len(tickets)))
	}
	ticket := tickets[0]
	return &ticket, nil
}

// Render produces the PDF for ticket, printing studentName as the holder.
func (s *HallTicketService) Render(ticket *models.HallTicket, studentName string) ([]byte, error) {
	pdf, err := s.renderer.Render(export.HallTicketDocument{
		ExamID:      ticket.ExamID,
		ExamName:    ticket.ExamName,
		StudentName: studentName,
		StudentCode: ticket.StudentCode,
		Room:        ticket.Room,
		Row:         ticket.Row,
		Seat:        ticket.Seat,
		Date:        ticket.Date,
		Time:        ticket.Time,
		QRPayload:   ticket.QRPayload(),
	})
	if err != nil {
		return nil, internalError(err, "failed to render hall ticket")
	}
	if s.metrics != nil {
		s.metrics.HallTicketRendered()
	}
	return pdf, nil
}

// Issue seats a student for an exam. A student holds at most one ticket per exam and a seat
// holds at most one student per exam.
func (s *HallTicketService) Issue(ctx context.Context, actor *models.Principal, req dto.IssueHallTicketRequest) (*models.HallTicket, error) {
	if err := authz.Require(actor, authz.OpIssueHallTicket); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid hall ticket")
	}

	exam, err := s.exams.FindByID(ctx, req.ExamID)
	if err != nil {
		return nil, notFoundOr(err, "exam not found", "failed to load exam")
	}
	classroom, err := s.classrooms.FindByID(ctx, req.ClassroomID)
	if err != nil {
		return nil, notFoundOr(err, "classroom not found", "failed to load classroom")
	}
	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, notFoundOr(err, "student not found", "failed to load student")
	}
	if req.Row > classroom.Rows || req.Seat > classroom.Columns {
		return nil, appErrors.Clone(appErrors.ErrValidation, "seat is outside the classroom grid")
	}

	existing, err := s.tickets.FindByStudentAndExam(ctx, req.StudentID, req.ExamID)
	if err != nil {
		return nil, internalError(err, "failed to check existing hall tickets")
	}
	if len(existing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student already holds a hall ticket for this exam")
	}
	seated, err := s.tickets.ListByClassroom(ctx, req.ClassroomID)
	if err != nil {
		return nil, internalError(err, "failed to check seat allocation")
	}
	for _, other := range seated {
		if other.ExamID == req.ExamID && other.Row == req.Row && other.Seat == req.Seat {
			return nil, appErrors.Clone(appErrors.ErrConflict, "seat already allocated for this exam")
		}
	}

	if !models.QRFieldValid(student.StudentID) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student code cannot be encoded on a hall ticket")
	}
	room := classroom.Name
	if !models.QRFieldValid(room) {
		room = classroom.ID
	}
	ticket := &models.HallTicket{
		StudentID:   req.StudentID,
		ExamID:      exam.ID,
		ExamName:    exam.Name,
		StudentCode: student.StudentID,
		Room:        room,
		Row:         req.Row,
		Seat:        req.Seat,
		Date:        exam.Date,
		Time:        exam.Time,
		ClassroomID: classroom.ID,
		IssuedAt:    s.now().UTC(),
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, internalError(err, "failed to issue hall ticket")
	}
	s.logger.Info("hall ticket issued", zap.String("ticket_id", ticket.ID), zap.String("student_id", ticket.StudentID), zap.String("exam_id", ticket.ExamID))
	return ticket, nil
}

func notFoundOr(err error, notFound, internal string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	return internalError(err, internal)
}
