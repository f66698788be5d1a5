package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/internal/repository"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
)

type examLister interface {
	ListActive(ctx context.Context) ([]models.Exam, error)
	ListAll(ctx context.Context) ([]models.Exam, error)
}

type hallTicketLister interface {
	ListForStudent(ctx context.Context, studentID string) ([]models.HallTicket, error)
	ListForClassroom(ctx context.Context, classroomID string) ([]models.HallTicket, error)
}

type pendingReportLister interface {
	ListPending(ctx context.Context) ([]models.MalpracticeReport, error)
}

type classroomGetter interface {
	Get(ctx context.Context, id string) (*models.Classroom, error)
}

type assignmentReader interface {
	AssignedClassroom(ctx context.Context, userID string) (string, error)
}

type evaluationLister interface {
	ListPendingSheets(ctx context.Context) ([]models.AnswerSheet, error)
	ListPendingResults(ctx context.Context) ([]models.Result, error)
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Students     studentReader
	Exams        examLister
	HallTickets  hallTicketLister
	Malpractice  pendingReportLister
	Classrooms   classroomGetter
	Invigilators assignmentReader
	Evaluation   evaluationLister
	Logger       *zap.Logger
}

// DashboardService composes the per-role landing pages.
type DashboardService struct {
	students     studentReader
	exams        examLister
	hallTickets  hallTicketLister
	malpractice  pendingReportLister
	classrooms   classroomGetter
	invigilators assignmentReader
	evaluation   evaluationLister
	logger       *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		students:     params.Students,
		exams:        params.Exams,
		hallTickets:  params.HallTickets,
		malpractice:  params.Malpractice,
		classrooms:   params.Classrooms,
		invigilators: params.Invigilators,
		evaluation:   params.Evaluation,
		logger:       logger,
	}
}

// Student lists active exams and the caller's own hall tickets.
func (s *DashboardService) Student(ctx context.Context, actor *models.Principal) (*dto.StudentDashboard, error) {
	if err := authz.Require(actor, authz.OpStudentDashboard); err != nil {
		return nil, err
	}
	student, err := s.students.FindByID(ctx, actor.UserID)
	if err != nil {
		if !isNotFound(err) {
			return nil, internalError(err, "failed to load student profile")
		}
		student = nil
	}
	exams, err := s.exams.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	tickets, err := s.hallTickets.ListForStudent(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.StudentDashboard{Student: student, Exams: exams, HallTickets: tickets}, nil
}

// ExamHead lists every exam with the pending malpractice queue.
func (s *DashboardService) ExamHead(ctx context.Context, actor *models.Principal) (*dto.ExamHeadDashboard, error) {
	if err := authz.Require(actor, authz.OpExamHeadDashboard); err != nil {
		return nil, err
	}
	exams, err := s.exams.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	reports, err := s.malpractice.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ExamHeadDashboard{Exams: exams, MalpracticeReports: reports}, nil
}

// Invigilator shows the assigned classroom and its seated students. Unassigned invigilators get
// an empty page.
func (s *DashboardService) Invigilator(ctx context.Context, actor *models.Principal) (*dto.InvigilatorDashboard, error) {
	if err := authz.Require(actor, authz.OpInvigilatorDashboard); err != nil {
		return nil, err
	}
	out := &dto.InvigilatorDashboard{Students: []models.HallTicket{}}
	classroomID, err := s.invigilators.AssignedClassroom(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if classroomID == "" {
		return out, nil
	}

	classroom, err := s.classrooms.Get(ctx, classroomID)
	switch {
	case err == nil:
		view := classroom.View()
		out.Classroom = &view
	case isNotFound(err):
		s.logger.Warn("assigned classroom missing", zap.String("invigilator_id", actor.UserID), zap.String("classroom_id", classroomID))
	default:
		return nil, err
	}

	students, err := s.hallTickets.ListForClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	out.Students = students
	return out, nil
}

// Valuator lists answer sheets and results awaiting work.
func (s *DashboardService) Valuator(ctx context.Context, actor *models.Principal) (*dto.ValuatorDashboard, error) {
	if err := authz.Require(actor, authz.OpValuatorDashboard); err != nil {
		return nil, err
	}
	sheets, err := s.evaluation.ListPendingSheets(ctx)
	if err != nil {
		return nil, err
	}
	results, err := s.evaluation.ListPendingResults(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ValuatorDashboard{AnswerSheets: sheets, PendingResults: results}, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, appErrors.ErrNotFound) || errors.Is(err, repository.ErrNotFound)
}
