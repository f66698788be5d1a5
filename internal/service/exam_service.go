package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/internal/repository"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
)

type examRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	FindByID(ctx context.Context, id string) (*models.Exam, error)
	List(ctx context.Context, status models.ExamStatus) ([]models.Exam, error)
	UpdateStatus(ctx context.Context, id string, status models.ExamStatus) error
}

// ExamService manages the exam lifecycle.
type ExamService struct {
	repo      examRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewExamService constructs an ExamService.
func NewExamService(repo examRepository, validate *validator.Validate, logger *zap.Logger) *ExamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ExamService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// ListActive returns the exams students may see.
func (s *ExamService) ListActive(ctx context.Context) ([]models.Exam, error) {
	exams, err := s.repo.List(ctx, models.ExamStatusActive)
	if err != nil {
		return nil, internalError(err, "failed to list active exams")
	}
	active := make([]models.Exam, 0, len(exams))
	for _, exam := range exams {
		if exam.Status == models.ExamStatusActive {
			active = append(active, exam)
		}
	}
	return active, nil
}

// ListAll returns every exam regardless of status.
func (s *ExamService) ListAll(ctx context.Context) ([]models.Exam, error) {
	exams, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, internalError(err, "failed to list exams")
	}
	return exams, nil
}

// Create stores a new draft exam authored by actor.
func (s *ExamService) Create(ctx context.Context, actor *models.Principal, req dto.CreateExamRequest) (*models.Exam, error) {
	if err := authz.Require(actor, authz.OpCreateExam); err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	subjects := make([]string, 0, len(req.Subjects))
	for _, subject := range req.Subjects {
		if trimmed := strings.TrimSpace(subject); trimmed != "" {
			subjects = append(subjects, trimmed)
		}
	}
	req.Subjects = subjects
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid exam")
	}

	exam := &models.Exam{
		Name:       req.Name,
		Date:       req.Date,
		Time:       req.Time,
		Subjects:   req.Subjects,
		TotalSeats: req.TotalSeats,
		Status:     models.ExamStatusDraft,
		CreatedBy:  actor.UserID,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, exam); err != nil {
		return nil, internalError(err, "failed to create exam")
	}
	s.logger.Info("exam created", zap.String("exam_id", exam.ID), zap.String("created_by", actor.UserID))
	return exam, nil
}

// UpdateStatus advances an exam one step: draft to active, or active to closed.
func (s *ExamService) UpdateStatus(ctx context.Context, actor *models.Principal, examID string, req dto.UpdateExamStatusRequest) (*models.Exam, error) {
	if err := authz.Require(actor, authz.OpUpdateExamStatus); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid status")
	}

	exam, err := s.repo.FindByID(ctx, examID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		return nil, internalError(err, "failed to load exam")
	}

	next := models.ExamStatus(req.Status)
	if !exam.Status.CanTransitionTo(next) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cannot move exam from "+string(exam.Status)+" to "+string(next))
	}
	if err := s.repo.UpdateStatus(ctx, examID, next); err != nil {
		return nil, internalError(err, "failed to update exam status")
	}
	exam.Status = next
	s.logger.Info("exam status changed", zap.String("exam_id", examID), zap.String("status", string(next)))
	return exam, nil
}
