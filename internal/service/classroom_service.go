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

const dateLayout = "2006-01-02"

type classroomRepository interface {
	Create(ctx context.Context, classroom *models.Classroom) error
	Update(ctx context.Context, classroom *models.Classroom) error
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
	List(ctx context.Context) ([]models.Classroom, error)
}

type attendanceCounter interface {
	CountForClassroom(ctx context.Context, classroomID, date string) (int, error)
}

// ClassroomService manages seating grids and live occupancy.
type ClassroomService struct {
	repo       classroomRepository
	attendance attendanceCounter
	validator  *validator.Validate
	logger     *zap.Logger
	location   *time.Location
	now        func() time.Time
}

// NewClassroomService constructs a ClassroomService. loc decides what "today" means.
func NewClassroomService(repo classroomRepository, attendance attendanceCounter, validate *validator.Validate, logger *zap.Logger, loc *time.Location) *ClassroomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ClassroomService{repo: repo, attendance: attendance, validator: validate, logger: logger, location: loc, now: time.Now}
}

// List returns every classroom with its derived seat count.
func (s *ClassroomService) List(ctx context.Context) ([]models.ClassroomView, error) {
	classrooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list classrooms")
	}
	views := make([]models.ClassroomView, 0, len(classrooms))
	for _, classroom := range classrooms {
		views = append(views, classroom.View())
	}
	return views, nil
}

// Get loads one classroom.
func (s *ClassroomService) Get(ctx context.Context, id string) (*models.Classroom, error) {
	classroom, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, internalError(err, "failed to load classroom")
	}
	return classroom, nil
}

// Create adds a classroom.
func (s *ClassroomService) Create(ctx context.Context, actor *models.Principal, req dto.ClassroomRequest) (*models.ClassroomView, error) {
	if err := authz.Require(actor, authz.OpManageClassroom); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid classroom")
	}
	classroom := &models.Classroom{Name: req.Name, Rows: req.Rows, Columns: req.Columns}
	if err := s.repo.Create(ctx, classroom); err != nil {
		return nil, internalError(err, "failed to create classroom")
	}
	view := classroom.View()
	return &view, nil
}

// Update replaces the name and grid of an existing classroom.
func (s *ClassroomService) Update(ctx context.Context, actor *models.Principal, id string, req dto.ClassroomRequest) (*models.ClassroomView, error) {
	if err := authz.Require(actor, authz.OpManageClassroom); err != nil {
		return nil, err
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid classroom")
	}
	classroom := &models.Classroom{ID: id, Name: req.Name, Rows: req.Rows, Columns: req.Columns}
	if err := s.repo.Update(ctx, classroom); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, internalError(err, "failed to update classroom")
	}
	view := classroom.View()
	return &view, nil
}

// Today returns the current calendar date in the configured location.
func (s *ClassroomService) Today() string {
	return s.now().In(s.location).Format(dateLayout)
}

// LiveMonitoring counts attendance per classroom for date, defaulting to today.
func (s *ClassroomService) LiveMonitoring(ctx context.Context, date string) ([]models.ClassroomOccupancy, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = s.Today()
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "date must be YYYY-MM-DD")
	}

	classrooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to list classrooms")
	}
	out := make([]models.ClassroomOccupancy, 0, len(classrooms))
	for _, classroom := range classrooms {
		present, err := s.attendance.CountForClassroom(ctx, classroom.ID, date)
		if err != nil {
			return nil, err
		}
		out = append(out, models.ClassroomOccupancy{
			Classroom:    classroom.View(),
			PresentCount: present,
			TotalSeats:   classroom.TotalSeats(),
		})
	}
	return out, nil
}
