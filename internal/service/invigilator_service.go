package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/internal/repository"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
)

type invigilatorRepository interface {
	FindByID(ctx context.Context, userID string) (*models.Invigilator, error)
	Assign(ctx context.Context, inv *models.Invigilator) error
}

type userReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// InvigilatorService manages classroom assignments.
type InvigilatorService struct {
	repo       invigilatorRepository
	users      userReader
	classrooms classroomReader
	logger     *zap.Logger
	now        func() time.Time
}

// NewInvigilatorService constructs an InvigilatorService.
func NewInvigilatorService(repo invigilatorRepository, users userReader, classrooms classroomReader, logger *zap.Logger) *InvigilatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvigilatorService{repo: repo, users: users, classrooms: classrooms, logger: logger, now: time.Now}
}

// AssignedClassroom returns the classroom id for userID, or "" when unassigned.
func (s *InvigilatorService) AssignedClassroom(ctx context.Context, userID string) (string, error) {
	inv, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil
		}
		return "", internalError(err, "failed to load invigilator assignment")
	}
	return inv.AssignedClassroom, nil
}

// Assign points invigilatorID at a classroom. The target must be an invigilator.
func (s *InvigilatorService) Assign(ctx context.Context, actor *models.Principal, invigilatorID string, req dto.AssignInvigilatorRequest) (*models.Invigilator, error) {
	if err := authz.Require(actor, authz.OpAssignInvigilator); err != nil {
		return nil, err
	}
	classroomID := strings.TrimSpace(req.ClassroomID)
	if classroomID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "classroom_id is required")
	}

	user, err := s.users.FindByID(ctx, invigilatorID)
	if err != nil {
		return nil, notFoundOr(err, "user not found", "failed to load user")
	}
	if user.Role != models.RoleInvigilator {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user is not an invigilator")
	}
	if _, err := s.classrooms.FindByID(ctx, classroomID); err != nil {
		return nil, notFoundOr(err, "classroom not found", "failed to load classroom")
	}

	inv := &models.Invigilator{
		ID:                invigilatorID,
		AssignedClassroom: classroomID,
		AssignedBy:        actor.UserID,
		UpdatedAt:         s.now().UTC(),
	}
	if err := s.repo.Assign(ctx, inv); err != nil {
		return nil, internalError(err, "failed to assign invigilator")
	}
	s.logger.Info("invigilator assigned", zap.String("invigilator_id", invigilatorID), zap.String("classroom_id", classroomID))
	return inv, nil
}
