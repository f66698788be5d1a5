package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
)

type attendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	ListByClassroomAndDate(ctx context.Context, classroomID, date string) ([]models.AttendanceRecord, error)
}

type attendanceRecorder interface {
	AttendanceMarked(status string)
}

// AttendanceService records invigilator marks.
type AttendanceService struct {
	repo      attendanceRepository
	metrics   attendanceRecorder
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

// NewAttendanceService constructs an AttendanceService. metrics may be nil.
func NewAttendanceService(repo attendanceRepository, metrics attendanceRecorder, validate *validator.Validate, logger *zap.Logger, loc *time.Location) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{repo: repo, metrics: metrics, validator: validate, logger: logger, location: loc, now: time.Now}
}

// Mark appends a record. Timestamp and date come from the same clock reading.
func (s *AttendanceService) Mark(ctx context.Context, actor *models.Principal, req dto.MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	if err := authz.Require(actor, authz.OpMarkAttendance); err != nil {
		return nil, err
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.ClassroomID = strings.TrimSpace(req.ClassroomID)
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance")
	}
	status, ok := models.ParseAttendanceStatus(req.Status)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be present or absent")
	}

	now := s.now().In(s.location)
	record := &models.AttendanceRecord{
		StudentID:   req.StudentID,
		ClassroomID: req.ClassroomID,
		Status:      status,
		MarkedBy:    actor.UserID,
		Timestamp:   now,
		Date:        now.Format(dateLayout),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, internalError(err, "failed to record attendance")
	}
	if s.metrics != nil {
		s.metrics.AttendanceMarked(string(status))
	}
	s.logger.Info("attendance marked",
		zap.String("student_id", record.StudentID),
		zap.String("classroom_id", record.ClassroomID),
		zap.String("status", string(status)),
		zap.String("marked_by", actor.UserID),
	)
	return record, nil
}

// CountForClassroom counts every mark for classroomID on date.
func (s *AttendanceService) CountForClassroom(ctx context.Context, classroomID, date string) (int, error) {
	records, err := s.repo.ListByClassroomAndDate(ctx, classroomID, date)
	if err != nil {
		return 0, internalError(err, "failed to count attendance")
	}
	count := 0
	for _, record := range records {
		if record.ClassroomID == classroomID && record.Date == date {
			count++
		}
	}
	return count, nil
}
