package service

import (
	"context"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-portal/internal/authz"
	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
	"github.com/noah-isme/exam-portal/pkg/storage"
)

const evidencePrefix = "malpractice_evidence/"

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

type malpracticeRepository interface {
	Create(ctx context.Context, report *models.MalpracticeReport) error
	FindByID(ctx context.Context, id string) (*models.MalpracticeReport, error)
	ListByStatus(ctx context.Context, status models.MalpracticeStatus) ([]models.MalpracticeReport, error)
	Resolve(ctx context.Context, id, resolverID string, at time.Time) error
}

type malpracticeRecorder interface {
	MalpracticeReported(severity string, withEvidence bool)
}

// MalpracticeService files and resolves malpractice reports.
type MalpracticeService struct {
	repo        malpracticeRepository
	blobs       storage.BlobStore
	metrics     malpracticeRecorder
	validator   *validator.Validate
	logger      *zap.Logger
	maxEvidence int64
	now         func() time.Time
}

// NewMalpracticeService constructs a MalpracticeService. maxEvidence <= 0 disables the size check.
func NewMalpracticeService(repo malpracticeRepository, blobs storage.BlobStore, metrics malpracticeRecorder, validate *validator.Validate, logger *zap.Logger, maxEvidence int64) *MalpracticeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &MalpracticeService{repo: repo, blobs: blobs, metrics: metrics, validator: validate, logger: logger, maxEvidence: maxEvidence, now: time.Now}
}

// Report uploads optional evidence, then stores a pending report. Nothing is written when the
// upload fails.
func (s *MalpracticeService) Report(ctx context.Context, actor *models.Principal, req dto.ReportMalpracticeRequest, evidence *dto.EvidenceUpload) (*models.MalpracticeReport, error) {
	if err := authz.Require(actor, authz.OpReportMalpractice); err != nil {
		return nil, err
	}
	req.StudentID = strings.TrimSpace(req.StudentID)
	req.Description = strings.TrimSpace(req.Description)
	req.Severity = strings.ToLower(strings.TrimSpace(req.Severity))
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid malpractice report")
	}

	report := &models.MalpracticeReport{
		StudentID:   req.StudentID,
		ReportedBy:  actor.UserID,
		Description: req.Description,
		Severity:    models.Severity(req.Severity),
		Status:      models.MalpracticePending,
		ReportedAt:  s.now().UTC(),
	}

	if evidence != nil && evidence.Filename != "" {
		if s.maxEvidence > 0 && evidence.Size > s.maxEvidence {
			return nil, appErrors.Clone(appErrors.ErrValidation, "evidence file is too large")
		}
		key := EvidenceKey(uuid.NewString(), evidence.Filename)
		obj, err := s.blobs.Upload(ctx, key, evidence.Body, evidence.ContentType)
		if err != nil {
			s.logger.Error("evidence upload failed", zap.String("key", key), zap.Error(err))
			return nil, appErrors.WrapAs(appErrors.ErrEvidenceUpload, err, "")
		}
		report.EvidenceKey = &obj.Key
		report.EvidenceURL = &obj.URL
	}

	if err := s.repo.Create(ctx, report); err != nil {
		if report.EvidenceKey != nil {
			s.discardEvidence(ctx, *report.EvidenceKey)
		}
		return nil, internalError(err, "failed to store malpractice report")
	}
	if s.metrics != nil {
		s.metrics.MalpracticeReported(req.Severity, report.EvidenceKey != nil)
	}
	s.logger.Info("malpractice reported",
		zap.String("report_id", report.ID),
		zap.String("student_id", report.StudentID),
		zap.String("severity", req.Severity),
		zap.Bool("evidence", report.EvidenceKey != nil),
	)
	return report, nil
}

func (s *MalpracticeService) discardEvidence(ctx context.Context, key string) {
	if err := s.blobs.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to remove orphaned evidence", zap.String("key", key), zap.Error(err))
	}
}

// ListPending returns reports awaiting resolution.
func (s *MalpracticeService) ListPending(ctx context.Context) ([]models.MalpracticeReport, error) {
	reports, err := s.repo.ListByStatus(ctx, models.MalpracticePending)
	if err != nil {
		return nil, internalError(err, "failed to list malpractice reports")
	}
	return reports, nil
}

// Resolve closes a pending report.
func (s *MalpracticeService) Resolve(ctx context.Context, actor *models.Principal, id string) (*models.MalpracticeReport, error) {
	if err := authz.Require(actor, authz.OpResolveMalpractice); err != nil {
		return nil, err
	}
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "malpractice report not found", "failed to load malpractice report")
	}
	if report.Status != models.MalpracticePending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "malpractice report already resolved")
	}
	at := s.now().UTC()
	if err := s.repo.Resolve(ctx, id, actor.UserID, at); err != nil {
		return nil, internalError(err, "failed to resolve malpractice report")
	}
	report.Status = models.MalpracticeResolved
	report.ResolvedBy = &actor.UserID
	report.ResolvedAt = &at
	return report, nil
}

// EvidenceURL signs a fresh download URL for the report's evidence.
func (s *MalpracticeService) EvidenceURL(ctx context.Context, actor *models.Principal, id string) (string, error) {
	if err := authz.Require(actor, authz.OpViewEvidence); err != nil {
		return "", err
	}
	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", notFoundOr(err, "malpractice report not found", "failed to load malpractice report")
	}
	if report.EvidenceKey == nil || *report.EvidenceKey == "" {
		return "", appErrors.Clone(appErrors.ErrNotFound, "report has no evidence")
	}
	url, err := s.blobs.URL(*report.EvidenceKey)
	if err != nil {
		return "", internalError(err, "failed to sign evidence url")
	}
	return url, nil
}

// EvidenceKey builds the object key for an uploaded file.
func EvidenceKey(id, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "evidence"
	}
	return evidencePrefix + id + "_" + name
}
