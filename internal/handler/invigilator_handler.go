package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
	"github.com/noah-isme/exam-portal/pkg/response"
)

// EvidenceField is the multipart field carrying malpractice evidence.
const EvidenceField = "evidence"

type invigilatorDashboardProvider interface {
	Invigilator(ctx context.Context, actor *models.Principal) (*dto.InvigilatorDashboard, error)
}

type attendanceMarker interface {
	Mark(ctx context.Context, actor *models.Principal, req dto.MarkAttendanceRequest) (*models.AttendanceRecord, error)
}

type malpracticeReporter interface {
	Report(ctx context.Context, actor *models.Principal, req dto.ReportMalpracticeRequest, evidence *dto.EvidenceUpload) (*models.MalpracticeReport, error)
}

// InvigilatorHandler serves the invigilator pages.
type InvigilatorHandler struct {
	dashboard   invigilatorDashboardProvider
	attendance  attendanceMarker
	malpractice malpracticeReporter
}

// NewInvigilatorHandler constructs the handler.
func NewInvigilatorHandler(dashboard invigilatorDashboardProvider, attendance attendanceMarker, malpractice malpracticeReporter) *InvigilatorHandler {
	return &InvigilatorHandler{dashboard: dashboard, attendance: attendance, malpractice: malpractice}
}

// Dashboard godoc
// @Summary Invigilator dashboard
// @Description Assigned classroom and the students seated in it
// @Tags Invigilator
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /invigilator/dashboard [get]
func (h *InvigilatorHandler) Dashboard(c *gin.Context) {
	res, err := h.dashboard.Invigilator(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// MarkAttendance godoc
// @Summary Mark attendance
// @Tags Invigilator
// @Accept json
// @Produce json
// @Param payload body dto.MarkAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Outcome
// @Failure 400 {object} response.Outcome
// @Router /invigilator/mark-attendance [post]
func (h *InvigilatorHandler) MarkAttendance(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Failure(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}
	if _, err := h.attendance.Mark(c.Request.Context(), principalFromContext(c), req); err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c)
}

// ReportMalpractice godoc
// @Summary Report malpractice
// @Tags Invigilator
// @Accept multipart/form-data
// @Produce json
// @Param student_id formData string true "Student ID"
// @Param description formData string true "What happened"
// @Param severity formData string true "low, medium or high"
// @Param evidence formData file false "Evidence file"
// @Success 200 {object} response.Outcome
// @Failure 400 {object} response.Outcome
// @Failure 502 {object} response.Outcome
// @Router /invigilator/report-malpractice [post]
func (h *InvigilatorHandler) ReportMalpractice(c *gin.Context) {
	var req dto.ReportMalpracticeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Failure(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid malpractice payload"))
		return
	}

	var evidence *dto.EvidenceUpload
	header, err := c.FormFile(EvidenceField)
	switch {
	case err == nil:
		file, openErr := header.Open()
		if openErr != nil {
			response.Failure(c, appErrors.Wrap(openErr, appErrors.ErrValidation.Code, http.StatusBadRequest, "unreadable evidence file"))
			return
		}
		defer file.Close()
		evidence = &dto.EvidenceUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Body:        file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		response.Failure(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid evidence upload"))
		return
	}

	if _, err := h.malpractice.Report(c.Request.Context(), principalFromContext(c), req, evidence); err != nil {
		response.Failure(c, err)
		return
	}
	response.Success(c)
}
