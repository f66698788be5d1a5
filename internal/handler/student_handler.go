package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
	"github.com/noah-isme/exam-portal/pkg/response"
)

type studentDashboardProvider interface {
	Student(ctx context.Context, actor *models.Principal) (*dto.StudentDashboard, error)
}

type hallTicketDownloader interface {
	Get(ctx context.Context, studentID, examID string) (*models.HallTicket, error)
	Render(ticket *models.HallTicket, studentName string) ([]byte, error)
}

// StudentHandler serves the student pages.
type StudentHandler struct {
	dashboard studentDashboardProvider
	tickets   hallTicketDownloader
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(dashboard studentDashboardProvider, tickets hallTicketDownloader) *StudentHandler {
	return &StudentHandler{dashboard: dashboard, tickets: tickets}
}

// Dashboard godoc
// @Summary Student dashboard
// @Description Active exams and the caller's hall tickets
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {string} string "Forbidden"
// @Router /student/dashboard [get]
func (h *StudentHandler) Dashboard(c *gin.Context) {
	res, err := h.dashboard.Student(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// DownloadHallTicket godoc
// @Summary Download hall ticket
// @Description Render the caller's hall ticket for an exam as PDF
// @Tags Student
// @Produce application/pdf
// @Param examId path string true "Exam ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /student/hall-ticket/{examId} [get]
func (h *StudentHandler) DownloadHallTicket(c *gin.Context) {
	principal := principalFromContext(c)
	if principal == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}
	examID := c.Param("examId")

	ticket, err := h.tickets.Get(c.Request.Context(), principal.UserID, examID)
	if err != nil {
		response.Error(c, err)
		return
	}
	pdf, err := h.tickets.Render(ticket, principal.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=hall_ticket_%s.pdf", examID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
