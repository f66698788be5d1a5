package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	"github.com/noah-isme/exam-portal/internal/web"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
	"github.com/noah-isme/exam-portal/pkg/response"
)

const examHeadDashboardPath = "/exam-head/dashboard"

type examHeadDashboardProvider interface {
	ExamHead(ctx context.Context, actor *models.Principal) (*dto.ExamHeadDashboard, error)
}

type examManager interface {
	Create(ctx context.Context, actor *models.Principal, req dto.CreateExamRequest) (*models.Exam, error)
	UpdateStatus(ctx context.Context, actor *models.Principal, examID string, req dto.UpdateExamStatusRequest) (*models.Exam, error)
}

type classroomManager interface {
	List(ctx context.Context) ([]models.ClassroomView, error)
	Create(ctx context.Context, actor *models.Principal, req dto.ClassroomRequest) (*models.ClassroomView, error)
	Update(ctx context.Context, actor *models.Principal, id string, req dto.ClassroomRequest) (*models.ClassroomView, error)
	LiveMonitoring(ctx context.Context, date string) ([]models.ClassroomOccupancy, error)
}

type hallTicketIssuer interface {
	Issue(ctx context.Context, actor *models.Principal, req dto.IssueHallTicketRequest) (*models.HallTicket, error)
}

type invigilatorAssigner interface {
	Assign(ctx context.Context, actor *models.Principal, invigilatorID string, req dto.AssignInvigilatorRequest) (*models.Invigilator, error)
}

type malpracticeReviewer interface {
	Resolve(ctx context.Context, actor *models.Principal, id string) (*models.MalpracticeReport, error)
	EvidenceURL(ctx context.Context, actor *models.Principal, id string) (string, error)
}

// ExamHeadDeps groups the services behind the exam head pages.
type ExamHeadDeps struct {
	Dashboard    examHeadDashboardProvider
	Exams        examManager
	Classrooms   classroomManager
	HallTickets  hallTicketIssuer
	Invigilators invigilatorAssigner
	Malpractice  malpracticeReviewer
}

// ExamHeadHandler serves exam administration.
type ExamHeadHandler struct {
	deps ExamHeadDeps
}

// NewExamHeadHandler constructs the handler.
func NewExamHeadHandler(deps ExamHeadDeps) *ExamHeadHandler {
	return &ExamHeadHandler{deps: deps}
}

// Dashboard godoc
// @Summary Exam head dashboard
// @Description All exams and pending malpractice reports
// @Tags ExamHead
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /exam-head/dashboard [get]
func (h *ExamHeadHandler) Dashboard(c *gin.Context) {
	res, err := h.deps.Dashboard.ExamHead(c.Request.Context(), principalFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// CreateExamPage renders the exam form.
func (h *ExamHeadHandler) CreateExamPage(c *gin.Context) {
	c.HTML(http.StatusOK, web.CreateExamPage, gin.H{"Title": "Create Exam", "Form": dto.CreateExamRequest{}})
}

// CreateExam godoc
// @Summary Create exam
// @Description Create a draft exam
// @Tags ExamHead
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body dto.CreateExamRequest true "Exam payload"
// @Success 201 {object} response.Envelope
// @Success 302 "Redirect to the dashboard for form posts"
// @Failure 400 {object} response.Envelope
// @Router /exam-head/create-exam [post]
func (h *ExamHeadHandler) CreateExam(c *gin.Context) {
	jsonClient := wantsJSON(c)

	var req dto.CreateExamRequest
	if err := c.ShouldBind(&req); err != nil {
		h.createExamFailed(c, jsonClient, req, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid exam payload"))
		return
	}

	exam, err := h.deps.Exams.Create(c.Request.Context(), principalFromContext(c), req)
	if err != nil {
		h.createExamFailed(c, jsonClient, req, err)
		return
	}

	if jsonClient {
		response.Created(c, exam)
		return
	}
	c.Redirect(http.StatusFound, examHeadDashboardPath)
}

func (h *ExamHeadHandler) createExamFailed(c *gin.Context, jsonClient bool, req dto.CreateExamRequest, err error) {
	appErr := appErrors.FromError(err)
	if jsonClient || appErr.Status == http.StatusForbidden || appErr.Status == http.StatusUnauthorized {
		response.Error(c, err)
		return
	}
	c.HTML(appErr.Status, web.CreateExamPage, gin.H{"Title": "Create Exam", "Error": appErr.Message, "Form": req})
}

// UpdateExamStatus godoc
// @Summary Change exam status
// @Description Move an exam from draft to active or from active to closed
// @Tags ExamHead
// @Accept json
// @Produce json
// @Param id path string true "Exam ID"
// @Param payload body dto.UpdateExamStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exam-head/exams/{id}/status [post]
func (h *ExamHeadHandler) UpdateExamStatus(c *gin.Context) {
	var req dto.UpdateExamStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	exam, err := h.deps.Exams.UpdateStatus(c.Request.Context(), principalFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exam)
}

// ClassroomBuilder godoc
// @Summary List classrooms
// @Description Classrooms with their seat grids
// @Tags ExamHead
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /exam-head/classroom-builder [get]
func (h *ExamHeadHandler) ClassroomBuilder(c *gin.Context) {
	classrooms, err := h.deps.Classrooms.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"classrooms": classrooms})
}

// CreateClassroom godoc
// @Summary Create classroom
// @Tags ExamHead
// @Accept json
// @Produce json
// @Param payload body dto.ClassroomRequest true "Classroom payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exam-head/classrooms [post]
func (h *ExamHeadHandler) CreateClassroom(c *gin.Context) {
	var req dto.ClassroomRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid classroom payload"))
		return
	}
	classroom, err := h.deps.Classrooms.Create(c.Request.Context(), principalFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, classroom)
}

// UpdateClassroom godoc
// @Summary Edit classroom
// @Tags ExamHead
// @Accept json
// @Produce json
// @Param id path string true "Classroom ID"
// @Param payload body dto.ClassroomRequest true "Classroom payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exam-head/classrooms/{id} [put]
func (h *ExamHeadHandler) UpdateClassroom(c *gin.Context) {
	var req dto.ClassroomRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid classroom payload"))
		return
	}
	classroom, err := h.deps.Classrooms.Update(c.Request.Context(), principalFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classroom)
}

// LiveMonitoring godoc
// @Summary Live monitoring
// @Description Present count per classroom for a day
// @Tags ExamHead
// @Produce json
// @Param date query string false "Day as YYYY-MM-DD, defaults to today"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exam-head/live-monitoring [get]
func (h *ExamHeadHandler) LiveMonitoring(c *gin.Context) {
	occupancy, err := h.deps.Classrooms.LiveMonitoring(c.Request.Context(), c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"classrooms": occupancy})
}

// IssueHallTicket godoc
// @Summary Issue hall ticket
// @Description Seat a student for an exam
// @Tags ExamHead
// @Accept json
// @Produce json
// @Param payload body dto.IssueHallTicketRequest true "Hall ticket payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /exam-head/hall-tickets [post]
func (h *ExamHeadHandler) IssueHallTicket(c *gin.Context) {
	var req dto.IssueHallTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hall ticket payload"))
		return
	}
	ticket, err := h.deps.HallTickets.Issue(c.Request.Context(), principalFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ticket)
}

// AssignInvigilator godoc
// @Summary Assign invigilator
// @Description Point an invigilator at a classroom
// @Tags ExamHead
// @Accept json
// @Produce json
// @Param id path string true "Invigilator user ID"
// @Param payload body dto.AssignInvigilatorRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exam-head/invigilators/{id}/assignment [put]
func (h *ExamHeadHandler) AssignInvigilator(c *gin.Context) {
	var req dto.AssignInvigilatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.deps.Invigilators.Assign(c.Request.Context(), principalFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment)
}

// ResolveMalpractice godoc
// @Summary Resolve malpractice report
// @Tags ExamHead
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /exam-head/malpractice/{id}/resolve [post]
func (h *ExamHeadHandler) ResolveMalpractice(c *gin.Context) {
	report, err := h.deps.Malpractice.Resolve(c.Request.Context(), principalFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// MalpracticeEvidence redirects to a freshly signed download URL for the report's evidence.
func (h *ExamHeadHandler) MalpracticeEvidence(c *gin.Context) {
	url, err := h.deps.Malpractice.EvidenceURL(c.Request.Context(), principalFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, url)
}
