package dto

import "github.com/noah-isme/exam-portal/internal/models"

// StudentDashboard lists active exams and the caller's hall tickets.
type StudentDashboard struct {
	Student     *models.Student     `json:"student"`
	Exams       []models.Exam       `json:"exams"`
	HallTickets []models.HallTicket `json:"hall_tickets"`
}

// ExamHeadDashboard lists every exam and the pending malpractice reports.
type ExamHeadDashboard struct {
	Exams              []models.Exam              `json:"exams"`
	MalpracticeReports []models.MalpracticeReport `json:"malpractice_reports"`
}

// InvigilatorDashboard shows the assigned classroom and who is seated there.
type InvigilatorDashboard struct {
	Classroom *models.ClassroomView `json:"classroom"`
	Students  []models.HallTicket   `json:"students"`
}

// ValuatorDashboard lists sheets and results awaiting work.
type ValuatorDashboard struct {
	AnswerSheets   []models.AnswerSheet `json:"answer_sheets"`
	PendingResults []models.Result      `json:"pending_results"`
}
