package models

import "time"

const (
	AnswerSheetPendingEvaluation = "pending_evaluation"
	ResultPendingApproval        = "pending_approval"
)

// AnswerSheet is a scanned script awaiting a valuator.
type AnswerSheet struct {
	ID         string    `json:"id,omitempty"`
	StudentID  string    `json:"student_id"`
	ExamID     string    `json:"exam_id"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	AssignedTo string    `json:"assigned_to,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Result is a scored sheet awaiting approval.
type Result struct {
	ID          string    `json:"id,omitempty"`
	StudentID   string    `json:"student_id"`
	ExamID      string    `json:"exam_id"`
	Subject     string    `json:"subject"`
	Marks       float64   `json:"marks"`
	Status      string    `json:"status"`
	EvaluatedBy string    `json:"evaluated_by,omitempty"`
	EvaluatedAt time.Time `json:"evaluated_at"`
}
