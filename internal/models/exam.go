package models

import "time"

// ExamStatus tracks the exam lifecycle.
type ExamStatus string

const (
	ExamStatusDraft  ExamStatus = "draft"
	ExamStatusActive ExamStatus = "active"
	ExamStatusClosed ExamStatus = "closed"
)

var examTransitions = map[ExamStatus]ExamStatus{
	ExamStatusDraft:  ExamStatusActive,
	ExamStatusActive: ExamStatusClosed,
}

// CanTransitionTo reports whether next directly follows s.
func (s ExamStatus) CanTransitionTo(next ExamStatus) bool {
	return examTransitions[s] == next
}

// Exam is created by an exam head and starts in draft.
type Exam struct {
	ID         string     `json:"id,omitempty"`
	Name       string     `json:"name"`
	Date       string     `json:"date"`
	Time       string     `json:"time"`
	Subjects   []string   `json:"subjects"`
	TotalSeats int        `json:"total_seats"`
	Status     ExamStatus `json:"status"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
}
