package models

import "time"

type MalpracticeStatus string

const (
	MalpracticePending  MalpracticeStatus = "pending"
	MalpracticeResolved MalpracticeStatus = "resolved"
)

// Severity grades a malpractice incident.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// MalpracticeReport is filed by an invigilator and resolved by the exam head.
type MalpracticeReport struct {
	ID          string            `json:"id,omitempty"`
	StudentID   string            `json:"student_id"`
	ReportedBy  string            `json:"reported_by"`
	Description string            `json:"description"`
	Severity    Severity          `json:"severity"`
	EvidenceURL *string           `json:"evidence_url,omitempty"`
	EvidenceKey *string           `json:"evidence_key,omitempty"`
	Status      MalpracticeStatus `json:"status"`
	ReportedAt  time.Time         `json:"reported_at"`
	ResolvedBy  *string           `json:"resolved_by,omitempty"`
	ResolvedAt  *time.Time        `json:"resolved_at,omitempty"`
}
