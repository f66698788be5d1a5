package dto

import "io"

// MarkAttendanceRequest is the JSON body of mark-attendance.
type MarkAttendanceRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	ClassroomID string `json:"classroom_id" validate:"required"`
	Status      string `json:"status" validate:"required"`
}

// ReportMalpracticeRequest holds the text fields of the multipart form.
type ReportMalpracticeRequest struct {
	StudentID   string `form:"student_id" validate:"required"`
	Description string `form:"description" validate:"required"`
	Severity    string `form:"severity" validate:"required,oneof=low medium high"`
}

// EvidenceUpload is an optional attachment to a malpractice report.
type EvidenceUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
