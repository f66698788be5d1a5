package models

import (
	"strings"
	"time"
)

// AttendanceStatus is the mark recorded by an invigilator.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// ParseAttendanceStatus normalises the status, returning false for unknown values.
func ParseAttendanceStatus(raw string) (AttendanceStatus, bool) {
	status := AttendanceStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case AttendancePresent, AttendanceAbsent:
		return status, true
	default:
		return "", false
	}
}

// AttendanceRecord is appended on every mark; Date is the calendar day of Timestamp.
type AttendanceRecord struct {
	ID          string           `json:"id,omitempty"`
	StudentID   string           `json:"student_id"`
	ClassroomID string           `json:"classroom_id"`
	Status      AttendanceStatus `json:"status"`
	MarkedBy    string           `json:"marked_by"`
	Timestamp   time.Time        `json:"timestamp"`
	Date        string           `json:"date"`
}
