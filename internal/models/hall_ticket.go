package models

import (
	"fmt"
	"strings"
	"time"
)

const qrSeparator = "|"

// HallTicket is the per-student, per-exam admission record.
type HallTicket struct {
	ID          string    `json:"id,omitempty"`
	StudentID   string    `json:"student_id"`
	ExamID      string    `json:"exam_id"`
	ExamName    string    `json:"exam_name"`
	StudentCode string    `json:"student_code"`
	Room        string    `json:"room"`
	Row         int       `json:"row"`
	Seat        int       `json:"seat"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	ClassroomID string    `json:"classroom_id"`
	IssuedAt    time.Time `json:"issued_at"`
}

// QRPayload encodes "studentCode|examId|room".
func (h HallTicket) QRPayload() string {
	return strings.Join([]string{h.StudentCode, h.ExamID, h.Room}, qrSeparator)
}

// QRFieldValid reports whether v can be carried as one field of the QR payload.
func QRFieldValid(v string) bool {
	return v != "" && !strings.Contains(v, qrSeparator)
}

// QRClaim is the decoded verification token.
type QRClaim struct {
	StudentCode string
	ExamID      string
	Room        string
}

// ParseQRPayload reverses QRPayload.
func ParseQRPayload(raw string) (QRClaim, error) {
	parts := strings.Split(raw, qrSeparator)
	if len(parts) != 3 {
		return QRClaim{}, fmt.Errorf("qr payload must have 3 fields, got %d", len(parts))
	}
	for _, p := range parts {
		if p == "" {
			return QRClaim{}, fmt.Errorf("qr payload has an empty field")
		}
	}
	return QRClaim{StudentCode: parts[0], ExamID: parts[1], Room: parts[2]}, nil
}
