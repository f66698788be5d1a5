package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTicket() HallTicketDocument {
	return HallTicketDocument{
		ExamID:      "exam-1",
		ExamName:    "Midterm",
		StudentName: "Asha",
		StudentCode: "CS001",
		Room:        "R101",
		Row:         2,
		Seat:        5,
		Date:        "2024-05-01",
		Time:        "10:00",
		QRPayload:   "CS001|exam-1|R101",
	}
}

func TestHallTicketPDFPlaceholder(t *testing.T) {
	out, err := NewHallTicketPDF(false).Render(sampleTicket())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.True(t, bytes.Contains(out, []byte("Hall Ticket - Midterm")))
	assert.False(t, bytes.Contains(out, []byte("/Subtype /Image")))
}

func TestHallTicketPDFEmbedsQR(t *testing.T) {
	out, err := NewHallTicketPDF(true).Render(sampleTicket())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	assert.True(t, bytes.Contains(out, []byte("/Subtype /Image")))
}

func TestHallTicketPDFRequiresPayload(t *testing.T) {
	doc := sampleTicket()
	doc.QRPayload = ""
	_, err := NewHallTicketPDF(false).Render(doc)
	require.Error(t, err)
}

func TestHallTicketPDFTranslatesLatinText(t *testing.T) {
	doc := sampleTicket()
	doc.ExamName = "Étape finale"
	doc.StudentName = "José Núñez"
	out, err := NewHallTicketPDF(false).Render(doc)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("Hall Ticket - \xc9tape finale")))
	assert.False(t, bytes.Contains(out, []byte("\xc3\x89tape")))
}
