package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageName = "hall-ticket-qr"

// QRPlaceholder is printed where the QR image would go when embedding is disabled.
const QRPlaceholder = "QR Code: [Image would be here]"

// HallTicketDocument is the data printed on a hall ticket.
type HallTicketDocument struct {
	ExamID      string
	ExamName    string
	StudentName string
	StudentCode string
	Room        string
	Row         int
	Seat        int
	Date        string
	Time        string
	QRPayload   string
}

// HallTicketPDF renders hall tickets with gofpdf.
type HallTicketPDF struct {
	embedQR bool
}

// NewHallTicketPDF constructs the renderer. When embedQR is false only a text placeholder is
// printed in place of the code.
func NewHallTicketPDF(embedQR bool) *HallTicketPDF {
	return &HallTicketPDF{embedQR: embedQR}
}

// EmbedsQR reports whether rendered tickets carry a scannable image.
func (r *HallTicketPDF) EmbedsQR() bool {
	return r.embedQR
}

// Render produces a single-page PDF.
func (r *HallTicketPDF) Render(doc HallTicketDocument) ([]byte, error) {
	if doc.QRPayload == "" {
		return nil, fmt.Errorf("hall ticket requires a qr payload")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// core fonts are cp1252 encoded
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	title := tr(fmt.Sprintf("Hall Ticket - %s", doc.ExamName))
	pdf.SetTitle(title, false)
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	lines := []string{
		fmt.Sprintf("Student: %s", doc.StudentName),
		fmt.Sprintf("Student ID: %s", doc.StudentCode),
		fmt.Sprintf("Room: %s", doc.Room),
		fmt.Sprintf("Seat: Row %d, Seat %d", doc.Row, doc.Seat),
		fmt.Sprintf("Date: %s", doc.Date),
		fmt.Sprintf("Time: %s", doc.Time),
	}
	for _, line := range lines {
		pdf.CellFormat(0, 8, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	if r.embedQR {
		png, err := qrcode.Encode(doc.QRPayload, qrcode.Medium, 256)
		if err != nil {
			return nil, fmt.Errorf("encode qr: %w", err)
		}
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))
		pdf.ImageOptions(qrImageName, pdf.GetX(), pdf.GetY(), 40, 40, true, opts, 0, "")
	} else {
		pdf.CellFormat(0, 8, QRPlaceholder, "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Verification: %s", doc.QRPayload)), "", 1, "L", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
