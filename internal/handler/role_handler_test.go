package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-portal/internal/dto"
	"github.com/noah-isme/exam-portal/internal/models"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
)

type fakeStudentSrv struct {
	ticket     *models.HallTicket
	getErr     error
	renderedAs string
}

func (f *fakeStudentSrv) Student(context.Context, *models.Principal) (*dto.StudentDashboard, error) {
	return &dto.StudentDashboard{Exams: []models.Exam{{ID: "e1", Name: "Midterm", Status: models.ExamStatusActive}}}, nil
}

func (f *fakeStudentSrv) Get(_ context.Context, _, _ string) (*models.HallTicket, error) {
	return f.ticket, f.getErr
}

func (f *fakeStudentSrv) Render(_ *models.HallTicket, name string) ([]byte, error) {
	f.renderedAs = name
	return []byte("%PDF-1.3 fake"), nil
}

func TestStudentHandlerDownloadHallTicket(t *testing.T) {
	srv := &fakeStudentSrv{ticket: &models.HallTicket{ID: "t1", ExamID: "e1"}}
	h := NewStudentHandler(srv, srv)

	c, rec := newContext(t, &httptestRequest{method: http.MethodGet, target: "/student/hall-ticket/e1"}, &models.Principal{UserID: "s1", Name: "Asha", Role: models.RoleStudent})
	c.AddParam("examId", "e1")

	serve(c, h.DownloadHallTicket)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=hall_ticket_e1.pdf", rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	assert.Equal(t, "Asha", srv.renderedAs)
}

func TestStudentHandlerDownloadHallTicketNotFound(t *testing.T) {
	srv := &fakeStudentSrv{getErr: appErrors.Clone(appErrors.ErrNotFound, "hall ticket not found")}
	h := NewStudentHandler(srv, srv)

	c, rec := newContext(t, &httptestRequest{method: http.MethodGet, target: "/student/hall-ticket/e9"}, &models.Principal{UserID: "s1", Role: models.RoleStudent})
	c.AddParam("examId", "e9")

	serve(c, h.DownloadHallTicket)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudentHandlerDashboard(t *testing.T) {
	srv := &fakeStudentSrv{}
	h := NewStudentHandler(srv, srv)
	c, rec := newContext(t, &httptestRequest{method: http.MethodGet, target: "/student/dashboard"}, &models.Principal{UserID: "s1", Role: models.RoleStudent})

	serve(c, h.Dashboard)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	exams := envelope.Data["exams"].([]interface{})
	assert.Len(t, exams, 1)
}

type fakeExamSrv struct {
	created   *dto.CreateExamRequest
	createErr error
	status    string
}

func (f *fakeExamSrv) Create(_ context.Context, _ *models.Principal, req dto.CreateExamRequest) (*models.Exam, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = &req
	return &models.Exam{ID: "exam-1", Name: req.Name, Status: models.ExamStatusDraft}, nil
}

func (f *fakeExamSrv) UpdateStatus(_ context.Context, _ *models.Principal, id string, req dto.UpdateExamStatusRequest) (*models.Exam, error) {
	f.status = req.Status
	return &models.Exam{ID: id, Status: models.ExamStatus(req.Status)}, nil
}

func TestExamHeadHandlerCreateExamForm(t *testing.T) {
	exams := &fakeExamSrv{}
	h := NewExamHeadHandler(ExamHeadDeps{Exams: exams})

	form := url.Values{
		"name": {"Midterm"}, "date": {"2024-05-01"}, "time": {"10:00"},
		"subjects": {"Maths", "Physics"}, "total_seats": {"60"},
	}
	c, rec := newContext(t, &httptestRequest{
		method: http.MethodPost, target: "/exam-head/create-exam",
		body: strings.NewReader(form.Encode()), contentType: "application/x-www-form-urlencoded",
	}, &models.Principal{UserID: "h1", Role: models.RoleExamHead})

	serve(c, h.CreateExam)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/exam-head/dashboard", rec.Header().Get("Location"))
	require.NotNil(t, exams.created)
	assert.Equal(t, []string{"Maths", "Physics"}, exams.created.Subjects)
	assert.Equal(t, 60, exams.created.TotalSeats)
}

func TestExamHeadHandlerCreateExamJSON(t *testing.T) {
	h := NewExamHeadHandler(ExamHeadDeps{Exams: &fakeExamSrv{}})
	c, rec := newContext(t, &httptestRequest{
		method: http.MethodPost, target: "/exam-head/create-exam",
		body:        strings.NewReader(`{"name":"Midterm","date":"2024-05-01","time":"10:00","subjects":["Maths"],"total_seats":60}`),
		contentType: "application/json",
	}, &models.Principal{UserID: "h1", Role: models.RoleExamHead})

	serve(c, h.CreateExam)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "exam-1", envelope.Data["id"])
	assert.Equal(t, "draft", envelope.Data["status"])
}

func TestExamHeadHandlerCreateExamValidationRerendersForm(t *testing.T) {
	h := NewExamHeadHandler(ExamHeadDeps{Exams: &fakeExamSrv{createErr: appErrors.Clone(appErrors.ErrValidation, "invalid exam")}})
	c, rec := newContext(t, &httptestRequest{
		method: http.MethodPost, target: "/exam-head/create-exam",
		body: strings.NewReader("name=Midterm"), contentType: "application/x-www-form-urlencoded",
	}, &models.Principal{UserID: "h1", Role: models.RoleExamHead})

	serve(c, h.CreateExam)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid exam")
	assert.Contains(t, rec.Body.String(), `value="Midterm"`)
}

func TestExamHeadHandlerUpdateExamStatus(t *testing.T) {
	exams := &fakeExamSrv{}
	h := NewExamHeadHandler(ExamHeadDeps{Exams: exams})
	c, rec := newContext(t, &httptestRequest{
		method: http.MethodPost, target: "/exam-head/exams/exam-1/status",
		body: strings.NewReader(`{"status":"active"}`), contentType: "application/json",
	}, &models.Principal{UserID: "h1", Role: models.RoleExamHead})
	c.AddParam("id", "exam-1")

	serve(c, h.UpdateExamStatus)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "active", exams.status)
}

type fakeMalpracticeReviewer struct{ url string }

func (f *fakeMalpracticeReviewer) Resolve(_ context.Context, _ *models.Principal, id string) (*models.MalpracticeReport, error) {
	return &models.MalpracticeReport{ID: id, Status: models.MalpracticeResolved}, nil
}

func (f *fakeMalpracticeReviewer) EvidenceURL(context.Context, *models.Principal, string) (string, error) {
	if f.url == "" {
		return "", appErrors.Clone(appErrors.ErrNotFound, "no evidence")
	}
	return f.url, nil
}

func TestExamHeadHandlerMalpracticeEvidence(t *testing.T) {
	h := NewExamHeadHandler(ExamHeadDeps{Malpractice: &fakeMalpracticeReviewer{url: "/files/signed"}})
	c, rec := newContext(t, &httptestRequest{method: http.MethodGet, target: "/exam-head/malpractice/r1/evidence"}, &models.Principal{UserID: "h1", Role: models.RoleExamHead})
	c.AddParam("id", "r1")

	serve(c, h.MalpracticeEvidence)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/files/signed", rec.Header().Get("Location"))

	h = NewExamHeadHandler(ExamHeadDeps{Malpractice: &fakeMalpracticeReviewer{}})
	c, rec = newContext(t, &httptestRequest{method: http.MethodGet, target: "/exam-head/malpractice/r1/evidence"}, &models.Principal{UserID: "h1", Role: models.RoleExamHead})
	serve(c, h.MalpracticeEvidence)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type fakeInvigilatorSrv struct {
	markReq   dto.MarkAttendanceRequest
	markErr   error
	reportReq dto.ReportMalpracticeRequest
	evidence  []byte
	filename  string
	reportErr error
}

func (f *fakeInvigilatorSrv) Invigilator(context.Context, *models.Principal) (*dto.InvigilatorDashboard, error) {
	return &dto.InvigilatorDashboard{Students: []models.HallTicket{}}, nil
}

func (f *fakeInvigilatorSrv) Mark(_ context.Context, _ *models.Principal, req dto.MarkAttendanceRequest) (*models.AttendanceRecord, error) {
	f.markReq = req
	if f.markErr != nil {
		return nil, f.markErr
	}
	return &models.AttendanceRecord{ID: "a1"}, nil
}

func (f *fakeInvigilatorSrv) Report(_ context.Context, _ *models.Principal, req dto.ReportMalpracticeRequest, evidence *dto.EvidenceUpload) (*models.MalpracticeReport, error) {
	f.reportReq = req
	if evidence != nil {
		f.filename = evidence.Filename
		f.evidence, _ = io.ReadAll(evidence.Body)
	}
	if f.reportErr != nil {
		return nil, f.reportErr
	}
	return &models.MalpracticeReport{ID: "r1"}, nil
}

func TestInvigilatorHandlerMarkAttendance(t *testing.T) {
	srv := &fakeInvigilatorSrv{}
	h := NewInvigilatorHandler(srv, srv, srv)
	c, rec := newContext(t, &httptestRequest{
		method: http.MethodPost, target: "/invigilator/mark-attendance",
		body: strings.NewReader(`{"student_id":"s1","classroom_id":"c1","status":"present"}`), contentType: "application/json",
	}, &models.Principal{UserID: "i1", Role: models.RoleInvigilator})

	serve(c, h.MarkAttendance)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, "c1", srv.markReq.ClassroomID)
}

func TestInvigilatorHandlerMarkAttendanceFailure(t *testing.T) {
	srv := &fakeInvigilatorSrv{markErr: appErrors.Clone(appErrors.ErrValidation, "invalid attendance")}
	h := NewInvigilatorHandler(srv, srv, srv)
	c, rec := newContext(t, &httptestRequest{
		method: http.MethodPost, target: "/invigilator/mark-attendance",
		body: strings.NewReader(`{"student_id":"s1","classroom_id":"c1","status":"late"}`), contentType: "application/json",
	}, &models.Principal{UserID: "i1", Role: models.RoleInvigilator})

	serve(c, h.MarkAttendance)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
}

func TestInvigilatorHandlerReportMalpracticeWithEvidence(t *testing.T) {
	srv := &fakeInvigilatorSrv{}
	h := NewInvigilatorHandler(srv, srv, srv)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("student_id", "s1"))
	require.NoError(t, writer.WriteField("description", "phone under desk"))
	require.NoError(t, writer.WriteField("severity", "high"))
	part, err := writer.CreateFormFile(EvidenceField, "photo.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, writer.Close())

	c, rec := newContext(t, &httptestRequest{
		method: http.MethodPost, target: "/invigilator/report-malpractice",
		body: body, contentType: writer.FormDataContentType(),
	}, &models.Principal{UserID: "i1", Role: models.RoleInvigilator})

	serve(c, h.ReportMalpractice)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	assert.Equal(t, "phone under desk", srv.reportReq.Description)
	assert.Equal(t, "photo.jpg", srv.filename)
	assert.Equal(t, "jpeg-bytes", string(srv.evidence))
}

func TestInvigilatorHandlerReportMalpracticeWithoutEvidence(t *testing.T) {
	srv := &fakeInvigilatorSrv{reportErr: appErrors.ErrEvidenceUpload}
	h := NewInvigilatorHandler(srv, srv, srv)

	form := url.Values{"student_id": {"s1"}, "description": {"talking"}, "severity": {"low"}}
	c, rec := newContext(t, &httptestRequest{
		method: http.MethodPost, target: "/invigilator/report-malpractice",
		body: strings.NewReader(form.Encode()), contentType: "application/x-www-form-urlencoded",
	}, &models.Principal{UserID: "i1", Role: models.RoleInvigilator})

	serve(c, h.ReportMalpractice)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Nil(t, srv.evidence)
	assert.Equal(t, "talking", srv.reportReq.Description)
}
