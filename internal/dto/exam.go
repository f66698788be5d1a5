package dto

// CreateExamRequest captures the create-exam form.
type CreateExamRequest struct {
	Name       string   `form:"name" json:"name" validate:"required"`
	Date       string   `form:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time       string   `form:"time" json:"time" validate:"required,datetime=15:04"`
	Subjects   []string `form:"subjects" json:"subjects" validate:"min=1,dive,required"`
	TotalSeats int      `form:"total_seats" json:"total_seats" validate:"gt=0"`
}

// UpdateExamStatusRequest moves an exam along its lifecycle.
type UpdateExamStatusRequest struct {
	Status string `form:"status" json:"status" validate:"required,oneof=draft active closed"`
}

// ClassroomRequest creates or edits a classroom.
type ClassroomRequest struct {
	Name    string `form:"name" json:"name" validate:"required,excludesall=0x7C"`
	Rows    int    `form:"rows" json:"rows" validate:"gte=1"`
	Columns int    `form:"columns" json:"columns" validate:"gte=1"`
}

// IssueHallTicketRequest seats a student for an exam.
type IssueHallTicketRequest struct {
	StudentID   string `json:"student_id" validate:"required"`
	ExamID      string `json:"exam_id" validate:"required"`
	ClassroomID string `json:"classroom_id" validate:"required"`
	Row         int    `json:"row" validate:"gte=1"`
	Seat        int    `json:"seat" validate:"gte=1"`
}

// AssignInvigilatorRequest points an invigilator at a classroom.
type AssignInvigilatorRequest struct {
	ClassroomID string `json:"classroom_id" validate:"required"`
}
