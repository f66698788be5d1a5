package models

// Classroom is a seating grid.
type Classroom struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
}

// TotalSeats is derived on read, never stored.
func (c Classroom) TotalSeats() int {
	if c.Rows <= 0 || c.Columns <= 0 {
		return 0
	}
	return c.Rows * c.Columns
}

// ClassroomView is the read model returned to clients.
type ClassroomView struct {
	Classroom
	TotalSeats int `json:"total_seats"`
}

// View attaches the derived seat count.
func (c Classroom) View() ClassroomView {
	return ClassroomView{Classroom: c, TotalSeats: c.TotalSeats()}
}

// ClassroomOccupancy is one row of live monitoring.
type ClassroomOccupancy struct {
	Classroom    ClassroomView `json:"classroom"`
	PresentCount int           `json:"present_count"`
	TotalSeats   int           `json:"total_seats"`
}
