package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of portal roles.
type Role string

const (
	RoleStudent     Role = "STUDENT"
	RoleInvigilator Role = "INVIGILATOR"
	RoleExamHead    Role = "EXAM_HEAD"
	RoleValuator    Role = "VALUATOR"
	RoleDeveloper   Role = "DEVELOPER"
)

var roleDisplayNames = map[Role]string{
	RoleStudent:     "Student",
	RoleInvigilator: "Invigilator",
	RoleExamHead:    "Exam Head",
	RoleValuator:    "Valuator",
	RoleDeveloper:   "Developer/Admin",
}

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RoleStudent, RoleInvigilator, RoleExamHead, RoleValuator, RoleDeveloper}
}

// ParseRole accepts the wire value case-insensitively.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", raw)
	}
	return role, nil
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleDisplayNames[r]
	return ok
}

// DisplayName returns the human readable label.
func (r Role) DisplayName() string {
	if name, ok := roleDisplayNames[r]; ok {
		return name
	}
	return string(r)
}

// User is the profile document stored under the identity uid.
type User struct {
	ID        string    `json:"id,omitempty"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	ShortCode string    `json:"short_code"`
	CreatedAt time.Time `json:"created_at"`
}

// Student carries the student-only profile fields, keyed by the same id as User.
type Student struct {
	ID        string `json:"id,omitempty"`
	StudentID string `json:"student_id"`
	Branch    string `json:"branch"`
	Semester  string `json:"semester"`
}

// Invigilator records the classroom an invigilator supervises.
type Invigilator struct {
	ID                string    `json:"id,omitempty"`
	AssignedClassroom string    `json:"assigned_classroom"`
	AssignedBy        string    `json:"assigned_by,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}
