// Package authz maps every protected operation to the single role allowed to perform it.
package authz

import (
	"sort"

	"github.com/noah-isme/exam-portal/internal/models"
	appErrors "github.com/noah-isme/exam-portal/pkg/errors"
)

// Operation names a protected action.
type Operation string

const (
	OpStudentDashboard     Operation = "student.dashboard"
	OpDownloadHallTicket   Operation = "student.hall_ticket.download"
	OpExamHeadDashboard    Operation = "exam_head.dashboard"
	OpCreateExam           Operation = "exam_head.exam.create"
	OpUpdateExamStatus     Operation = "exam_head.exam.status"
	OpClassroomBuilder     Operation = "exam_head.classroom.list"
	OpManageClassroom      Operation = "exam_head.classroom.manage"
	OpLiveMonitoring       Operation = "exam_head.live_monitoring"
	OpIssueHallTicket      Operation = "exam_head.hall_ticket.issue"
	OpAssignInvigilator    Operation = "exam_head.invigilator.assign"
	OpResolveMalpractice   Operation = "exam_head.malpractice.resolve"
	OpViewEvidence         Operation = "exam_head.malpractice.evidence"
	OpInvigilatorDashboard Operation = "invigilator.dashboard"
	OpMarkAttendance       Operation = "invigilator.attendance.mark"
	OpReportMalpractice    Operation = "invigilator.malpractice.report"
	OpValuatorDashboard    Operation = "valuator.dashboard"
)

var requiredRoles = map[Operation]models.Role{
	OpStudentDashboard:     models.RoleStudent,
	OpDownloadHallTicket:   models.RoleStudent,
	OpExamHeadDashboard:    models.RoleExamHead,
	OpCreateExam:           models.RoleExamHead,
	OpUpdateExamStatus:     models.RoleExamHead,
	OpClassroomBuilder:     models.RoleExamHead,
	OpManageClassroom:      models.RoleExamHead,
	OpLiveMonitoring:       models.RoleExamHead,
	OpIssueHallTicket:      models.RoleExamHead,
	OpAssignInvigilator:    models.RoleExamHead,
	OpResolveMalpractice:   models.RoleExamHead,
	OpViewEvidence:         models.RoleExamHead,
	OpInvigilatorDashboard: models.RoleInvigilator,
	OpMarkAttendance:       models.RoleInvigilator,
	OpReportMalpractice:    models.RoleInvigilator,
	OpValuatorDashboard:    models.RoleValuator,
}

// Decision is the outcome of an authorization check.
type Decision int

const (
	Allow Decision = iota
	RequireLogin
	Forbid
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RequireLogin:
		return "require_login"
	default:
		return "forbid"
	}
}

// RequiredRole returns the role for op. Unknown operations report false and are always forbidden.
func RequiredRole(op Operation) (models.Role, bool) {
	role, ok := requiredRoles[op]
	return role, ok
}

// Check decides whether principal may perform op. Roles match exactly; there is no hierarchy.
func Check(principal *models.Principal, op Operation) Decision {
	if principal == nil {
		return RequireLogin
	}
	role, ok := requiredRoles[op]
	if !ok || principal.Role != role {
		return Forbid
	}
	return Allow
}

// Require is Check expressed as an error for service methods.
func Require(principal *models.Principal, op Operation) error {
	switch Check(principal, op) {
	case Allow:
		return nil
	case RequireLogin:
		return appErrors.ErrUnauthenticated
	default:
		return appErrors.ErrForbidden
	}
}

// AllowedOperations lists the operations a role may perform, sorted by name.
func AllowedOperations(role models.Role) []Operation {
	ops := make([]Operation, 0)
	for op, required := range requiredRoles {
		if required == role {
			ops = append(ops, op)
		}
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}

// Operations lists every protected operation, sorted by name.
func Operations() []Operation {
	ops := make([]Operation, 0, len(requiredRoles))
	for op := range requiredRoles {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i] < ops[j] })
	return ops
}
