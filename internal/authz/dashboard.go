package authz

import "github.com/noah-isme/exam-portal/internal/models"

var dashboardPaths = map[models.Role]string{
	models.RoleStudent:     "/student/dashboard",
	models.RoleInvigilator: "/invigilator/dashboard",
	models.RoleExamHead:    "/exam-head/dashboard",
	models.RoleValuator:    "/valuator/dashboard",
}

// DashboardPath returns the landing page for role. DEVELOPER has none yet.
func DashboardPath(role models.Role) (string, bool) {
	path, ok := dashboardPaths[role]
	return path, ok
}
