package domain

type Role string

const (
	// Admin manages the platform; one is bootstrapped by the migration runner.
	RoleAdmin Role = "admin"
	// Teacher runs classes and awards points.
	RoleTeacher Role = "teacher"
	// Tutor is a guardian linked to one or more students.
	RoleTutor Role = "tutor"
	// Student earns and redeems points.
	RoleStudent Role = "student"
)

func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleAdmin, RoleTeacher, RoleTutor, RoleStudent:
		return true
	default:
		return false
	}
}
