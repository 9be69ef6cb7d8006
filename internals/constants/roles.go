package constants

import "fmt"

// Roles known to the system. "viewer" is a student account linked to a
// student_code; "admin" is academic affairs staff.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess   = "❌ Only admin may access %s."
	ErrOnlyStudentsCanAccess = "❌ Only student accounts may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleAdmin,
		RoleViewer,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
