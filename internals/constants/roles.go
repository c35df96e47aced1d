package constants

import "fmt"

const (
	RoleUser    = "user"
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
	RoleOwner   = "owner"
)

// Template pesan error role
const ErrOnlyAdminsCanAccess = "❌ Hanya admin atau owner yang boleh mengakses fitur %s."

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// Urutan prioritas saat token membawa beberapa role
var RolePriority = []string{RoleOwner, RoleAdmin, RoleTeacher, RoleStudent}

// Role yang boleh memicu penjadwalan kelas
var SchedulerAdminRoles = []string{RoleAdmin, RoleOwner}
