package constants

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess = "Only admins may access %s."
)
