package models

// Employees, services and clients are never hard-deleted while referenced by
// bookings; they move between these two states instead.
const (
	StatusActive = "active"
	StatusHidden = "hidden"
)

const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)
