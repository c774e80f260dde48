package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleTechnician = "technician"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Phone        string
	Role         string // admin, manager, technician
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
