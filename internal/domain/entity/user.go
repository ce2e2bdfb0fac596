package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleManager     = "manager"
	RoleSalesperson = "salesperson"
)

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSalesperson:
		return true
	}
	return false
}

// User representa una entrada del directorio de usuarios. Ventas y gastos lo referencian
// por ID sin cascada; las credenciales viven fuera de este servicio.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      string // admin, manager, salesperson
	CreatedAt time.Time
}
