package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User usuario del sistema. Actúa como referencia de auditoría en movimientos,
// compras y ventas; el ID del usuario actuante siempre se pasa explícito.
type User struct {
	ID           string
	Username     string
	Nombre       string
	Email        string
	PasswordHash string
	Role         string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
