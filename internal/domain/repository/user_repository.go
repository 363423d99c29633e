package repository

import "github.com/jhoicas/comercio-api/internal/domain/entity"

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	// Exists valida que el usuario actuante exista antes de abrir la
	// transacción de una venta.
	Exists(id string) (bool, error)
}
