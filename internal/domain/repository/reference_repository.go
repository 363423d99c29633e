package repository

import "github.com/jhoicas/comercio-api/internal/domain/entity"

// SupplierRepository consulta de proveedores (el CRUD completo vive fuera de
// este núcleo; aquí solo se necesita resolver referencias).
type SupplierRepository interface {
	GetByID(id string) (*entity.Supplier, error)
}

// CustomerRepository consulta de clientes.
type CustomerRepository interface {
	GetByID(id string) (*entity.Customer, error)
}

// ComboRepository consulta de combos (con ingredientes).
type ComboRepository interface {
	GetByID(id string) (*entity.Combo, error)
}
