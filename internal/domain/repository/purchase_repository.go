package repository

import (
	"time"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// PurchaseFilter filtros para listar compras.
type PurchaseFilter struct {
	ProveedorID string
	Estado      string
	Desde       *time.Time
	Hasta       *time.Time
}

// PurchaseRepository puerto de persistencia de compras y su detalle.
type PurchaseRepository interface {
	Create(p *entity.Purchase) error
	CreateItem(item *entity.PurchaseItem) error
	GetByID(id string) (*entity.Purchase, error)
	ItemsByCompra(compraID string) ([]*entity.PurchaseItem, error)
	List(f PurchaseFilter) ([]*entity.Purchase, error)
	UpdateEstado(id, estado string) error
	// DeleteItems y Delete se invocan en la misma transacción que la
	// reversión de movimientos y stock (eliminación simétrica).
	DeleteItems(compraID string) error
	Delete(id string) error
}
