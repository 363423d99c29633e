package repository

import (
	"time"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// SaleFilter filtros para listar ventas.
type SaleFilter struct {
	ClienteID string
	Estado    string
	Desde     *time.Time
	Hasta     *time.Time
}

// SaleRepository puerto de persistencia de ventas y su detalle.
type SaleRepository interface {
	Create(s *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	ItemsByVenta(ventaID string) ([]*entity.SaleItem, error)
	List(f SaleFilter) ([]*entity.Sale, error)
	UpdateEstado(id, estado string) error
}
