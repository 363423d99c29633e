package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos. Hasta es inclusivo del día
// completo (la capa de consulta lo extiende a las 23:59:59).
type MovementFilter struct {
	Tipo       string
	ProductoID string
	Desde      *time.Time
	Hasta      *time.Time
}

// ResumenMovimiento agregado por tipo de movimiento en un rango de fechas.
type ResumenMovimiento struct {
	Tipo             string
	TotalMovimientos int64
	TotalCantidad    decimal.Decimal
}

// MovementRepository puerto de persistencia del libro de inventario.
// Los movimientos son append-only: no hay Update; Delete solo existe para la
// eliminación en cascada del documento padre (DeleteByRef).
type MovementRepository interface {
	Create(m *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	List(f MovementFilter, limit, offset int) ([]*entity.InventoryMovement, error)
	Count(f MovementFilter) (int64, error)
	// DeleteByRef elimina los movimientos que referencian un documento
	// (compra/venta). Parte de la eliminación simétrica de compras.
	DeleteByRef(ref entity.MovementRef) error
	Resumen(desde, hasta *time.Time) ([]*ResumenMovimiento, error)
}
