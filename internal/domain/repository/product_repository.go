package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// GetByID retorna (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCodigo(codigo string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción; serializa los movimientos
	// concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock fija stock_actual. Único mutador legítimo: el registrador
	// de movimientos, dentro de la misma transacción que el asiento.
	UpdateStock(id string, nuevoStock decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	// SearchByNombre busca por nombre ya normalizado (sin tildes, minúsculas).
	SearchByNombre(termino string, limit, offset int) ([]*entity.Product, error)
}
