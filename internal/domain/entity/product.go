package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock vigente.
// StockActual es espejo del saldo_posterior del último movimiento de inventario;
// una vez que existen movimientos, solo el registrador de movimientos lo muta.
type Product struct {
	ID            string
	Codigo        string // código único
	Nombre        string
	Descripcion   string
	Categoria     string
	UnidadMedida  string
	StockActual   decimal.Decimal
	StockMinimo   decimal.Decimal
	CostoUnitario decimal.Decimal
	PrecioVenta   decimal.Decimal
	Activo        bool
	CreadoPor     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BajoStockMinimo indica si el producto está en o por debajo de su umbral de reposición.
func (p *Product) BajoStockMinimo() bool {
	return p.StockActual.LessThanOrEqual(p.StockMinimo)
}
