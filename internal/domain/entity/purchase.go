package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de compra y venta.
const (
	EstadoPendiente  = "PENDIENTE"
	EstadoCompletada = "COMPLETADA"
	EstadoCancelada  = "CANCELADA"
)

// ValidEstado valida el estado de un documento (compra o venta).
func ValidEstado(e string) bool {
	return e == EstadoPendiente || e == EstadoCompletada || e == EstadoCancelada
}

// Purchase cabecera de una compra a proveedor.
type Purchase struct {
	ID            string
	ProveedorID   string
	NumeroFactura string // texto libre, opcional
	FechaCompra   time.Time
	Subtotal      decimal.Decimal
	Total         decimal.Decimal
	Estado        string
	Observaciones string
	UsuarioID     string
	CreatedAt     time.Time
}

// PurchaseItem línea de detalle de una compra. Al confirmarse la compra cada
// línea genera exactamente un movimiento 'entrada' que referencia la cabecera.
type PurchaseItem struct {
	ID               string
	CompraID         string
	ProductoID       string
	Cantidad         decimal.Decimal
	PrecioUnitario   decimal.Decimal
	Subtotal         decimal.Decimal // Cantidad × PrecioUnitario
	Lote             string
	FechaVencimiento *time.Time
}
