package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventario/movimientos.
// Cantidad es magnitud positiva; para 'ajuste' es el nuevo saldo absoluto.
type RegisterMovementRequest struct {
	ProductoID    string          `json:"producto_id"`
	Tipo          string          `json:"tipo_movimiento"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Observaciones string          `json:"observaciones,omitempty"`
}

// MovementResponse un movimiento del libro, con datos del producto para listados.
type MovementResponse struct {
	ID             string          `json:"movimiento_id"`
	ProductoID     string          `json:"producto_id"`
	ProductoCodigo string          `json:"producto_codigo,omitempty"`
	ProductoNombre string          `json:"producto_nombre,omitempty"`
	UnidadMedida   string          `json:"unidad_medida,omitempty"`
	Tipo           string          `json:"tipo_movimiento"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	SaldoAnterior  decimal.Decimal `json:"saldo_anterior"`
	SaldoPosterior decimal.Decimal `json:"saldo_posterior"`
	ReferenciaTipo string          `json:"referencia_tipo"`
	ReferenciaID   string          `json:"referencia_id,omitempty"`
	Observaciones  string          `json:"observaciones,omitempty"`
	UsuarioID      string          `json:"usuario_id"`
	Fecha          time.Time       `json:"fecha_movimiento"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Data       []MovementResponse `json:"data"`
	Pagination PageResponse       `json:"pagination"`
}

// StockResponse stock vigente de un producto.
type StockResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoCodigo string          `json:"producto_codigo"`
	ProductoNombre string          `json:"producto_nombre"`
	StockActual    decimal.Decimal `json:"stock_actual"`
	StockMinimo    decimal.Decimal `json:"stock_minimo"`
	UnidadMedida   string          `json:"unidad_medida"`
}

// ResumenMovimientoDTO agregado por tipo para el resumen de movimientos.
type ResumenMovimientoDTO struct {
	Tipo             string          `json:"tipo_movimiento"`
	TotalMovimientos int64           `json:"total_movimientos"`
	TotalCantidad    decimal.Decimal `json:"total_cantidad"`
}
