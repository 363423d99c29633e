package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta entrante. ProductoID o ComboID, no ambos:
// las líneas de combo no descuentan stock.
type SaleItemRequest struct {
	ProductoID     string          `json:"producto_id,omitempty"`
	ComboID        string          `json:"producto_padre_id,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CreateSaleRequest body para POST /api/ventas.
type CreateSaleRequest struct {
	ClienteID     string            `json:"cliente_id,omitempty"`
	NumeroFactura string            `json:"numero_factura,omitempty"`
	FechaVenta    *time.Time        `json:"fecha_venta,omitempty"`
	Descuento     decimal.Decimal   `json:"descuento,omitempty"`
	Estado        string            `json:"estado,omitempty"`      // default COMPLETADA
	MetodoPago    string            `json:"metodo_pago,omitempty"` // default EFECTIVO
	Observaciones string            `json:"observaciones,omitempty"`
	Items         []SaleItemRequest `json:"items"`
}

// SaleResponse venta completa (cabecera + detalle) lista para el recibo;
// se retorna desde la creación para evitar un segundo viaje.
type SaleResponse struct {
	ID            string             `json:"venta_id"`
	ClienteID     string             `json:"cliente_id,omitempty"`
	ClienteNombre string             `json:"cliente_nombre,omitempty"`
	NumeroFactura string             `json:"numero_factura,omitempty"`
	FechaVenta    time.Time          `json:"fecha_venta"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Descuento     decimal.Decimal    `json:"descuento"`
	Total         decimal.Decimal    `json:"total"`
	Estado        string             `json:"estado"`
	MetodoPago    string             `json:"metodo_pago"`
	Observaciones string             `json:"observaciones,omitempty"`
	VendedorID    string             `json:"usuario_creacion_id"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleItemResponse línea de venta con nombres de producto/combo resueltos.
type SaleItemResponse struct {
	ID             string          `json:"venta_detalle_id"`
	ProductoID     string          `json:"producto_id,omitempty"`
	ProductoCodigo string          `json:"producto_codigo,omitempty"`
	ProductoNombre string          `json:"producto_nombre,omitempty"`
	UnidadMedida   string          `json:"unidad_medida,omitempty"`
	ComboID        string          `json:"producto_padre_id,omitempty"`
	ComboNombre    string          `json:"combo_nombre,omitempty"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}
