package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra entrante.
type PurchaseItemRequest struct {
	ProductoID       string          `json:"producto_id"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	Lote             string          `json:"lote,omitempty"`
	FechaVencimiento *time.Time      `json:"fecha_vencimiento,omitempty"`
}

// CreatePurchaseRequest body para POST /api/compras.
type CreatePurchaseRequest struct {
	ProveedorID   string                `json:"proveedor_id"`
	NumeroFactura string                `json:"numero_factura,omitempty"`
	FechaCompra   *time.Time            `json:"fecha_compra,omitempty"`
	Estado        string                `json:"estado,omitempty"` // default COMPLETADA
	Observaciones string                `json:"observaciones,omitempty"`
	Items         []PurchaseItemRequest `json:"items"`
}

// PurchaseResponse cabecera de compra persistida.
type PurchaseResponse struct {
	ID              string          `json:"compra_id"`
	ProveedorID     string          `json:"proveedor_id"`
	ProveedorNombre string          `json:"proveedor_nombre,omitempty"`
	NumeroFactura   string          `json:"numero_factura,omitempty"`
	FechaCompra     time.Time       `json:"fecha_compra"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Total           decimal.Decimal `json:"total"`
	Estado          string          `json:"estado"`
	Observaciones   string          `json:"observaciones,omitempty"`
	Items           []PurchaseItemResponse `json:"items,omitempty"`
}

// PurchaseItemResponse línea de compra con datos del producto.
type PurchaseItemResponse struct {
	ID               string          `json:"compra_detalle_id"`
	ProductoID       string          `json:"producto_id"`
	ProductoNombre   string          `json:"producto_nombre,omitempty"`
	UnidadMedida     string          `json:"unidad_medida,omitempty"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Lote             string          `json:"lote,omitempty"`
	FechaVencimiento *time.Time      `json:"fecha_vencimiento,omitempty"`
}

// ChangeEstadoRequest body para PATCH /api/compras/:id/estado.
type ChangeEstadoRequest struct {
	NuevoEstado string `json:"nuevo_estado"`
}
