package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/productos.
type CreateProductRequest struct {
	Codigo        string          `json:"codigo"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion,omitempty"`
	Categoria     string          `json:"categoria,omitempty"`
	UnidadMedida  string          `json:"unidad_medida"`
	StockActual   decimal.Decimal `json:"stock_actual"` // stock de arranque del libro
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID            string          `json:"producto_id"`
	Codigo        string          `json:"codigo"`
	Nombre        string          `json:"nombre"`
	Descripcion   string          `json:"descripcion,omitempty"`
	Categoria     string          `json:"categoria,omitempty"`
	UnidadMedida  string          `json:"unidad_medida"`
	StockActual   decimal.Decimal `json:"stock_actual"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	PrecioVenta   decimal.Decimal `json:"precio_venta"`
	Activo        bool            `json:"activo"`
	CreatedAt     time.Time       `json:"fecha_creacion"`
}
