package sales

import (
	"context"

	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de ventas e inventario. La venta completa (cabecera, detalle y
// salidas de stock) se confirma o se revierte como una sola unidad.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
