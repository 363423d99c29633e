package purchases

import (
	"context"

	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye los
// repositorios de compras e inventario. La creación y la eliminación de una
// compra mutan cabecera, detalle, movimientos y stock como una sola unidad.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error) error
}
