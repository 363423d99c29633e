package memory

import (
	"context"

	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/application/purchases"
	"github.com/jhoicas/comercio-api/internal/application/sales"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ purchases.TxRunner = (*TxRunner)(nil)
	_ sales.TxRunner     = (*TxRunner)(nil)
)

// TxRunner transacciones sobre el almacén en memoria: toma el mutex durante
// toda la función (serializa transacciones completas, lo que subsume el
// bloqueo por producto de PostgreSQL) y restaura un snapshot si falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el ejecutor de transacciones del almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func() error {
		return fn(&MovementRepo{s: r.s, inTx: true}, &ProductRepo{s: r.s, inTx: true})
	})
}

func (r *TxRunner) RunPurchase(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) error) error {
	return r.inTx(ctx, func() error {
		return fn(&MovementRepo{s: r.s, inTx: true}, &ProductRepo{s: r.s, inTx: true},
			&PurchaseRepo{s: r.s, inTx: true})
	})
}

func (r *TxRunner) RunSale(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.inTx(ctx, func() error {
		return fn(&MovementRepo{s: r.s, inTx: true}, &ProductRepo{s: r.s, inTx: true},
			&SaleRepo{s: r.s, inTx: true})
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.takeSnapshot()
	if err := fn(); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}
