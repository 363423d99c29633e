package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var (
	_ repository.PurchaseRepository = (*PurchaseRepo)(nil)
	_ repository.SaleRepository     = (*SaleRepo)(nil)
)

// PurchaseRepo repositorio de compras en memoria.
type PurchaseRepo struct {
	s    *Store
	inTx bool
}

// Purchases retorna el repositorio de compras del almacén.
func (s *Store) Purchases() *PurchaseRepo {
	return &PurchaseRepo{s: s}
}

func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	defer r.s.lockIf(r.inTx)()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	cp := *p
	r.s.purchases[p.ID] = &cp
	return nil
}

func (r *PurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	defer r.s.lockIf(r.inTx)()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	cp := *item
	r.s.purchaseItems[item.CompraID] = append(r.s.purchaseItems[item.CompraID], &cp)
	return nil
}

func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	defer r.s.lockIf(r.inTx)()
	p, ok := r.s.purchases[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *PurchaseRepo) ItemsByCompra(compraID string) ([]*entity.PurchaseItem, error) {
	defer r.s.lockIf(r.inTx)()
	items := r.s.purchaseItems[compraID]
	out := make([]*entity.PurchaseItem, len(items))
	for i, it := range items {
		cp := *it
		out[i] = &cp
	}
	return out, nil
}

func (r *PurchaseRepo) List(f repository.PurchaseFilter) ([]*entity.Purchase, error) {
	defer r.s.lockIf(r.inTx)()
	var list []*entity.Purchase
	for _, p := range r.s.purchases {
		if f.ProveedorID != "" && p.ProveedorID != f.ProveedorID {
			continue
		}
		if f.Estado != "" && p.Estado != f.Estado {
			continue
		}
		if f.Desde != nil && p.FechaCompra.Before(*f.Desde) {
			continue
		}
		if f.Hasta != nil && p.FechaCompra.After(*f.Hasta) {
			continue
		}
		cp := *p
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].FechaCompra.Equal(list[j].FechaCompra) {
			return list[i].FechaCompra.After(list[j].FechaCompra)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *PurchaseRepo) UpdateEstado(id, estado string) error {
	defer r.s.lockIf(r.inTx)()
	p, ok := r.s.purchases[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Estado = estado
	return nil
}

func (r *PurchaseRepo) DeleteItems(compraID string) error {
	defer r.s.lockIf(r.inTx)()
	delete(r.s.purchaseItems, compraID)
	return nil
}

func (r *PurchaseRepo) Delete(id string) error {
	defer r.s.lockIf(r.inTx)()
	if _, ok := r.s.purchases[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.purchases, id)
	return nil
}

// SaleRepo repositorio de ventas en memoria.
type SaleRepo struct {
	s    *Store
	inTx bool
}

// Sales retorna el repositorio de ventas del almacén.
func (s *Store) Sales() *SaleRepo {
	return &SaleRepo{s: s}
}

func (r *SaleRepo) Create(v *entity.Sale) error {
	defer r.s.lockIf(r.inTx)()
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	cp := *v
	r.s.sales[v.ID] = &cp
	return nil
}

func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	defer r.s.lockIf(r.inTx)()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	cp := *item
	r.s.saleItems[item.VentaID] = append(r.s.saleItems[item.VentaID], &cp)
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	defer r.s.lockIf(r.inTx)()
	v, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *SaleRepo) ItemsByVenta(ventaID string) ([]*entity.SaleItem, error) {
	defer r.s.lockIf(r.inTx)()
	items := r.s.saleItems[ventaID]
	out := make([]*entity.SaleItem, len(items))
	for i, it := range items {
		cp := *it
		out[i] = &cp
	}
	return out, nil
}

func (r *SaleRepo) List(f repository.SaleFilter) ([]*entity.Sale, error) {
	defer r.s.lockIf(r.inTx)()
	var list []*entity.Sale
	for _, v := range r.s.sales {
		if f.ClienteID != "" && v.ClienteID != f.ClienteID {
			continue
		}
		if f.Estado != "" && v.Estado != f.Estado {
			continue
		}
		if f.Desde != nil && v.FechaVenta.Before(*f.Desde) {
			continue
		}
		if f.Hasta != nil && v.FechaVenta.After(*f.Hasta) {
			continue
		}
		cp := *v
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].FechaVenta.Equal(list[j].FechaVenta) {
			return list[i].FechaVenta.After(list[j].FechaVenta)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *SaleRepo) UpdateEstado(id, estado string) error {
	defer r.s.lockIf(r.inTx)()
	v, ok := r.s.sales[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Estado = estado
	return nil
}
