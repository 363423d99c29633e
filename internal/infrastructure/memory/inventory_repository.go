package memory

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
	"github.com/jhoicas/comercio-api/pkg/textutil"
)

var (
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.MovementRepository = (*MovementRepo)(nil)
)

// lockIf toma el mutex salvo que el llamador ya lo tenga (repos dentro de tx).
func (s *Store) lockIf(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// ProductRepo repositorio de productos en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

// Products retorna el repositorio de productos del almacén.
func (s *Store) Products() *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) Create(product *entity.Product) error {
	defer r.s.lockIf(r.inTx)()
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	for _, p := range r.s.products {
		if p.Codigo == product.Codigo {
			return domain.ErrDuplicate
		}
	}
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	defer r.s.lockIf(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) GetByCodigo(codigo string) (*entity.Product, error) {
	defer r.s.lockIf(r.inTx)()
	for _, p := range r.s.products {
		if p.Codigo == codigo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: el mutex del almacén ya
// serializa las transacciones completas.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *ProductRepo) Update(product *entity.Product) error {
	defer r.s.lockIf(r.inTx)()
	if _, ok := r.s.products[product.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *ProductRepo) UpdateStock(id string, nuevoStock decimal.Decimal) error {
	defer r.s.lockIf(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockActual = nuevoStock
	p.UpdatedAt = time.Now()
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	defer r.s.lockIf(r.inTx)()
	all := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Codigo < all[j].Codigo })
	return paginate(all, limit, offset), nil
}

func (r *ProductRepo) SearchByNombre(termino string, limit, offset int) ([]*entity.Product, error) {
	defer r.s.lockIf(r.inTx)()
	var matched []*entity.Product
	for _, p := range r.s.products {
		if strings.Contains(textutil.Normalize(p.Nombre), termino) {
			cp := *p
			matched = append(matched, &cp)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Codigo < matched[j].Codigo })
	return paginate(matched, limit, offset), nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

// MovementRepo libro de inventario en memoria. Los movimientos se guardan en
// orden de inserción; los listados los recorren en orden inverso, que equivale
// a fecha descendente con desempate por llegada.
type MovementRepo struct {
	s    *Store
	inTx bool
}

// Movements retorna el repositorio de movimientos del almacén.
func (s *Store) Movements() *MovementRepo {
	return &MovementRepo{s: s}
}

func (r *MovementRepo) Create(m *entity.InventoryMovement) error {
	defer r.s.lockIf(r.inTx)()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	defer r.s.lockIf(r.inTx)()
	for _, m := range r.s.movements {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) List(f repository.MovementFilter, limit, offset int) ([]*entity.InventoryMovement, error) {
	defer r.s.lockIf(r.inTx)()
	var matched []*entity.InventoryMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if !matchMovement(m, f) {
			continue
		}
		cp := *m
		matched = append(matched, &cp)
	}
	return paginate(matched, limit, offset), nil
}

func (r *MovementRepo) Count(f repository.MovementFilter) (int64, error) {
	defer r.s.lockIf(r.inTx)()
	var total int64
	for _, m := range r.s.movements {
		if matchMovement(m, f) {
			total++
		}
	}
	return total, nil
}

func (r *MovementRepo) DeleteByRef(ref entity.MovementRef) error {
	defer r.s.lockIf(r.inTx)()
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.Referencia.Tipo == ref.Tipo && m.Referencia.ID == ref.ID {
			continue
		}
		kept = append(kept, m)
	}
	r.s.movements = kept
	return nil
}

func (r *MovementRepo) Resumen(desde, hasta *time.Time) ([]*repository.ResumenMovimiento, error) {
	defer r.s.lockIf(r.inTx)()
	f := repository.MovementFilter{Desde: desde, Hasta: hasta}
	porTipo := make(map[string]*repository.ResumenMovimiento)
	for _, m := range r.s.movements {
		if !matchMovement(m, f) {
			continue
		}
		row, ok := porTipo[m.Tipo]
		if !ok {
			row = &repository.ResumenMovimiento{Tipo: m.Tipo, TotalCantidad: decimal.Zero}
			porTipo[m.Tipo] = row
		}
		row.TotalMovimientos++
		row.TotalCantidad = row.TotalCantidad.Add(m.Cantidad)
	}
	list := make([]*repository.ResumenMovimiento, 0, len(porTipo))
	for _, row := range porTipo {
		list = append(list, row)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Tipo < list[j].Tipo })
	return list, nil
}

func matchMovement(m *entity.InventoryMovement, f repository.MovementFilter) bool {
	if f.Tipo != "" && m.Tipo != f.Tipo {
		return false
	}
	if f.ProductoID != "" && m.ProductoID != f.ProductoID {
		return false
	}
	if f.Desde != nil && m.Fecha.Before(*f.Desde) {
		return false
	}
	if f.Hasta != nil && m.Fecha.After(*f.Hasta) {
		return false
	}
	return true
}
