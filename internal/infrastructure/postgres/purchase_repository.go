package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `compra_id, proveedor_id, numero_factura, fecha_compra,
		subtotal, total, estado, observaciones, usuario_id, created_at`

// PurchaseRepo persistencia de compras sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create persiste la cabecera de una compra.
func (r *PurchaseRepo) Create(p *entity.Purchase) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO compras (compra_id, proveedor_id, numero_factura, fecha_compra,
			subtotal, total, estado, observaciones, usuario_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.ProveedorID, nullableStr(p.NumeroFactura), p.FechaCompra,
		p.Subtotal, p.Total, p.Estado, nullableStr(p.Observaciones), p.UsuarioID, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create compra: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de detalle de compra.
func (r *PurchaseRepo) CreateItem(item *entity.PurchaseItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO compras_detalle (detalle_id, compra_id, producto_id, cantidad,
			precio_unitario, subtotal, lote, fecha_vencimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompraID, item.ProductoID, item.Cantidad,
		item.PrecioUnitario, item.Subtotal, nullableStr(item.Lote), item.FechaVencimiento,
	)
	if err != nil {
		return fmt.Errorf("create detalle compra: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por ID. Retorna (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(id string) (*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM compras WHERE compra_id = $1`
	p, err := scanPurchase(r.q.QueryRow(context.Background(), query, id).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}
	return p, nil
}

// ItemsByCompra retorna las líneas de detalle de una compra.
func (r *PurchaseRepo) ItemsByCompra(compraID string) ([]*entity.PurchaseItem, error) {
	query := `SELECT detalle_id, compra_id, producto_id, cantidad, precio_unitario,
			subtotal, lote, fecha_vencimiento
		FROM compras_detalle WHERE compra_id = $1 ORDER BY detalle_id`
	rows, err := r.q.Query(context.Background(), query, compraID)
	if err != nil {
		return nil, fmt.Errorf("items compra: %w", err)
	}
	defer rows.Close()

	var items []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		var lote *string
		if err := rows.Scan(&it.ID, &it.CompraID, &it.ProductoID, &it.Cantidad,
			&it.PrecioUnitario, &it.Subtotal, &lote, &it.FechaVencimiento); err != nil {
			return nil, fmt.Errorf("scan detalle compra: %w", err)
		}
		if lote != nil {
			it.Lote = *lote
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista compras filtradas, fecha descendente.
func (r *PurchaseRepo) List(f repository.PurchaseFilter) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM compras`
	var conds []string
	var args []any
	if f.ProveedorID != "" {
		args = append(args, f.ProveedorID)
		conds = append(conds, fmt.Sprintf("proveedor_id = $%d", len(args)))
	}
	if f.Estado != "" {
		args = append(args, f.Estado)
		conds = append(conds, fmt.Sprintf("estado = $%d", len(args)))
	}
	if f.Desde != nil {
		args = append(args, *f.Desde)
		conds = append(conds, fmt.Sprintf("fecha_compra >= $%d", len(args)))
	}
	if f.Hasta != nil {
		args = append(args, *f.Hasta)
		conds = append(conds, fmt.Sprintf("fecha_compra <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY fecha_compra DESC, compra_id DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list compras: %w", err)
	}
	defer rows.Close()

	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// UpdateEstado cambia el estado de la compra. No toca inventario.
func (r *PurchaseRepo) UpdateEstado(id, estado string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE compras SET estado = $1 WHERE compra_id = $2`, estado, id)
	if err != nil {
		return fmt.Errorf("update estado compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems elimina el detalle de una compra.
func (r *PurchaseRepo) DeleteItems(compraID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM compras_detalle WHERE compra_id = $1`, compraID)
	if err != nil {
		return fmt.Errorf("delete detalle compra: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de una compra.
func (r *PurchaseRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM compras WHERE compra_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete compra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPurchase(scan func(dest ...any) error) (*entity.Purchase, error) {
	var p entity.Purchase
	var numeroFactura, observaciones *string
	if err := scan(
		&p.ID, &p.ProveedorID, &numeroFactura, &p.FechaCompra,
		&p.Subtotal, &p.Total, &p.Estado, &observaciones, &p.UsuarioID, &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	if numeroFactura != nil {
		p.NumeroFactura = *numeroFactura
	}
	if observaciones != nil {
		p.Observaciones = *observaciones
	}
	return &p, nil
}
