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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `venta_id, cliente_id, numero_factura, fecha_venta,
		subtotal, descuento, total, estado, metodo_pago, observaciones, usuario_id, created_at`

// SaleRepo persistencia de ventas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de una venta.
func (r *SaleRepo) Create(s *entity.Sale) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ventas (venta_id, cliente_id, numero_factura, fecha_venta,
			subtotal, descuento, total, estado, metodo_pago, observaciones, usuario_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, nullableStr(s.ClienteID), nullableStr(s.NumeroFactura), s.FechaVenta,
		s.Subtotal, s.Descuento, s.Total, s.Estado, s.MetodoPago,
		nullableStr(s.Observaciones), s.UsuarioID, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create venta: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de detalle de venta. ProductoID y ComboID son
// mutuamente excluyentes (variante etiquetada validada en el caso de uso).
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO ventas_detalle (detalle_id, venta_id, producto_id, combo_id,
			cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.VentaID, nullableStr(item.ProductoID), nullableStr(item.ComboID),
		item.Cantidad, item.PrecioUnitario, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("create detalle venta: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID. Retorna (nil, nil) si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM ventas WHERE venta_id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return s, nil
}

// ItemsByVenta retorna las líneas de detalle de una venta.
func (r *SaleRepo) ItemsByVenta(ventaID string) ([]*entity.SaleItem, error) {
	query := `SELECT detalle_id, venta_id, producto_id, combo_id, cantidad,
			precio_unitario, subtotal
		FROM ventas_detalle WHERE venta_id = $1 ORDER BY detalle_id`
	rows, err := r.q.Query(context.Background(), query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("items venta: %w", err)
	}
	defer rows.Close()

	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		var productoID, comboID *string
		if err := rows.Scan(&it.ID, &it.VentaID, &productoID, &comboID,
			&it.Cantidad, &it.PrecioUnitario, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		if productoID != nil {
			it.ProductoID = *productoID
		}
		if comboID != nil {
			it.ComboID = *comboID
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// List lista ventas filtradas, fecha descendente.
func (r *SaleRepo) List(f repository.SaleFilter) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM ventas`
	var conds []string
	var args []any
	if f.ClienteID != "" {
		args = append(args, f.ClienteID)
		conds = append(conds, fmt.Sprintf("cliente_id = $%d", len(args)))
	}
	if f.Estado != "" {
		args = append(args, f.Estado)
		conds = append(conds, fmt.Sprintf("estado = $%d", len(args)))
	}
	if f.Desde != nil {
		args = append(args, *f.Desde)
		conds = append(conds, fmt.Sprintf("fecha_venta >= $%d", len(args)))
	}
	if f.Hasta != nil {
		args = append(args, *f.Hasta)
		conds = append(conds, fmt.Sprintf("fecha_venta <= $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY fecha_venta DESC, venta_id DESC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateEstado cambia el estado de la venta. No revierte inventario.
func (r *SaleRepo) UpdateEstado(id, estado string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE ventas SET estado = $1 WHERE venta_id = $2`, estado, id)
	if err != nil {
		return fmt.Errorf("update estado venta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSale(scan func(dest ...any) error) (*entity.Sale, error) {
	var s entity.Sale
	var clienteID, numeroFactura, observaciones *string
	if err := scan(
		&s.ID, &clienteID, &numeroFactura, &s.FechaVenta,
		&s.Subtotal, &s.Descuento, &s.Total, &s.Estado, &s.MetodoPago,
		&observaciones, &s.UsuarioID, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	if clienteID != nil {
		s.ClienteID = *clienteID
	}
	if numeroFactura != nil {
		s.NumeroFactura = *numeroFactura
	}
	if observaciones != nil {
		s.Observaciones = *observaciones
	}
	return &s, nil
}
