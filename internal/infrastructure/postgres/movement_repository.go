package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `movimiento_id, producto_id, tipo_movimiento, cantidad,
		saldo_anterior, saldo_posterior, referencia_tipo, referencia_id,
		observaciones, usuario_id, fecha_movimiento`

// MovementRepo implementación del libro de inventario sobre PostgreSQL
// (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventario_movimientos (movimiento_id, producto_id, tipo_movimiento, cantidad,
			saldo_anterior, saldo_posterior, referencia_tipo, referencia_id,
			observaciones, usuario_id, fecha_movimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductoID, m.Tipo, m.Cantidad,
		m.SaldoAnterior, m.SaldoPosterior, m.Referencia.Tipo, nullableStr(m.Referencia.ID),
		nullableStr(m.Observaciones), m.UsuarioID, m.Fecha,
	)
	if err != nil {
		return fmt.Errorf("create movimiento: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Retorna (nil, nil) si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventario_movimientos WHERE movimiento_id = $1`
	m, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List lista movimientos filtrados, fecha descendente.
func (r *MovementRepo) List(f repository.MovementFilter, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventario_movimientos`
	where, args := buildMovementWhere(f)
	query += where
	query += fmt.Sprintf(" ORDER BY fecha_movimiento DESC, movimiento_id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// Count total de movimientos que cumplen el filtro (para paginación).
func (r *MovementRepo) Count(f repository.MovementFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM inventario_movimientos`
	where, args := buildMovementWhere(f)
	query += where
	var total int64
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movimientos: %w", err)
	}
	return total, nil
}

// DeleteByRef elimina los movimientos que referencian un documento.
// Solo se invoca desde la eliminación simétrica de compras, dentro de la
// misma transacción que revierte el stock.
func (r *MovementRepo) DeleteByRef(ref entity.MovementRef) error {
	query := `DELETE FROM inventario_movimientos WHERE referencia_tipo = $1 AND referencia_id = $2`
	_, err := r.q.Exec(context.Background(), query, ref.Tipo, ref.ID)
	if err != nil {
		return fmt.Errorf("delete movimientos por referencia: %w", err)
	}
	return nil
}

// Resumen agrega movimientos por tipo en un rango de fechas.
func (r *MovementRepo) Resumen(desde, hasta *time.Time) ([]*repository.ResumenMovimiento, error) {
	query := `SELECT tipo_movimiento, COUNT(*), COALESCE(SUM(cantidad), 0)
		FROM inventario_movimientos`
	where, args := buildMovementWhere(repository.MovementFilter{Desde: desde, Hasta: hasta})
	query += where
	query += ` GROUP BY tipo_movimiento ORDER BY tipo_movimiento`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("resumen movimientos: %w", err)
	}
	defer rows.Close()

	var list []*repository.ResumenMovimiento
	for rows.Next() {
		var row repository.ResumenMovimiento
		if err := rows.Scan(&row.Tipo, &row.TotalMovimientos, &row.TotalCantidad); err != nil {
			return nil, fmt.Errorf("scan resumen: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

func buildMovementWhere(f repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	if f.Tipo != "" {
		args = append(args, f.Tipo)
		conds = append(conds, fmt.Sprintf("tipo_movimiento = $%d", len(args)))
	}
	if f.ProductoID != "" {
		args = append(args, f.ProductoID)
		conds = append(conds, fmt.Sprintf("producto_id = $%d", len(args)))
	}
	if f.Desde != nil {
		args = append(args, *f.Desde)
		conds = append(conds, fmt.Sprintf("fecha_movimiento >= $%d", len(args)))
	}
	if f.Hasta != nil {
		args = append(args, *f.Hasta)
		conds = append(conds, fmt.Sprintf("fecha_movimiento <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *MovementRepo) scanOne(row pgx.Row) (*entity.InventoryMovement, error) {
	m, err := scanMovement(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return m, nil
}

func (r *MovementRepo) scanRow(rows pgx.Rows) (*entity.InventoryMovement, error) {
	m, err := scanMovement(rows.Scan)
	if err != nil {
		return nil, fmt.Errorf("scan movimiento: %w", err)
	}
	return m, nil
}

func scanMovement(scan func(dest ...any) error) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	var refID, observaciones *string
	if err := scan(
		&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad,
		&m.SaldoAnterior, &m.SaldoPosterior, &m.Referencia.Tipo, &refID,
		&observaciones, &m.UsuarioID, &m.Fecha,
	); err != nil {
		return nil, err
	}
	if refID != nil {
		m.Referencia.ID = *refID
	}
	if observaciones != nil {
		m.Observaciones = *observaciones
	}
	return &m, nil
}
