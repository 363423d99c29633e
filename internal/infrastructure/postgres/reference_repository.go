package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.ComboRepository    = (*ComboRepo)(nil)
)

// SupplierRepo consulta de proveedores.
type SupplierRepo struct {
	q Querier
}

func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT proveedor_id, nombre, nit, telefono, direccion, activo, created_at
		FROM proveedores WHERE proveedor_id = $1`
	var s entity.Supplier
	var nit, telefono, direccion *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Nombre, &nit, &telefono, &direccion, &s.Activo, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	if nit != nil {
		s.NIT = *nit
	}
	if telefono != nil {
		s.Telefono = *telefono
	}
	if direccion != nil {
		s.Direccion = *direccion
	}
	return &s, nil
}

// CustomerRepo consulta de clientes.
type CustomerRepo struct {
	q Querier
}

func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT cliente_id, nombre, nit_ci, telefono, activo, created_at
		FROM clientes WHERE cliente_id = $1`
	var c entity.Customer
	var nitCI, telefono *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Nombre, &nitCI, &telefono, &c.Activo, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	if nitCI != nil {
		c.NitCI = *nitCI
	}
	if telefono != nil {
		c.Telefono = *telefono
	}
	return &c, nil
}

// ComboRepo consulta de combos con sus ingredientes.
type ComboRepo struct {
	q Querier
}

func NewComboRepository(q Querier) *ComboRepo {
	return &ComboRepo{q: q}
}

func (r *ComboRepo) GetByID(id string) (*entity.Combo, error) {
	query := `SELECT combo_id, nombre, descripcion, precio, created_at
		FROM combos WHERE combo_id = $1`
	var c entity.Combo
	var descripcion *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Nombre, &descripcion, &c.Precio, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get combo: %w", err)
	}
	if descripcion != nil {
		c.Descripcion = *descripcion
	}

	rows, err := r.q.Query(context.Background(),
		`SELECT ingrediente_id, combo_id, producto_id, cantidad
			FROM combos_detalle WHERE combo_id = $1 ORDER BY ingrediente_id`, id)
	if err != nil {
		return nil, fmt.Errorf("ingredientes combo: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ing entity.ComboIngrediente
		if err := rows.Scan(&ing.ID, &ing.ComboID, &ing.ProductoID, &ing.Cantidad); err != nil {
			return nil, fmt.Errorf("scan ingrediente: %w", err)
		}
		c.Ingredientes = append(c.Ingredientes, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &c, nil
}
