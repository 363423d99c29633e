package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `producto_id, codigo, nombre, descripcion, categoria, unidad_medida,
		stock_actual, stock_minimo, costo_unitario, precio_venta, activo,
		usuario_creacion_id, fecha_creacion, fecha_modificacion`

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO productos (producto_id, codigo, nombre, descripcion, categoria, unidad_medida,
			stock_actual, stock_minimo, costo_unitario, precio_venta, activo,
			usuario_creacion_id, fecha_creacion, fecha_modificacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	creadoPor := nullableStr(p.CreadoPor)
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Codigo, p.Nombre, p.Descripcion, p.Categoria, p.UnidadMedida,
		p.StockActual, p.StockMinimo, p.CostoUnitario, p.PrecioVenta, p.Activo,
		creadoPor, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Retorna (nil, nil) si no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE producto_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByCodigo obtiene un producto por su código único.
func (r *ProductRepo) GetByCodigo(codigo string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE codigo = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, codigo))
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
// Serializa los movimientos concurrentes sobre el mismo producto.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE producto_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update actualiza los datos maestros del producto.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE productos SET
			codigo = $2, nombre = $3, descripcion = $4, categoria = $5,
			unidad_medida = $6, stock_minimo = $7, costo_unitario = $8,
			precio_venta = $9, activo = $10, fecha_modificacion = now()
		WHERE producto_id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Codigo, p.Nombre, p.Descripcion, p.Categoria,
		p.UnidadMedida, p.StockMinimo, p.CostoUnitario, p.PrecioVenta, p.Activo,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// UpdateStock fija stock_actual. Se invoca desde el registrador de
// movimientos dentro de la misma transacción que el asiento.
func (r *ProductRepo) UpdateStock(id string, nuevoStock decimal.Decimal) error {
	query := `UPDATE productos SET stock_actual = $2, fecha_modificacion = now() WHERE producto_id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, nuevoStock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos ordenados por nombre.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// SearchByNombre busca por nombre sin distinguir tildes ni mayúsculas.
// El término ya viene normalizado desde la aplicación.
func (r *ProductRepo) SearchByNombre(termino string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos
		WHERE lower(translate(nombre, 'áéíóúüñÁÉÍÓÚÜÑ', 'aeiouunAEIOUUN')) LIKE '%' || $1 || '%'
		ORDER BY nombre LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, termino, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("search productos: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var creadoPor *string
	err := row.Scan(
		&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.Categoria, &p.UnidadMedida,
		&p.StockActual, &p.StockMinimo, &p.CostoUnitario, &p.PrecioVenta, &p.Activo,
		&creadoPor, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	if creadoPor != nil {
		p.CreadoPor = *creadoPor
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var creadoPor *string
		if err := rows.Scan(
			&p.ID, &p.Codigo, &p.Nombre, &p.Descripcion, &p.Categoria, &p.UnidadMedida,
			&p.StockActual, &p.StockMinimo, &p.CostoUnitario, &p.PrecioVenta, &p.Activo,
			&creadoPor, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		if creadoPor != nil {
			p.CreadoPor = *creadoPor
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func nullableStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
