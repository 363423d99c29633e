package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
)

// noopCache miss permanente, igual que correr sin Redis.
type noopCache struct{}

func (noopCache) GetResumen(context.Context, string) ([]dto.ResumenMovimientoDTO, bool, error) {
	return nil, false, nil
}
func (noopCache) SetResumen(context.Context, string, []dto.ResumenMovimientoDTO, time.Duration) error {
	return nil
}

// spyCache cache en memoria para verificar que el resumen se sirve del cache.
type spyCache struct {
	data map[string][]dto.ResumenMovimientoDTO
	hits int
}

func (c *spyCache) GetResumen(_ context.Context, key string) ([]dto.ResumenMovimientoDTO, bool, error) {
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}
func (c *spyCache) SetResumen(_ context.Context, key string, v []dto.ResumenMovimientoDTO, _ time.Duration) error {
	c.data[key] = v
	return nil
}

func newQueryFixture(t *testing.T, cache inventory.ResumenCache) (*inventory.QueryUseCase, *inventory.RegisterMovementUseCase, *memory.Store, *entity.Product) {
	t.Helper()
	store := memory.NewStore()
	producto := &entity.Product{
		ID:           uuid.New().String(),
		Codigo:       "ARR-001",
		Nombre:       "Arroz 1kg",
		UnidadMedida: "unidad",
		StockActual:  decimal.NewFromInt(100),
		StockMinimo:  decimal.NewFromInt(10),
		Activo:       true,
	}
	require.NoError(t, store.Products().Create(producto))
	register := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(store), store.Products())
	query := inventory.NewQueryUseCase(store.Movements(), store.Products(), cache)
	return query, register, store, producto
}

func TestListMovements_PaginacionYOrden(t *testing.T) {
	query, register, _, producto := newQueryFixture(t, noopCache{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := register.RegisterMovement(ctx, inventory.MovementInput{
			ProductoID: producto.ID,
			Tipo:       entity.MovementEntrada,
			Cantidad:   decimal.NewFromInt(int64(i + 1)),
			UsuarioID:  testUsuarioID,
		})
		require.NoError(t, err)
	}

	out, err := query.ListMovements(ctx, inventory.MovementFilters{ProductoID: producto.ID}, dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)

	assert.Len(t, out.Data, 2)
	assert.Equal(t, int64(5), out.Pagination.Total)
	assert.Equal(t, int64(3), out.Pagination.Pages)
	// Orden descendente: el más reciente primero.
	assert.Equal(t, "5", out.Data[0].Cantidad.String())
	assert.Equal(t, "4", out.Data[1].Cantidad.String())
	// Enriquecido con datos de producto.
	assert.Equal(t, "ARR-001", out.Data[0].ProductoCodigo)
	assert.Equal(t, "Arroz 1kg", out.Data[0].ProductoNombre)
}

func TestListMovements_FiltroPorTipo(t *testing.T) {
	query, register, _, producto := newQueryFixture(t, noopCache{})
	ctx := context.Background()

	for _, tipo := range []string{entity.MovementEntrada, entity.MovementSalida, entity.MovementEntrada} {
		_, err := register.RegisterMovement(ctx, inventory.MovementInput{
			ProductoID: producto.ID,
			Tipo:       tipo,
			Cantidad:   decimal.NewFromInt(2),
			UsuarioID:  testUsuarioID,
		})
		require.NoError(t, err)
	}

	out, err := query.ListMovements(ctx, inventory.MovementFilters{Tipo: entity.MovementSalida}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Pagination.Total)
	assert.Equal(t, entity.MovementSalida, out.Data[0].Tipo)

	_, err = query.ListMovements(ctx, inventory.MovementFilters{Tipo: "otro"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// fecha_hasta debe incluir el día completo aunque el movimiento sea de la tarde.
func TestListMovements_FechaHastaIncluyeDiaCompleto(t *testing.T) {
	query, register, _, producto := newQueryFixture(t, noopCache{})
	ctx := context.Background()

	_, err := register.RegisterMovement(ctx, inventory.MovementInput{
		ProductoID: producto.ID,
		Tipo:       entity.MovementEntrada,
		Cantidad:   decimal.NewFromInt(1),
		UsuarioID:  testUsuarioID,
	})
	require.NoError(t, err)

	y, m, d := time.Now().Date()
	hoy := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	out, err := query.ListMovements(ctx, inventory.MovementFilters{Hasta: &hoy}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Pagination.Total,
		"un movimiento de hoy debe entrar en el filtro hasta=hoy")

	ayer := hoy.AddDate(0, 0, -1)
	out, err = query.ListMovements(ctx, inventory.MovementFilters{Hasta: &ayer}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Pagination.Total)
}

// Historial por producto: solo los movimientos del producto pedido, paginados.
func TestListByProduct(t *testing.T) {
	query, register, store, producto := newQueryFixture(t, noopCache{})
	ctx := context.Background()

	otro := &entity.Product{
		ID:           uuid.New().String(),
		Codigo:       "FRI-001",
		Nombre:       "Frijol 1kg",
		UnidadMedida: "unidad",
		StockActual:  decimal.NewFromInt(50),
		Activo:       true,
	}
	require.NoError(t, store.Products().Create(otro))

	for _, id := range []string{producto.ID, otro.ID, producto.ID, producto.ID} {
		_, err := register.RegisterMovement(ctx, inventory.MovementInput{
			ProductoID: id,
			Tipo:       entity.MovementEntrada,
			Cantidad:   decimal.NewFromInt(2),
			UsuarioID:  testUsuarioID,
		})
		require.NoError(t, err)
	}

	out, err := query.ListByProduct(ctx, producto.ID, dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Data, 2)
	assert.Equal(t, int64(3), out.Pagination.Total)
	for _, m := range out.Data {
		assert.Equal(t, producto.ID, m.ProductoID)
	}

	// Producto sin movimientos: página vacía, no error.
	out, err = query.ListByProduct(ctx, uuid.New().String(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Data)

	_, err = query.ListByProduct(ctx, "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetMovement(t *testing.T) {
	query, register, _, producto := newQueryFixture(t, noopCache{})
	ctx := context.Background()

	mov, err := register.RegisterMovement(ctx, inventory.MovementInput{
		ProductoID: producto.ID,
		Tipo:       entity.MovementEntrada,
		Cantidad:   decimal.NewFromInt(8),
		UsuarioID:  testUsuarioID,
	})
	require.NoError(t, err)

	out, err := query.GetMovement(ctx, mov.ID)
	require.NoError(t, err)
	assert.Equal(t, mov.ID, out.ID)
	assert.Equal(t, "8", out.Cantidad.String())

	_, err = query.GetMovement(ctx, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetStock(t *testing.T) {
	query, register, _, producto := newQueryFixture(t, noopCache{})
	ctx := context.Background()

	// Sin movimientos: el stock almacenado del producto.
	out, err := query.GetStock(ctx, producto.ID)
	require.NoError(t, err)
	assert.Equal(t, "100", out.StockActual.String())

	// Tras un movimiento, la fila del producto refleja el nuevo saldo.
	_, err = register.RegisterMovement(ctx, inventory.MovementInput{
		ProductoID: producto.ID,
		Tipo:       entity.MovementSalida,
		Cantidad:   decimal.NewFromInt(30),
		UsuarioID:  testUsuarioID,
	})
	require.NoError(t, err)

	out, err = query.GetStock(ctx, producto.ID)
	require.NoError(t, err)
	assert.Equal(t, "70", out.StockActual.String())

	_, err = query.GetStock(ctx, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResumen_AgrupaPorTipoYUsaCache(t *testing.T) {
	cache := &spyCache{data: map[string][]dto.ResumenMovimientoDTO{}}
	query, register, _, producto := newQueryFixture(t, cache)
	ctx := context.Background()

	movimientos := []struct {
		tipo     string
		cantidad int64
	}{
		{entity.MovementEntrada, 10},
		{entity.MovementEntrada, 5},
		{entity.MovementSalida, 3},
	}
	for _, m := range movimientos {
		_, err := register.RegisterMovement(ctx, inventory.MovementInput{
			ProductoID: producto.ID,
			Tipo:       m.tipo,
			Cantidad:   decimal.NewFromInt(m.cantidad),
			UsuarioID:  testUsuarioID,
		})
		require.NoError(t, err)
	}

	out, err := query.Resumen(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, entity.MovementEntrada, out[0].Tipo)
	assert.Equal(t, int64(2), out[0].TotalMovimientos)
	assert.Equal(t, "15", out[0].TotalCantidad.String())
	assert.Equal(t, entity.MovementSalida, out[1].Tipo)
	assert.Equal(t, "3", out[1].TotalCantidad.String())

	// Segunda llamada con la misma clave: debe salir del cache.
	_, err = query.Resumen(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
}
