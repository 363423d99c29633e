package purchases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/application/purchases"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
)

const testUsuarioID = "00000000-0000-0000-0000-000000000001"

type purchaseFixture struct {
	uc        *purchases.PurchaseUseCase
	store     *memory.Store
	proveedor *entity.Supplier
	harina    *entity.Product
	azucar    *entity.Product
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()
	store := memory.NewStore()
	proveedor := &entity.Supplier{
		ID:     uuid.New().String(),
		Nombre: "Distribuidora El Trigal",
		Activo: true,
	}
	store.SeedSupplier(proveedor)

	harina := &entity.Product{
		ID:           uuid.New().String(),
		Codigo:       "HAR-001",
		Nombre:       "Harina 1kg",
		UnidadMedida: "unidad",
		StockActual:  decimal.NewFromInt(10),
		Activo:       true,
	}
	azucar := &entity.Product{
		ID:           uuid.New().String(),
		Codigo:       "AZU-001",
		Nombre:       "Azúcar 1kg",
		UnidadMedida: "unidad",
		StockActual:  decimal.NewFromInt(5),
		Activo:       true,
	}
	require.NoError(t, store.Products().Create(harina))
	require.NoError(t, store.Products().Create(azucar))

	uc := purchases.NewPurchaseUseCase(
		memory.NewTxRunner(store), store.Purchases(), store.Products(), store.Suppliers())
	return &purchaseFixture{uc: uc, store: store, proveedor: proveedor, harina: harina, azucar: azucar}
}

func (f *purchaseFixture) stockDe(t *testing.T, productoID string) decimal.Decimal {
	t.Helper()
	p, err := f.store.Products().GetByID(productoID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockActual
}

func (f *purchaseFixture) movimientosDe(t *testing.T, productoID string) []*entity.InventoryMovement {
	t.Helper()
	movs, err := f.store.Movements().List(repository.MovementFilter{ProductoID: productoID}, 100, 0)
	require.NoError(t, err)
	return movs
}

// La compra genera una entrada de inventario por línea y actualiza el stock,
// todo junto.
func TestCreatePurchase_GeneraEntradasPorLinea(t *testing.T) {
	f := newPurchaseFixture(t)

	out, err := f.uc.CreatePurchase(context.Background(), testUsuarioID, dto.CreatePurchaseRequest{
		ProveedorID:   f.proveedor.ID,
		NumeroFactura: "FC-0001",
		Items: []dto.PurchaseItemRequest{
			{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(20), PrecioUnitario: decimal.RequireFromString("3.50")},
			{ProductoID: f.azucar.ID, Cantidad: decimal.NewFromInt(8), PrecioUnitario: decimal.RequireFromString("4.00")},
		},
	})
	require.NoError(t, err)

	// Totales: 20×3.50 + 8×4.00 = 102
	assert.Equal(t, "102", out.Subtotal.String())
	assert.Equal(t, "102", out.Total.String())
	assert.Equal(t, entity.EstadoCompletada, out.Estado, "estado por defecto COMPLETADA")
	assert.Equal(t, "Distribuidora El Trigal", out.ProveedorNombre)

	// Stock actualizado.
	assert.Equal(t, "30", f.stockDe(t, f.harina.ID).String())
	assert.Equal(t, "13", f.stockDe(t, f.azucar.ID).String())

	// Un movimiento de entrada por línea, referenciando la compra.
	movsHarina := f.movimientosDe(t, f.harina.ID)
	require.Len(t, movsHarina, 1)
	assert.Equal(t, entity.MovementEntrada, movsHarina[0].Tipo)
	assert.Equal(t, entity.RefCompra, movsHarina[0].Referencia.Tipo)
	assert.Equal(t, out.ID, movsHarina[0].Referencia.ID)
	assert.Equal(t, "10", movsHarina[0].SaldoAnterior.String())
	assert.Equal(t, "30", movsHarina[0].SaldoPosterior.String())
}

// Si una línea falla, no queda nada: ni cabecera, ni detalle, ni movimientos,
// ni stock tocado.
func TestCreatePurchase_FallaUnaLineaRevierteTodo(t *testing.T) {
	f := newPurchaseFixture(t)

	_, err := f.uc.CreatePurchase(context.Background(), testUsuarioID, dto.CreatePurchaseRequest{
		ProveedorID: f.proveedor.ID,
		Items: []dto.PurchaseItemRequest{
			{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(20), PrecioUnitario: decimal.NewFromInt(3)},
			{ProductoID: uuid.New().String(), Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, "10", f.stockDe(t, f.harina.ID).String(), "el stock no debe cambiar")
	assert.Empty(t, f.movimientosDe(t, f.harina.ID))
	compras, err := f.store.Purchases().List(repository.PurchaseFilter{})
	require.NoError(t, err)
	assert.Empty(t, compras)
}

func TestCreatePurchase_Validaciones(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	casos := []struct {
		nombre string
		in     dto.CreatePurchaseRequest
		want   error
	}{
		{
			nombre: "sin proveedor",
			in: dto.CreatePurchaseRequest{Items: []dto.PurchaseItemRequest{
				{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(1)},
			}},
			want: domain.ErrInvalidInput,
		},
		{
			nombre: "sin items",
			in:     dto.CreatePurchaseRequest{ProveedorID: f.proveedor.ID},
			want:   domain.ErrInvalidInput,
		},
		{
			nombre: "cantidad cero",
			in: dto.CreatePurchaseRequest{ProveedorID: f.proveedor.ID, Items: []dto.PurchaseItemRequest{
				{ProductoID: f.harina.ID, Cantidad: decimal.Zero, PrecioUnitario: decimal.NewFromInt(1)},
			}},
			want: domain.ErrInvalidInput,
		},
		{
			nombre: "precio negativo",
			in: dto.CreatePurchaseRequest{ProveedorID: f.proveedor.ID, Items: []dto.PurchaseItemRequest{
				{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(-2)},
			}},
			want: domain.ErrInvalidInput,
		},
		{
			nombre: "estado inválido",
			in: dto.CreatePurchaseRequest{ProveedorID: f.proveedor.ID, Estado: "EN_CAMINO", Items: []dto.PurchaseItemRequest{
				{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(1)},
			}},
			want: domain.ErrInvalidInput,
		},
		{
			nombre: "proveedor inexistente",
			in: dto.CreatePurchaseRequest{ProveedorID: uuid.New().String(), Items: []dto.PurchaseItemRequest{
				{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(1)},
			}},
			want: domain.ErrNotFound,
		},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := f.uc.CreatePurchase(ctx, testUsuarioID, c.in)
			assert.ErrorIs(t, err, c.want)
		})
	}
}

// Cambiar estado es solo metadatos: no toca inventario.
func TestChangeEstado_NoRevierteInventario(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	out, err := f.uc.CreatePurchase(ctx, testUsuarioID, dto.CreatePurchaseRequest{
		ProveedorID: f.proveedor.ID,
		Items: []dto.PurchaseItemRequest{
			{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(20), PrecioUnitario: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.ChangeEstado(ctx, out.ID, entity.EstadoCancelada))

	compra, err := f.uc.GetPurchase(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoCancelada, compra.Estado)
	assert.Equal(t, "30", f.stockDe(t, f.harina.ID).String(), "cancelar no repone stock")
	assert.Len(t, f.movimientosDe(t, f.harina.ID), 1, "los movimientos quedan intactos")

	assert.ErrorIs(t, f.uc.ChangeEstado(ctx, out.ID, "DESPACHADA"), domain.ErrInvalidInput)
	assert.ErrorIs(t, f.uc.ChangeEstado(ctx, uuid.New().String(), entity.EstadoPendiente), domain.ErrNotFound)
}

// Eliminar una compra revierte sus efectos de inventario simétricamente.
func TestDeletePurchase_RevierteStockYMovimientos(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	out, err := f.uc.CreatePurchase(ctx, testUsuarioID, dto.CreatePurchaseRequest{
		ProveedorID: f.proveedor.ID,
		Items: []dto.PurchaseItemRequest{
			{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(20), PrecioUnitario: decimal.NewFromInt(3)},
			{ProductoID: f.azucar.ID, Cantidad: decimal.NewFromInt(8), PrecioUnitario: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.DeletePurchase(ctx, out.ID))

	assert.Equal(t, "10", f.stockDe(t, f.harina.ID).String())
	assert.Equal(t, "5", f.stockDe(t, f.azucar.ID).String())
	assert.Empty(t, f.movimientosDe(t, f.harina.ID))
	assert.Empty(t, f.movimientosDe(t, f.azucar.ID))

	_, err = f.uc.GetPurchase(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Tras eliminar una compra con movimientos posteriores, el siguiente asiento
// arranca del stock ya revertido, no del saldo del último movimiento viejo.
func TestDeletePurchase_MovimientoPosteriorArrancaDelStockRevertido(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()
	register := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(f.store), f.store.Products())

	// 10 inicial + 20 comprado = 30; salida de 5 deja 25.
	out, err := f.uc.CreatePurchase(ctx, testUsuarioID, dto.CreatePurchaseRequest{
		ProveedorID: f.proveedor.ID,
		Items: []dto.PurchaseItemRequest{
			{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(20), PrecioUnitario: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	_, err = register.RegisterMovement(ctx, inventory.MovementInput{
		ProductoID: f.harina.ID,
		Tipo:       entity.MovementSalida,
		Cantidad:   decimal.NewFromInt(5),
		UsuarioID:  testUsuarioID,
	})
	require.NoError(t, err)

	// Revertir la compra deja 25 − 20 = 5.
	require.NoError(t, f.uc.DeletePurchase(ctx, out.ID))
	require.Equal(t, "5", f.stockDe(t, f.harina.ID).String())

	// La salida de 5 quedó en el libro con saldo posterior 25, pero el
	// siguiente asiento debe encadenar desde el stock revertido (5), no
	// resucitar las 20 unidades eliminadas.
	mov, err := register.RegisterMovement(ctx, inventory.MovementInput{
		ProductoID: f.harina.ID,
		Tipo:       entity.MovementEntrada,
		Cantidad:   decimal.NewFromInt(1),
		UsuarioID:  testUsuarioID,
	})
	require.NoError(t, err)
	assert.Equal(t, "5", mov.SaldoAnterior.String())
	assert.Equal(t, "6", mov.SaldoPosterior.String())
	assert.Equal(t, "6", f.stockDe(t, f.harina.ID).String())
}

// Si el stock comprado ya se consumió, la reversión dejaría saldo negativo y
// la eliminación se rechaza sin tocar nada.
func TestDeletePurchase_StockConsumidoRechaza(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	out, err := f.uc.CreatePurchase(ctx, testUsuarioID, dto.CreatePurchaseRequest{
		ProveedorID: f.proveedor.ID,
		Items: []dto.PurchaseItemRequest{
			{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(20), PrecioUnitario: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	// Consumir casi todo el stock (10 inicial + 20 comprado − 25 = 5 < 20).
	register := inventory.NewRegisterMovementUseCase(memory.NewTxRunner(f.store), f.store.Products())
	_, err = register.RegisterMovement(ctx, inventory.MovementInput{
		ProductoID: f.harina.ID,
		Tipo:       entity.MovementSalida,
		Cantidad:   decimal.NewFromInt(25),
		UsuarioID:  testUsuarioID,
	})
	require.NoError(t, err)

	err = f.uc.DeletePurchase(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada cambió: la compra sigue y el stock queda en 5.
	compra, err := f.uc.GetPurchase(ctx, out.ID)
	require.NoError(t, err)
	assert.Len(t, compra.Items, 1)
	assert.Equal(t, "5", f.stockDe(t, f.harina.ID).String())
}

func TestListPurchases_Filtros(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreatePurchase(ctx, testUsuarioID, dto.CreatePurchaseRequest{
		ProveedorID: f.proveedor.ID,
		Estado:      entity.EstadoPendiente,
		Items: []dto.PurchaseItemRequest{
			{ProductoID: f.harina.ID, Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)
	_, err = f.uc.CreatePurchase(ctx, testUsuarioID, dto.CreatePurchaseRequest{
		ProveedorID: f.proveedor.ID,
		Items: []dto.PurchaseItemRequest{
			{ProductoID: f.azucar.ID, Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)

	todas, err := f.uc.ListPurchases(ctx, repository.PurchaseFilter{})
	require.NoError(t, err)
	assert.Len(t, todas, 2)

	pendientes, err := f.uc.ListPurchases(ctx, repository.PurchaseFilter{Estado: entity.EstadoPendiente})
	require.NoError(t, err)
	require.Len(t, pendientes, 1)
	assert.Equal(t, entity.EstadoPendiente, pendientes[0].Estado)

	_, err = f.uc.ListPurchases(ctx, repository.PurchaseFilter{Estado: "RARA"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
