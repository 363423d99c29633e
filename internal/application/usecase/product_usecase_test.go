package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/usecase"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
)

const testUsuarioID = "00000000-0000-0000-0000-000000000001"

func TestProductCreate_YDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	out, err := uc.Create(ctx, testUsuarioID, dto.CreateProductRequest{
		Codigo:       "CAFE-001",
		Nombre:       "Café Molido 500g",
		UnidadMedida: "unidad",
		StockActual:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "CAFE-001", out.Codigo)
	assert.True(t, out.Activo)

	_, err = uc.Create(ctx, testUsuarioID, dto.CreateProductRequest{
		Codigo:       "CAFE-001",
		Nombre:       "Otro Café",
		UnidadMedida: "unidad",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	_, err := uc.Create(ctx, testUsuarioID, dto.CreateProductRequest{
		Nombre: "Sin Código", UnidadMedida: "unidad",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, testUsuarioID, dto.CreateProductRequest{
		Codigo: "X-001", Nombre: "Stock Negativo", UnidadMedida: "unidad",
		StockActual: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductList_BusquedaSinTildes(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products())
	ctx := context.Background()

	nombres := []struct{ codigo, nombre string }{
		{"CAFE-001", "Café Molido 500g"},
		{"CAFE-002", "Cafetera Italiana"},
		{"ARR-001", "Arroz 1kg"},
	}
	for _, n := range nombres {
		_, err := uc.Create(ctx, testUsuarioID, dto.CreateProductRequest{
			Codigo: n.codigo, Nombre: n.nombre, UnidadMedida: "unidad",
		})
		require.NoError(t, err)
	}

	// "café" con tilde encuentra los productos "cafe" sin importar mayúsculas.
	out, err := uc.List(ctx, "Café", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out, 2)

	out, err = uc.List(ctx, "", dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out, 2, "paginación del listado completo")
}
