package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comercio-api/internal/application/auth"
	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/application/purchases"
	"github.com/jhoicas/comercio-api/internal/application/sales"
	"github.com/jhoicas/comercio-api/internal/application/usecase"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	apphttp "github.com/jhoicas/comercio-api/internal/interfaces/http"
	"github.com/jhoicas/comercio-api/internal/infrastructure/memory"
)

// noCache miss permanente para los tests de handlers.
type noCache struct{}

func (noCache) GetResumen(context.Context, string) ([]dto.ResumenMovimientoDTO, bool, error) {
	return nil, false, nil
}
func (noCache) SetResumen(context.Context, string, []dto.ResumenMovimientoDTO, time.Duration) error {
	return nil
}

// apiFixture aplicación completa sobre el almacén en memoria.
type apiFixture struct {
	app       *fiber.App
	store     *memory.Store
	token     string
	proveedor *entity.Supplier
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)

	proveedor := &entity.Supplier{ID: uuid.New().String(), Nombre: "Proveedor Uno", Activo: true}
	store.SeedSupplier(proveedor)

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(store.Products()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(txRunner, store.Products()),
		InventoryQuery:   inventory.NewQueryUseCase(store.Movements(), store.Products(), noCache{}),
		PurchaseUC:       purchases.NewPurchaseUseCase(txRunner, store.Purchases(), store.Products(), store.Suppliers()),
		SaleUC:           sales.NewSaleUseCase(txRunner, store.Sales(), store.Products(), store.Users(), store.Customers(), store.Combos()),
		AuthUC:           authUC,
		JWTSecret:        testJWTSecret,
	})

	f := &apiFixture{app: app, store: store, proveedor: proveedor}

	// Registrarse y loguearse por la API, como lo haría un cliente real.
	resp := f.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "cajero1", "password": "secreto123", "role": "vendedor",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.doJSON(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "cajero1", "password": "secreto123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var login dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&login))
	resp.Body.Close()
	f.token = "Bearer " + login.Token
	return f
}

func (f *apiFixture) doJSON(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// Flujo completo: producto → compra → venta → consulta de stock y movimientos.
func TestAPI_FlujoCompraVentaStock(t *testing.T) {
	f := newAPIFixture(t)

	// Alta de producto con stock inicial 0.
	resp := f.doJSON(t, http.MethodPost, "/api/productos/", f.token, map[string]any{
		"codigo": "LECHE-001", "nombre": "Leche Entera 1L", "unidad_medida": "unidad",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	producto := decode[dto.ProductResponse](t, resp)

	// Compra de 12 unidades.
	resp = f.doJSON(t, http.MethodPost, "/api/compras/", f.token, map[string]any{
		"proveedor_id": f.proveedor.ID,
		"items": []map[string]any{
			{"producto_id": producto.ID, "cantidad": "12", "precio_unitario": "5.00"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	compra := decode[dto.PurchaseResponse](t, resp)
	assert.Equal(t, "60", compra.Total.String())

	// Venta de 5 unidades.
	resp = f.doJSON(t, http.MethodPost, "/api/ventas/", f.token, map[string]any{
		"items": []map[string]any{
			{"producto_id": producto.ID, "cantidad": "5", "precio_unitario": "7.50"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	venta := decode[dto.SaleResponse](t, resp)
	assert.Equal(t, "37.5", venta.Total.String())

	// Stock vigente: 12 − 5 = 7.
	resp = f.doJSON(t, http.MethodGet, "/api/inventario/stock/"+producto.ID, f.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stock := decode[dto.StockResponse](t, resp)
	assert.Equal(t, "7", stock.StockActual.String())

	// El libro registra entrada y salida con referencias.
	resp = f.doJSON(t, http.MethodGet, "/api/inventario/movimientos?producto_id="+producto.ID, f.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lista := decode[dto.MovementListResponse](t, resp)
	require.Equal(t, int64(2), lista.Pagination.Total)
	assert.Equal(t, entity.MovementSalida, lista.Data[0].Tipo)
	assert.Equal(t, venta.ID, lista.Data[0].ReferenciaID)
	assert.Equal(t, entity.MovementEntrada, lista.Data[1].Tipo)
	assert.Equal(t, compra.ID, lista.Data[1].ReferenciaID)
}

// Venta sin stock suficiente responde 409 y no persiste nada.
func TestAPI_VentaSinStockResponde409(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.doJSON(t, http.MethodPost, "/api/productos/", f.token, map[string]any{
		"codigo": "QUESO-001", "nombre": "Queso Fresco", "unidad_medida": "kg", "stock_actual": "2",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	producto := decode[dto.ProductResponse](t, resp)

	resp = f.doJSON(t, http.MethodPost, "/api/ventas/", f.token, map[string]any{
		"items": []map[string]any{
			{"producto_id": producto.ID, "cantidad": "3", "precio_unitario": "20"},
		},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	resp = f.doJSON(t, http.MethodGet, "/api/ventas/", f.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ventas := decode[[]dto.SaleResponse](t, resp)
	assert.Empty(t, ventas)
}

// Las rutas protegidas exigen token.
func TestAPI_RutasProtegidasSinToken(t *testing.T) {
	f := newAPIFixture(t)

	rutas := []struct{ method, path string }{
		{http.MethodGet, "/api/productos/"},
		{http.MethodPost, "/api/inventario/movimientos"},
		{http.MethodGet, "/api/compras/"},
		{http.MethodPost, "/api/ventas/"},
	}
	for _, r := range rutas {
		resp := f.doJSON(t, r.method, r.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, fmt.Sprintf("%s %s", r.method, r.path))
		resp.Body.Close()
	}
}

// Eliminar compra con stock ya consumido responde 409.
func TestAPI_EliminarCompraConStockConsumido(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.doJSON(t, http.MethodPost, "/api/productos/", f.token, map[string]any{
		"codigo": "SAL-001", "nombre": "Sal 500g", "unidad_medida": "unidad",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	producto := decode[dto.ProductResponse](t, resp)

	resp = f.doJSON(t, http.MethodPost, "/api/compras/", f.token, map[string]any{
		"proveedor_id": f.proveedor.ID,
		"items": []map[string]any{
			{"producto_id": producto.ID, "cantidad": "10", "precio_unitario": "1"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	compra := decode[dto.PurchaseResponse](t, resp)

	// Consumir 8 de las 10 unidades.
	resp = f.doJSON(t, http.MethodPost, "/api/ventas/", f.token, map[string]any{
		"items": []map[string]any{
			{"producto_id": producto.ID, "cantidad": "8", "precio_unitario": "2"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.doJSON(t, http.MethodDelete, "/api/compras/"+compra.ID, f.token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}
