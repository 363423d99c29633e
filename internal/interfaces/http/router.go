package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/auth"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/application/purchases"
	"github.com/jhoicas/comercio-api/internal/application/sales"
	"github.com/jhoicas/comercio-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	InventoryQuery   *inventory.QueryUseCase
	PurchaseUC       *purchases.PurchaseUseCase
	SaleUC           *sales.SaleUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Productos (protegido)
	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Inventario (protegido). /movimientos/resumen va antes de /movimientos/:id.
	invGroup := protected.Group("/inventario")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.InventoryQuery)
	invGroup.Post("/movimientos", inventoryHandler.RegisterMovement)
	invGroup.Get("/movimientos", inventoryHandler.ListMovements)
	invGroup.Get("/movimientos/resumen", inventoryHandler.Resumen)
	invGroup.Get("/movimientos/:id", inventoryHandler.GetMovement)
	invGroup.Get("/producto/:producto_id", inventoryHandler.ListByProduct)
	invGroup.Get("/stock/:producto_id", inventoryHandler.GetStock)

	// Compras (protegido)
	compras := protected.Group("/compras")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	compras.Post("/", purchaseHandler.Create)
	compras.Get("/", purchaseHandler.List)
	compras.Get("/:id", purchaseHandler.GetByID)
	compras.Patch("/:id/estado", purchaseHandler.ChangeEstado)
	compras.Delete("/:id", purchaseHandler.Delete)

	// Ventas (protegido)
	ventas := protected.Group("/ventas")
	saleHandler := NewSaleHandler(deps.SaleUC)
	ventas.Post("/", saleHandler.Create)
	ventas.Get("/", saleHandler.List)
	ventas.Get("/:id", saleHandler.GetByID)
	ventas.Patch("/:id/estado", saleHandler.ChangeEstado)
}
