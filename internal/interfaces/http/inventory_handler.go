package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de inventario
// @Description  entrada suma, salida resta (rechaza si el saldo no alcanza),
//
//	ajuste fija el saldo en la cantidad indicada.
//
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "producto_id, tipo_movimiento, cantidad"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.register.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductoID:    in.ProductoID,
		Tipo:          in.Tipo,
		Cantidad:      in.Cantidad,
		Observaciones: in.Observaciones,
		UsuarioID:     userID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		ID:             mov.ID,
		ProductoID:     mov.ProductoID,
		Tipo:           mov.Tipo,
		Cantidad:       mov.Cantidad,
		SaldoAnterior:  mov.SaldoAnterior,
		SaldoPosterior: mov.SaldoPosterior,
		ReferenciaTipo: mov.Referencia.Tipo,
		ReferenciaID:   mov.Referencia.ID,
		Observaciones:  mov.Observaciones,
		UsuarioID:      mov.UsuarioID,
		Fecha:          mov.Fecha,
	})
}

// ListMovements godoc
// @Summary      Listar movimientos de inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        tipo_movimiento  query  string  false  "entrada | salida | ajuste"
// @Param        producto_id      query  string  false  "Filtrar por producto"
// @Param        fecha_desde      query  string  false  "YYYY-MM-DD"
// @Param        fecha_hasta      query  string  false  "YYYY-MM-DD (día completo)"
// @Param        page             query  int     false  "Página (desde 1)"
// @Param        limit            query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	filters := inventory.MovementFilters{
		Tipo:       c.Query("tipo_movimiento"),
		ProductoID: c.Query("producto_id"),
	}
	var err error
	if filters.Desde, err = parseFecha(c.Query("fecha_desde")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_desde inválida (YYYY-MM-DD)"})
	}
	if filters.Hasta, err = parseFecha(c.Query("fecha_hasta")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_hasta inválida (YYYY-MM-DD)"})
	}

	out, err := h.query.ListMovements(c.Context(), filters, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        producto_id  path   string  true   "ID del producto"
// @Param        page         query  int     false  "Página (desde 1)"
// @Param        limit        query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/producto/{producto_id} [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.query.ListByProduct(c.Context(), c.Params("producto_id"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Resumen godoc
// @Summary      Resumen de movimientos por tipo
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        fecha_desde  query  string  false  "YYYY-MM-DD"
// @Param        fecha_hasta  query  string  false  "YYYY-MM-DD (día completo)"
// @Success      200  {array}   dto.ResumenMovimientoDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos/resumen [get]
func (h *InventoryHandler) Resumen(c *fiber.Ctx) error {
	desde, err := parseFecha(c.Query("fecha_desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_desde inválida (YYYY-MM-DD)"})
	}
	hasta, err := parseFecha(c.Query("fecha_hasta"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fecha_hasta inválida (YYYY-MM-DD)"})
	}
	out, err := h.query.Resumen(c.Context(), desde, hasta)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMovement godoc
// @Summary      Obtener un movimiento por ID
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.query.GetMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetStock godoc
// @Summary      Stock vigente de un producto
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        producto_id  path      string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/stock/{producto_id} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	out, err := h.query.GetStock(c.Context(), c.Params("producto_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseFecha parsea fechas YYYY-MM-DD de query params; vacío retorna nil.
func parseFecha(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseFechaFin igual que parseFecha pero extendida al último instante del
// día, para filtros 'hasta' inclusivos en compras y ventas.
func parseFechaFin(s string) (*time.Time, error) {
	t, err := parseFecha(s)
	if err != nil || t == nil {
		return t, err
	}
	fin := t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	return &fin, nil
}
