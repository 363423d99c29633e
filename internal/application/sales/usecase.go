package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// SaleUseCase transacciones de venta: crear (cabecera + detalle + una salida
// de inventario por línea de producto concreto, todo en una transacción,
// rechazando la venta completa si alguna línea se queda sin stock) y consultas.
type SaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	comboRepo    repository.ComboRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	comboRepo repository.ComboRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		comboRepo:    comboRepo,
	}
}

// CreateSale crea la venta y descuenta stock por cada línea de producto
// concreto; las líneas de combo no generan movimientos. Si alguna salida
// retorna ErrInsufficientStock se revierte la venta completa: sin venta
// parcial, sin descuento parcial de stock.
//
// Retorna el agregado completo (cabecera + detalle con nombres resueltos),
// listo para el recibo, sin necesidad de un segundo viaje.
func (uc *SaleUseCase) CreateSale(ctx context.Context, usuarioID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("debe incluir al menos un producto: %w", domain.ErrInvalidInput)
	}
	// El usuario actuante es un error de validación, no una falla del
	// servidor: el caller puede reintentar con una sesión válida.
	if usuarioID == "" {
		return nil, domain.ErrUserNotFound
	}
	existe, err := uc.userRepo.Exists(usuarioID)
	if err != nil {
		return nil, err
	}
	if !existe {
		return nil, domain.ErrUserNotFound
	}

	estado := in.Estado
	if estado == "" {
		estado = entity.EstadoCompletada
	}
	if !entity.ValidEstado(estado) {
		return nil, domain.ErrInvalidInput
	}
	metodoPago := in.MetodoPago
	if metodoPago == "" {
		metodoPago = entity.PagoEfectivo
	}
	descuento := in.Descuento
	if descuento.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	if in.ClienteID != "" {
		cliente, err := uc.customerRepo.GetByID(in.ClienteID)
		if err != nil {
			return nil, err
		}
		if cliente == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Validar líneas y calcular subtotal antes de abrir la transacción.
	subtotal := decimal.Zero
	for _, item := range in.Items {
		if !item.Cantidad.GreaterThan(decimal.Zero) || item.PrecioUnitario.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		switch {
		case item.ProductoID != "" && item.ComboID == "":
			producto, err := uc.productRepo.GetByID(item.ProductoID)
			if err != nil {
				return nil, err
			}
			if producto == nil {
				return nil, fmt.Errorf("producto %s: %w", item.ProductoID, domain.ErrNotFound)
			}
		case item.ComboID != "" && item.ProductoID == "":
			combo, err := uc.comboRepo.GetByID(item.ComboID)
			if err != nil {
				return nil, err
			}
			if combo == nil {
				return nil, fmt.Errorf("combo %s: %w", item.ComboID, domain.ErrNotFound)
			}
		default:
			return nil, domain.ErrInvalidInput
		}
		subtotal = subtotal.Add(item.Cantidad.Mul(item.PrecioUnitario))
	}
	total := subtotal.Sub(descuento)

	now := time.Now()
	fechaVenta := now
	if in.FechaVenta != nil {
		fechaVenta = *in.FechaVenta
	}

	venta := &entity.Sale{
		ID:            uuid.New().String(),
		ClienteID:     in.ClienteID,
		NumeroFactura: in.NumeroFactura,
		FechaVenta:    fechaVenta,
		Subtotal:      subtotal,
		Descuento:     descuento,
		Total:         total,
		Estado:        estado,
		MetodoPago:    metodoPago,
		Observaciones: in.Observaciones,
		UsuarioID:     usuarioID,
		CreatedAt:     now,
	}
	var detalle []*entity.SaleItem

	err = uc.txRunner.RunSale(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		if err := saleRepo.Create(venta); err != nil {
			return err
		}
		for _, item := range in.Items {
			linea := &entity.SaleItem{
				VentaID:        venta.ID,
				ProductoID:     item.ProductoID,
				ComboID:        item.ComboID,
				Cantidad:       item.Cantidad,
				PrecioUnitario: item.PrecioUnitario,
				Subtotal:       item.Cantidad.Mul(item.PrecioUnitario),
			}
			if err := saleRepo.CreateItem(linea); err != nil {
				return err
			}
			detalle = append(detalle, linea)
			if linea.EsCombo() {
				// Las líneas de combo no descuentan stock de ingredientes.
				continue
			}
			// Salida explícita de inventario por línea, misma transacción.
			// Sin stock suficiente: rollback de la venta completa.
			if _, err := inventory.RegisterInTx(
				movRepo, productRepo,
				linea.ProductoID, entity.MovementSalida, linea.Cantidad,
				entity.VentaRef(venta.ID), "", usuarioID, now,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toResponse(venta, detalle), nil
}

// GetSale obtiene la venta completa (cabecera + detalle con nombres resueltos).
func (uc *SaleUseCase) GetSale(ctx context.Context, ventaID string) (*dto.SaleResponse, error) {
	venta, err := uc.saleRepo.GetByID(ventaID)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.ItemsByVenta(ventaID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(venta, items), nil
}

// ListSales lista ventas con filtros de fecha y estado.
func (uc *SaleUseCase) ListSales(ctx context.Context, f repository.SaleFilter) ([]dto.SaleResponse, error) {
	if f.Estado != "" && !entity.ValidEstado(f.Estado) {
		return nil, domain.ErrInvalidInput
	}
	ventas, err := uc.saleRepo.List(f)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	out := make([]dto.SaleResponse, 0, len(ventas))
	for _, venta := range ventas {
		items, err := uc.saleRepo.ItemsByVenta(venta.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *uc.toResponse(venta, items))
	}
	return out, nil
}

// ChangeEstado cambia el estado de la venta. Solo metadatos; no revierte
// inventario (la corrección de stock es un ajuste manual aparte).
func (uc *SaleUseCase) ChangeEstado(ctx context.Context, ventaID, nuevoEstado string) error {
	if !entity.ValidEstado(nuevoEstado) {
		return domain.ErrInvalidInput
	}
	venta, err := uc.saleRepo.GetByID(ventaID)
	if err != nil {
		return err
	}
	if venta == nil {
		return domain.ErrNotFound
	}
	return uc.saleRepo.UpdateEstado(ventaID, nuevoEstado)
}

func (uc *SaleUseCase) toResponse(venta *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            venta.ID,
		ClienteID:     venta.ClienteID,
		NumeroFactura: venta.NumeroFactura,
		FechaVenta:    venta.FechaVenta,
		Subtotal:      venta.Subtotal,
		Descuento:     venta.Descuento,
		Total:         venta.Total,
		Estado:        venta.Estado,
		MetodoPago:    venta.MetodoPago,
		Observaciones: venta.Observaciones,
		VendedorID:    venta.UsuarioID,
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
	}
	if venta.ClienteID != "" {
		if cliente, _ := uc.customerRepo.GetByID(venta.ClienteID); cliente != nil {
			resp.ClienteNombre = cliente.Nombre
		}
	}
	for _, item := range items {
		ir := dto.SaleItemResponse{
			ID:             item.ID,
			ProductoID:     item.ProductoID,
			ComboID:        item.ComboID,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		}
		if item.ProductoID != "" {
			if producto, _ := uc.productRepo.GetByID(item.ProductoID); producto != nil {
				ir.ProductoCodigo = producto.Codigo
				ir.ProductoNombre = producto.Nombre
				ir.UnidadMedida = producto.UnidadMedida
			}
		}
		if item.ComboID != "" {
			if combo, _ := uc.comboRepo.GetByID(item.ComboID); combo != nil {
				ir.ComboNombre = combo.Nombre
			}
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
