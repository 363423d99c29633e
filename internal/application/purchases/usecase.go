package purchases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/application/inventory"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// PurchaseUseCase transacciones de compra: crear (cabecera + detalle + una
// entrada de inventario por línea, todo en una transacción), cambiar estado,
// eliminar con reversión simétrica, y consultas.
type PurchaseUseCase struct {
	txRunner     TxRunner
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
	}
}

// CreatePurchase crea la compra y registra una entrada de inventario por cada
// línea, referenciando la compra. Cualquier fallo revierte todo: sin cabecera,
// sin detalle, sin movimientos, sin cambios de stock.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, usuarioID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.ProveedorID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if usuarioID == "" {
		return nil, domain.ErrInvalidInput
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.EstadoCompletada
	}
	if !entity.ValidEstado(estado) {
		return nil, domain.ErrInvalidInput
	}

	proveedor, err := uc.supplierRepo.GetByID(in.ProveedorID)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNotFound
	}

	// Validar productos y calcular totales antes de abrir la transacción.
	subtotal := decimal.Zero
	for _, item := range in.Items {
		if item.ProductoID == "" || !item.Cantidad.GreaterThan(decimal.Zero) || item.PrecioUnitario.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		producto, err := uc.productRepo.GetByID(item.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, fmt.Errorf("producto %s: %w", item.ProductoID, domain.ErrNotFound)
		}
		subtotal = subtotal.Add(item.Cantidad.Mul(item.PrecioUnitario))
	}
	total := subtotal // sin modelo de impuestos en esta versión

	now := time.Now()
	fechaCompra := now
	if in.FechaCompra != nil {
		fechaCompra = *in.FechaCompra
	}

	compra := &entity.Purchase{
		ID:            uuid.New().String(),
		ProveedorID:   in.ProveedorID,
		NumeroFactura: in.NumeroFactura,
		FechaCompra:   fechaCompra,
		Subtotal:      subtotal,
		Total:         total,
		Estado:        estado,
		Observaciones: in.Observaciones,
		UsuarioID:     usuarioID,
		CreatedAt:     now,
	}

	err = uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		if err := purchaseRepo.Create(compra); err != nil {
			return err
		}
		for _, item := range in.Items {
			detalle := &entity.PurchaseItem{
				CompraID:         compra.ID,
				ProductoID:       item.ProductoID,
				Cantidad:         item.Cantidad,
				PrecioUnitario:   item.PrecioUnitario,
				Subtotal:         item.Cantidad.Mul(item.PrecioUnitario),
				Lote:             item.Lote,
				FechaVencimiento: item.FechaVencimiento,
			}
			if err := purchaseRepo.CreateItem(detalle); err != nil {
				return err
			}
			// Entrada explícita de inventario por línea, misma transacción.
			if _, err := inventory.RegisterInTx(
				movRepo, productRepo,
				item.ProductoID, entity.MovementEntrada, item.Cantidad,
				entity.CompraRef(compra.ID), "", usuarioID, now,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := uc.toResponse(compra, nil)
	resp.ProveedorNombre = proveedor.Nombre
	return resp, nil
}

// ChangeEstado cambia el estado de la compra. Solo metadatos: no revierte
// movimientos de inventario.
func (uc *PurchaseUseCase) ChangeEstado(ctx context.Context, compraID, nuevoEstado string) error {
	if !entity.ValidEstado(nuevoEstado) {
		return domain.ErrInvalidInput
	}
	compra, err := uc.purchaseRepo.GetByID(compraID)
	if err != nil {
		return err
	}
	if compra == nil {
		return domain.ErrNotFound
	}
	return uc.purchaseRepo.UpdateEstado(compraID, nuevoEstado)
}

// DeletePurchase elimina la compra revirtiendo sus efectos de inventario en la
// misma transacción: por cada línea descuenta del stock lo que la entrada
// sumó, elimina los movimientos que referencian la compra, el detalle y la
// cabecera. Si el stock comprado ya se consumió, la reversión dejaría saldo
// negativo y la eliminación se rechaza con ErrInsufficientStock.
func (uc *PurchaseUseCase) DeletePurchase(ctx context.Context, compraID string) error {
	compra, err := uc.purchaseRepo.GetByID(compraID)
	if err != nil {
		return err
	}
	if compra == nil {
		return domain.ErrNotFound
	}

	return uc.txRunner.RunPurchase(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		items, err := purchaseRepo.ItemsByCompra(compraID)
		if err != nil {
			return err
		}

		// Cantidad total por producto; orden estable por ID de producto para
		// tomar los bloqueos de fila siempre en el mismo orden.
		porProducto := map[string]decimal.Decimal{}
		for _, item := range items {
			porProducto[item.ProductoID] = porProducto[item.ProductoID].Add(item.Cantidad)
		}
		productoIDs := make([]string, 0, len(porProducto))
		for id := range porProducto {
			productoIDs = append(productoIDs, id)
		}
		sort.Strings(productoIDs)

		for _, productoID := range productoIDs {
			producto, err := productRepo.GetForUpdate(productoID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrNotFound
			}
			nuevoStock := producto.StockActual.Sub(porProducto[productoID])
			if nuevoStock.IsNegative() {
				return domain.ErrInsufficientStock
			}
			if err := productRepo.UpdateStock(productoID, nuevoStock); err != nil {
				return err
			}
		}

		if err := movRepo.DeleteByRef(entity.CompraRef(compraID)); err != nil {
			return err
		}
		if err := purchaseRepo.DeleteItems(compraID); err != nil {
			return err
		}
		return purchaseRepo.Delete(compraID)
	})
}

// GetPurchase obtiene una compra con su detalle, enriquecido con datos de
// producto y proveedor.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, compraID string) (*dto.PurchaseResponse, error) {
	compra, err := uc.purchaseRepo.GetByID(compraID)
	if err != nil {
		return nil, err
	}
	if compra == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.purchaseRepo.ItemsByCompra(compraID)
	if err != nil {
		return nil, err
	}
	resp := uc.toResponse(compra, items)
	if proveedor, _ := uc.supplierRepo.GetByID(compra.ProveedorID); proveedor != nil {
		resp.ProveedorNombre = proveedor.Nombre
	}
	return resp, nil
}

// ListPurchases lista compras con filtros de proveedor, estado y rango de fechas.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, f repository.PurchaseFilter) ([]dto.PurchaseResponse, error) {
	if f.Estado != "" && !entity.ValidEstado(f.Estado) {
		return nil, domain.ErrInvalidInput
	}
	compras, err := uc.purchaseRepo.List(f)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	out := make([]dto.PurchaseResponse, 0, len(compras))
	for _, compra := range compras {
		items, err := uc.purchaseRepo.ItemsByCompra(compra.ID)
		if err != nil {
			return nil, err
		}
		resp := uc.toResponse(compra, items)
		if proveedor, _ := uc.supplierRepo.GetByID(compra.ProveedorID); proveedor != nil {
			resp.ProveedorNombre = proveedor.Nombre
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (uc *PurchaseUseCase) toResponse(compra *entity.Purchase, items []*entity.PurchaseItem) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:            compra.ID,
		ProveedorID:   compra.ProveedorID,
		NumeroFactura: compra.NumeroFactura,
		FechaCompra:   compra.FechaCompra,
		Subtotal:      compra.Subtotal,
		Total:         compra.Total,
		Estado:        compra.Estado,
		Observaciones: compra.Observaciones,
	}
	for _, item := range items {
		ir := dto.PurchaseItemResponse{
			ID:               item.ID,
			ProductoID:       item.ProductoID,
			Cantidad:         item.Cantidad,
			PrecioUnitario:   item.PrecioUnitario,
			Subtotal:         item.Subtotal,
			Lote:             item.Lote,
			FechaVencimiento: item.FechaVencimiento,
		}
		if producto, _ := uc.productRepo.GetByID(item.ProductoID); producto != nil {
			ir.ProductoNombre = producto.Nombre
			ir.UnidadMedida = producto.UnidadMedida
		}
		resp.Items = append(resp.Items, ir)
	}
	return resp
}
