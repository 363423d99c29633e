package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

const resumenCacheTTL = 60 * time.Second

// QueryUseCase consultas de solo lectura sobre el libro de inventario:
// listados filtrados y paginados, stock vigente y resumen por tipo.
type QueryUseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	cache       ResumenCache
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(movRepo repository.MovementRepository, productRepo repository.ProductRepository, cache ResumenCache) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo, productRepo: productRepo, cache: cache}
}

// MovementFilters filtros del listado de movimientos. Hasta incluye el día
// completo de la fecha indicada.
type MovementFilters struct {
	Tipo       string
	ProductoID string
	Desde      *time.Time
	Hasta      *time.Time
}

func (f MovementFilters) toRepo() repository.MovementFilter {
	rf := repository.MovementFilter{
		Tipo:       f.Tipo,
		ProductoID: f.ProductoID,
		Desde:      f.Desde,
	}
	if f.Hasta != nil {
		h := finDeDia(*f.Hasta)
		rf.Hasta = &h
	}
	return rf
}

// finDeDia extiende una fecha al último instante de ese día, para que el
// filtro 'hasta' sea inclusivo del día completo.
func finDeDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// ListMovements retorna una página de movimientos (fecha descendente) más el
// total para los metadatos de paginación.
func (uc *QueryUseCase) ListMovements(ctx context.Context, f MovementFilters, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if f.Tipo != "" && !entity.ValidMovementType(f.Tipo) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	rf := f.toRepo()

	movs, err := uc.movRepo.List(rf, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	total, err := uc.movRepo.Count(rf)
	if err != nil {
		return nil, fmt.Errorf("contar movimientos: %w", err)
	}

	data := make([]dto.MovementResponse, 0, len(movs))
	productos := map[string]*entity.Product{}
	for _, m := range movs {
		data = append(data, uc.toResponse(m, productos))
	}
	return &dto.MovementListResponse{
		Data:       data,
		Pagination: dto.NewPageResponse(page.Page, page.Limit, total),
	}, nil
}

// ListByProduct retorna el historial paginado de movimientos de un producto
// (fecha descendente). Azúcar sintáctico sobre ListMovements con el filtro de
// producto fijado; un producto sin movimientos retorna la página vacía.
func (uc *QueryUseCase) ListByProduct(ctx context.Context, productoID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	if productoID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.ListMovements(ctx, MovementFilters{ProductoID: productoID}, page)
}

// GetMovement obtiene un movimiento por ID con datos del producto.
func (uc *QueryUseCase) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	resp := uc.toResponse(m, map[string]*entity.Product{})
	return &resp, nil
}

// GetStock retorna el stock vigente de un producto. La fila del producto es la
// autoridad del saldo (cada movimiento la deja igual a su saldo posterior).
func (uc *QueryUseCase) GetStock(ctx context.Context, productoID string) (*dto.StockResponse, error) {
	producto, err := uc.productRepo.GetByID(productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.StockResponse{
		ProductoID:     producto.ID,
		ProductoCodigo: producto.Codigo,
		ProductoNombre: producto.Nombre,
		StockActual:    producto.StockActual,
		StockMinimo:    producto.StockMinimo,
		UnidadMedida:   producto.UnidadMedida,
	}, nil
}

// Resumen agrega movimientos por tipo en un rango de fechas. El resultado se
// cachea unos segundos: el dashboard lo consulta en cada refresco.
func (uc *QueryUseCase) Resumen(ctx context.Context, desde, hasta *time.Time) ([]dto.ResumenMovimientoDTO, error) {
	key := resumenKey(desde, hasta)
	if cached, ok, err := uc.cache.GetResumen(ctx, key); err == nil && ok {
		return cached, nil
	}

	var h *time.Time
	if hasta != nil {
		fh := finDeDia(*hasta)
		h = &fh
	}
	rows, err := uc.movRepo.Resumen(desde, h)
	if err != nil {
		return nil, fmt.Errorf("resumen de movimientos: %w", err)
	}
	out := make([]dto.ResumenMovimientoDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ResumenMovimientoDTO{
			Tipo:             r.Tipo,
			TotalMovimientos: r.TotalMovimientos,
			TotalCantidad:    r.TotalCantidad,
		})
	}
	_ = uc.cache.SetResumen(ctx, key, out, resumenCacheTTL)
	return out, nil
}

func resumenKey(desde, hasta *time.Time) string {
	const layout = "2006-01-02"
	d, h := "", ""
	if desde != nil {
		d = desde.Format(layout)
	}
	if hasta != nil {
		h = hasta.Format(layout)
	}
	return "resumen:movimientos:" + d + ":" + h
}

// toResponse arma la respuesta de un movimiento; memoriza los productos ya
// resueltos para no repetir lecturas dentro de una misma página.
func (uc *QueryUseCase) toResponse(m *entity.InventoryMovement, productos map[string]*entity.Product) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:             m.ID,
		ProductoID:     m.ProductoID,
		Tipo:           m.Tipo,
		Cantidad:       m.Cantidad,
		SaldoAnterior:  m.SaldoAnterior,
		SaldoPosterior: m.SaldoPosterior,
		ReferenciaTipo: m.Referencia.Tipo,
		ReferenciaID:   m.Referencia.ID,
		Observaciones:  m.Observaciones,
		UsuarioID:      m.UsuarioID,
		Fecha:          m.Fecha,
	}
	p, ok := productos[m.ProductoID]
	if !ok {
		p, _ = uc.productRepo.GetByID(m.ProductoID)
		productos[m.ProductoID] = p
	}
	if p != nil {
		resp.ProductoCodigo = p.Codigo
		resp.ProductoNombre = p.Nombre
		resp.UnidadMedida = p.UnidadMedida
	}
	return resp
}
