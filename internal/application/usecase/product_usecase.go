package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
	"github.com/jhoicas/comercio-api/pkg/textutil"
)

// ProductUseCase registro de productos: alta, consulta y búsqueda.
// El stock de arranque se fija aquí; después del primer movimiento solo el
// registrador de movimientos muta stock_actual.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create da de alta un producto. Código duplicado retorna ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, usuarioID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Codigo == "" || in.Nombre == "" || in.UnidadMedida == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.StockActual.IsNegative() || in.StockMinimo.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetByCodigo(in.Codigo)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	producto := &entity.Product{
		ID:            uuid.New().String(),
		Codigo:        in.Codigo,
		Nombre:        in.Nombre,
		Descripcion:   in.Descripcion,
		Categoria:     in.Categoria,
		UnidadMedida:  in.UnidadMedida,
		StockActual:   in.StockActual,
		StockMinimo:   in.StockMinimo,
		CostoUnitario: in.CostoUnitario,
		PrecioVenta:   in.PrecioVenta,
		Activo:        true,
		CreadoPor:     usuarioID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(producto); err != nil {
		return nil, err
	}
	return toProductResponse(producto), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	producto, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(producto), nil
}

// List lista productos; con termino no vacío busca por nombre ignorando
// tildes y mayúsculas ("café" encuentra "Cafe Molido").
func (uc *ProductUseCase) List(ctx context.Context, termino string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	var (
		productos []*entity.Product
		err       error
	)
	if termino != "" {
		productos, err = uc.productRepo.SearchByNombre(textutil.Normalize(termino), page.Limit, page.Offset())
	} else {
		productos, err = uc.productRepo.List(page.Limit, page.Offset())
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(productos))
	for _, p := range productos {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Codigo:        p.Codigo,
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		Categoria:     p.Categoria,
		UnidadMedida:  p.UnidadMedida,
		StockActual:   p.StockActual,
		StockMinimo:   p.StockMinimo,
		CostoUnitario: p.CostoUnitario,
		PrecioVenta:   p.PrecioVenta,
		Activo:        p.Activo,
		CreatedAt:     p.CreatedAt,
	}
}
