package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/comercio-api/internal/application/dto"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el libro de inventario:
// asiento y actualización de stock se confirman juntos o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// ResumenCache cache de corta vida para el resumen de movimientos.
// La implementación Redis es opcional; sin configurar se usa una Noop.
type ResumenCache interface {
	GetResumen(ctx context.Context, key string) ([]dto.ResumenMovimientoDTO, bool, error)
	SetResumen(ctx context.Context, key string, value []dto.ResumenMovimientoDTO, ttl time.Duration) error
}
