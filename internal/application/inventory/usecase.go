package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comercio-api/internal/domain"
	"github.com/jhoicas/comercio-api/internal/domain/entity"
	"github.com/jhoicas/comercio-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma
// transaccional (entrada, salida, ajuste) con bloqueo de fila sobre el
// producto (SELECT FOR UPDATE) y Commit/Rollback.
//
// Es el único mutador legítimo de Product.StockActual: cada cambio de stock
// queda trazado a un asiento del libro con saldo anterior y posterior.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, productRepo: productRepo}
}

// MovementInput entrada para registrar un movimiento.
// Cantidad es magnitud positiva; para 'ajuste' es el nuevo saldo absoluto,
// no un delta (asimetría intencional frente a entrada/salida).
type MovementInput struct {
	ProductoID    string
	Tipo          string
	Cantidad      decimal.Decimal
	Referencia    entity.MovementRef // vacía = manual
	Observaciones string
	UsuarioID     string
}

// RegisterMovement valida la entrada, abre una transacción y registra el
// asiento junto con la actualización de stock. Retorna el movimiento
// persistido con los saldos resueltos.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.InventoryMovement, error) {
	if !entity.ValidMovementType(in.Tipo) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.UsuarioID == "" {
		return nil, domain.ErrInvalidInput
	}
	ref := in.Referencia
	if ref.Tipo == "" {
		ref = entity.ManualRef()
	}
	if !ref.Valid() {
		return nil, domain.ErrInvalidInput
	}

	// Existencia del producto: se valida antes de abrir la transacción para
	// cortar temprano; dentro de la tx se vuelve a leer con bloqueo de fila.
	producto, err := uc.productRepo.GetByID(in.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var mov *entity.InventoryMovement
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		var txErr error
		mov, txErr = RegisterInTx(movRepo, productRepo, in.ProductoID, in.Tipo, in.Cantidad, ref, in.Observaciones, in.UsuarioID, now)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterInTx registra un movimiento usando los repositorios del caller
// (misma transacción). Lo invocan las transacciones de compra (entrada por
// línea) y de venta (salida por línea); si retorna error, el caller debe
// dejar que su transacción haga rollback.
//
// Bloquea la fila del producto, toma su stock como saldo anterior, calcula el
// saldo posterior según el tipo, persiste el asiento y fija el stock del
// producto.
func RegisterInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productoID, tipo string,
	cantidad decimal.Decimal,
	ref entity.MovementRef,
	observaciones, usuarioID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	if !entity.ValidMovementType(tipo) || !cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// Bloquea la fila del producto: serializa lectura de saldo + asiento +
	// stock frente a transacciones concurrentes sobre el mismo producto.
	producto, err := productRepo.GetForUpdate(productoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	// El saldo vigente es el stock de la fila bloqueada. La fila es la
	// autoridad: el libro puede perder asientos (eliminación de una compra)
	// y el stock del producto sigue siendo el punto de partida correcto.
	saldoAnterior := producto.StockActual

	var saldoPosterior decimal.Decimal
	switch tipo {
	case entity.MovementEntrada:
		saldoPosterior = saldoAnterior.Add(cantidad)
	case entity.MovementSalida:
		if saldoAnterior.LessThan(cantidad) {
			return nil, domain.ErrInsufficientStock
		}
		saldoPosterior = saldoAnterior.Sub(cantidad)
	case entity.MovementAjuste:
		// La cantidad es el nuevo saldo absoluto.
		saldoPosterior = cantidad
	}

	mov := &entity.InventoryMovement{
		ProductoID:     productoID,
		Tipo:           tipo,
		Cantidad:       cantidad,
		SaldoAnterior:  saldoAnterior,
		SaldoPosterior: saldoPosterior,
		Referencia:     ref,
		Observaciones:  observaciones,
		UsuarioID:      usuarioID,
		Fecha:          now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStock(productoID, saldoPosterior); err != nil {
		return nil, err
	}
	return mov, nil
}
