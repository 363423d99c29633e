package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementEntrada = "entrada" // suma al saldo
	MovementSalida  = "salida"  // resta del saldo, nunca por debajo de cero
	MovementAjuste  = "ajuste"  // la cantidad ES el nuevo saldo absoluto
)

// ValidMovementType valida el tipo de movimiento.
func ValidMovementType(t string) bool {
	return t == MovementEntrada || t == MovementSalida || t == MovementAjuste
}

// Origen de un movimiento: compra, venta o registro manual.
// Conjunto cerrado; se persiste como par (referencia_tipo, referencia_id).
const (
	RefCompra = "compra"
	RefVenta  = "venta"
	RefManual = "manual"
)

// MovementRef referencia polimórfica al documento que originó el movimiento.
// Para RefManual el ID queda vacío.
type MovementRef struct {
	Tipo string
	ID   string
}

// CompraRef referencia a una compra.
func CompraRef(compraID string) MovementRef { return MovementRef{Tipo: RefCompra, ID: compraID} }

// VentaRef referencia a una venta.
func VentaRef(ventaID string) MovementRef { return MovementRef{Tipo: RefVenta, ID: ventaID} }

// ManualRef movimiento registrado a mano (ajustes, correcciones).
func ManualRef() MovementRef { return MovementRef{Tipo: RefManual} }

// Valid verifica que el tipo de referencia pertenezca al conjunto cerrado
// y que las referencias a documentos lleven ID.
func (r MovementRef) Valid() bool {
	switch r.Tipo {
	case RefCompra, RefVenta:
		return r.ID != ""
	case RefManual:
		return true
	}
	return false
}

// InventoryMovement representa un asiento del libro de inventario.
// Append-only: nunca se actualiza; solo desaparece si se elimina el documento
// (compra/venta) que lo originó.
//
// SaldoAnterior es el stock vigente del producto (fila bloqueada) al momento
// del asiento. Mientras no se eliminen documentos, coincide con el
// SaldoPosterior del asiento previo del mismo producto; tras eliminar una
// compra, el siguiente asiento arranca del stock ya revertido.
type InventoryMovement struct {
	ID             string
	ProductoID     string
	Tipo           string
	Cantidad       decimal.Decimal // magnitud, siempre positiva; el signo lo da Tipo
	SaldoAnterior  decimal.Decimal
	SaldoPosterior decimal.Decimal
	Referencia     MovementRef
	Observaciones  string
	UsuarioID      string
	Fecha          time.Time
}
