package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados en ventas.
const (
	PagoEfectivo      = "EFECTIVO"
	PagoTarjeta       = "TARJETA"
	PagoTransferencia = "TRANSFERENCIA"
	PagoQR            = "QR"
)

// Sale cabecera de una venta.
type Sale struct {
	ID            string
	ClienteID     string // vacío = cliente no identificado
	NumeroFactura string
	FechaVenta    time.Time
	Subtotal      decimal.Decimal
	Descuento     decimal.Decimal
	Total         decimal.Decimal // Subtotal − Descuento
	Estado        string
	MetodoPago    string
	Observaciones string
	UsuarioID     string
	CreatedAt     time.Time
}

// SaleItem línea de detalle de una venta. Variante etiquetada:
//   - línea de producto concreto: ProductoID con valor, genera movimiento 'salida';
//   - línea de combo: ComboID con valor y ProductoID vacío, no genera movimiento
//     (los ingredientes no se descuentan; el combo se vende como unidad).
type SaleItem struct {
	ID             string
	VentaID        string
	ProductoID     string
	ComboID        string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// EsCombo indica si la línea vende un combo en vez de un producto concreto.
func (i *SaleItem) EsCombo() bool {
	return i.ComboID != "" && i.ProductoID == ""
}
