package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Combo agrupación de productos que se vende como una unidad con precio propio.
// Una línea de venta puede referenciar un combo; en ese caso no se descuenta
// stock de los ingredientes.
type Combo struct {
	ID           string
	Nombre       string
	Descripcion  string
	Precio       decimal.Decimal
	Ingredientes []ComboIngrediente
	CreatedAt    time.Time
}

// ComboIngrediente producto y cantidad que componen un combo.
type ComboIngrediente struct {
	ID         string
	ComboID    string
	ProductoID string
	Cantidad   decimal.Decimal
}
