package entity

import "time"

// Supplier proveedor al que se le compran productos.
type Supplier struct {
	ID        string
	Nombre    string
	NIT       string
	Telefono  string
	Direccion string
	Activo    bool
	CreatedAt time.Time
}

// Customer cliente de ventas. Las ventas admiten cliente no identificado.
type Customer struct {
	ID        string
	Nombre    string
	NitCI     string
	Telefono  string
	Activo    bool
	CreatedAt time.Time
}
