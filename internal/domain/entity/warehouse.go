package entity

import "time"

// Warehouse representa una bodega física donde se almacena inventario.
type Warehouse struct {
	ID        string
	Name      string // único
	Location  string
	Capacity  int
	Manager   string // encargado responsable
	CreatedAt time.Time
	UpdatedAt time.Time
}
