package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario
// (multi-bodega). Code es único por empresa; a lo sumo una bodega puede ser
// IsPrimary por empresa.
type Warehouse struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Address   string
	IsPrimary bool
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
