package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Article representa un artículo del catálogo (referencia externa para el
// motor de inventario; aquí solo se necesita identidad, precio de lista y
// estado).
type Article struct {
	ID        string
	CompanyID string
	SKU       string
	Name      string
	ListPrice decimal.Decimal // precio de lista; respaldo para valoración si no hay costo promedio
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
