package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el stock actual de un artículo en una bodega (agregado por
// empresa+artículo+bodega, clave única). Se crea perezosamente con el primer
// movimiento y solo lo muta el libro de movimientos.
type Stock struct {
	CompanyID       string
	ArticleID       string
	WarehouseID     string
	Quantity        decimal.Decimal // cantidad en mano, nunca negativa
	Reserved        decimal.Decimal // cantidad reservada, 0 <= Reserved <= Quantity
	MinThreshold    decimal.Decimal
	MaxThreshold    decimal.Decimal
	Aisle           string
	Shelf           string
	Level           string
	AverageUnitCost *decimal.Decimal // costo promedio ponderado; solo lo actualiza la recepción de compras
	UpdatedAt       time.Time
}

// Available devuelve la cantidad disponible: en mano menos reservada.
func (s *Stock) Available() decimal.Decimal {
	return s.Quantity.Sub(s.Reserved)
}

// NeedsReplenishment indica si la cantidad en mano cayó al mínimo.
// Solo tiene sentido cuando MinThreshold > 0.
func (s *Stock) NeedsReplenishment() bool {
	return s.MinThreshold.GreaterThan(decimal.Zero) && s.Quantity.LessThanOrEqual(s.MinThreshold)
}
