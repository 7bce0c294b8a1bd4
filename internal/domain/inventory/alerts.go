package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Severidades de alerta de stock bajo.
const (
	AlertSeverityCritical = "critical"
	AlertSeverityHigh     = "high"
	AlertSeverityMedium   = "medium"
)

// AlertSeverity clasifica un agregado bajo mínimo:
// critical si la cantidad en mano es cero; high si el faltante
// (mínimo - en mano) es al menos el 50% del mínimo; medium en el resto.
func AlertSeverity(quantityOnHand, minThreshold decimal.Decimal) string {
	if quantityOnHand.LessThanOrEqual(decimal.Zero) {
		return AlertSeverityCritical
	}
	shortfall := minThreshold.Sub(quantityOnHand)
	half := minThreshold.Div(decimal.NewFromInt(2))
	if shortfall.GreaterThanOrEqual(half) {
		return AlertSeverityHigh
	}
	return AlertSeverityMedium
}

// SeverityRank ordena severidades (menor = más urgente).
func SeverityRank(severity string) int {
	switch severity {
	case AlertSeverityCritical:
		return 0
	case AlertSeverityHigh:
		return 1
	default:
		return 2
	}
}

// Valuation calcula el valor del stock: cantidad en mano por costo promedio,
// o por precio de lista del artículo si aún no hay costo promedio.
func Valuation(stock *entity.Stock, listPrice decimal.Decimal) decimal.Decimal {
	unit := listPrice
	if stock.AverageUnitCost != nil && !stock.AverageUnitCost.IsZero() {
		unit = *stock.AverageUnitCost
	}
	return stock.Quantity.Mul(unit)
}
