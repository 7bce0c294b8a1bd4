package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ──────────────────────────────────────────────────────────────────────────────
// CostCalculator — costo promedio ponderado
// ──────────────────────────────────────────────────────────────────────────────

func TestCostCalculator_StockCeroUsaCostoEntrada(t *testing.T) {
	// Sin stock previo, el costo promedio es directamente el de la entrada.
	got := inventory.CostCalculator(decimal.Zero, decimal.Zero, d("10"), d("2500"))
	assert.True(t, got.Equal(d("2500")), "con stock 0 el costo debe ser el de entrada, fue %s", got)
}

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 100 uds a $10 + 50 uds a $16 → (1000 + 800) / 150 = $12
	got := inventory.CostCalculator(d("100"), d("10"), d("50"), d("16"))
	assert.True(t, got.Equal(d("12")), "promedio ponderado esperado 12, fue %s", got)
}

func TestCostCalculator_EntradaMasCaraSubePromedio(t *testing.T) {
	current := d("10")
	got := inventory.CostCalculator(d("10"), current, d("10"), d("20"))
	assert.True(t, got.GreaterThan(current), "una entrada más cara debe subir el promedio")
	assert.True(t, got.Equal(d("15")), "esperado 15, fue %s", got)
}

func TestCostCalculator_SumaCeroRetornaCero(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, d("10"), decimal.Zero, d("20"))
	assert.True(t, got.IsZero())
}

func TestCostCalculator_PreservaDecimales(t *testing.T) {
	// 3 uds a $1 + 1 ud a $2 → 5/4 = 1.25
	got := inventory.CostCalculator(d("3"), d("1"), d("1"), d("2"))
	assert.True(t, got.Equal(d("1.25")), "esperado 1.25, fue %s", got)
}

// ──────────────────────────────────────────────────────────────────────────────
// AlertSeverity / SeverityRank
// ──────────────────────────────────────────────────────────────────────────────

func TestAlertSeverity(t *testing.T) {
	cases := []struct {
		name     string
		onHand   string
		min      string
		expected string
	}{
		{"cantidad cero es critical", "0", "10", inventory.AlertSeverityCritical},
		{"cantidad negativa es critical", "-1", "10", inventory.AlertSeverityCritical},
		{"faltante de exactamente la mitad es high", "5", "10", inventory.AlertSeverityHigh},
		{"faltante mayor a la mitad es high", "2", "10", inventory.AlertSeverityHigh},
		{"faltante menor a la mitad es medium", "8", "10", inventory.AlertSeverityMedium},
		{"justo en el mínimo es medium", "10", "10", inventory.AlertSeverityMedium},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.AlertSeverity(d(tc.onHand), d(tc.min))
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSeverityRank_OrdenaDeUrgenteAMenosUrgente(t *testing.T) {
	assert.Less(t,
		inventory.SeverityRank(inventory.AlertSeverityCritical),
		inventory.SeverityRank(inventory.AlertSeverityHigh))
	assert.Less(t,
		inventory.SeverityRank(inventory.AlertSeverityHigh),
		inventory.SeverityRank(inventory.AlertSeverityMedium))
}

// ──────────────────────────────────────────────────────────────────────────────
// Valuation
// ──────────────────────────────────────────────────────────────────────────────

func TestValuation_UsaCostoPromedioSiExiste(t *testing.T) {
	avg := d("12.5")
	stock := &entity.Stock{Quantity: d("4"), AverageUnitCost: &avg}
	got := inventory.Valuation(stock, d("99"))
	assert.True(t, got.Equal(d("50")), "4 * 12.5 = 50, fue %s", got)
}

func TestValuation_SinCostoPromedioUsaPrecioLista(t *testing.T) {
	stock := &entity.Stock{Quantity: d("4")}
	got := inventory.Valuation(stock, d("10"))
	assert.True(t, got.Equal(d("40")), "respaldo por precio de lista: 4 * 10 = 40, fue %s", got)
}

func TestValuation_CostoPromedioCeroUsaPrecioLista(t *testing.T) {
	zero := decimal.Zero
	stock := &entity.Stock{Quantity: d("4"), AverageUnitCost: &zero}
	got := inventory.Valuation(stock, d("10"))
	assert.True(t, got.Equal(d("40")), "costo promedio 0 no debe valorar en cero")
}
