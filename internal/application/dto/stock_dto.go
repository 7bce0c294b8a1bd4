package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItemResponse una fila de stock de una bodega con campos derivados.
type StockItemResponse struct {
	ArticleID          string           `json:"article_id"`
	SKU                string           `json:"sku"`
	ArticleName        string           `json:"article_name"`
	WarehouseID        string           `json:"warehouse_id"`
	QuantityOnHand     decimal.Decimal  `json:"quantity_on_hand"`
	QuantityReserved   decimal.Decimal  `json:"quantity_reserved"`
	Available          decimal.Decimal  `json:"available"`
	MinThreshold       decimal.Decimal  `json:"min_threshold"`
	MaxThreshold       decimal.Decimal  `json:"max_threshold"`
	Aisle              string           `json:"aisle,omitempty"`
	Shelf              string           `json:"shelf,omitempty"`
	Level              string           `json:"level,omitempty"`
	AverageUnitCost    *decimal.Decimal `json:"average_unit_cost,omitempty"`
	Valuation          decimal.Decimal  `json:"valuation"`
	NeedsReplenishment bool             `json:"needs_replenishment"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// WarehouseStockResponse listado de stock de una bodega.
type WarehouseStockResponse struct {
	Items []StockItemResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// StockSummaryRow rollup por artículo a través de todas las bodegas.
type StockSummaryRow struct {
	ArticleID     string          `json:"article_id"`
	SKU           string          `json:"sku"`
	ArticleName   string          `json:"article_name"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Warehouses    int64           `json:"warehouses"`
}

// StockSummaryResponse respuesta de /stock/summary.
type StockSummaryResponse struct {
	Items      []StockSummaryRow `json:"items"`
	TotalValue decimal.Decimal   `json:"total_value"`
}

// StockAlertDTO alerta de stock bajo (proyección de lectura, no se persiste).
type StockAlertDTO struct {
	ArticleID      string          `json:"article_id"`
	SKU            string          `json:"sku"`
	ArticleName    string          `json:"article_name"`
	WarehouseID    string          `json:"warehouse_id"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	MinThreshold   decimal.Decimal `json:"min_threshold"`
	Shortfall      decimal.Decimal `json:"shortfall"`
	Severity       string          `json:"severity"` // critical, high, medium
}

// AdjustStockLine línea de reconciliación: cantidad contada físicamente.
type AdjustStockLine struct {
	ArticleID   string          `json:"article_id" validate:"required,uuid"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
}

// AdjustStockRequest body para POST /api/stock/adjust (conteo físico).
type AdjustStockRequest struct {
	Lines  []AdjustStockLine `json:"lines" validate:"required,min=1"`
	Reason string            `json:"reason"` // por defecto inventory_adjustment
	Notes  string            `json:"notes"`
}

// UpdateStockSettingsRequest umbrales y ubicación física de un agregado.
type UpdateStockSettingsRequest struct {
	MinThreshold *decimal.Decimal `json:"min_threshold"`
	MaxThreshold *decimal.Decimal `json:"max_threshold"`
	Aisle        *string          `json:"aisle"`
	Shelf        *string          `json:"shelf"`
	Level        *string          `json:"level"`
}
