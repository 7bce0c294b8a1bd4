package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostMovementRequest body para POST /api/inventory/movements.
// Quantity es magnitud positiva; el libro aplica el signo según el tipo.
type PostMovementRequest struct {
	ArticleID              string           `json:"article_id" validate:"required,uuid"`
	WarehouseID            string           `json:"warehouse_id" validate:"required,uuid"`
	Type                   string           `json:"type" validate:"required"`
	Reason                 string           `json:"reason" validate:"required"`
	Quantity               decimal.Decimal  `json:"quantity"`
	UnitPrice              *decimal.Decimal `json:"unit_price,omitempty"`
	CounterpartWarehouseID *string          `json:"counterpart_warehouse_id,omitempty"`
	BatchLabel             string           `json:"batch_label,omitempty"`
	Notes                  string           `json:"notes,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID                     string           `json:"id"`
	ArticleID              string           `json:"article_id"`
	WarehouseID            string           `json:"warehouse_id"`
	Type                   string           `json:"type"`
	Reason                 string           `json:"reason"`
	Quantity               decimal.Decimal  `json:"quantity"`
	QuantityBefore         decimal.Decimal  `json:"quantity_before"`
	QuantityAfter          decimal.Decimal  `json:"quantity_after"`
	UnitPrice              *decimal.Decimal `json:"unit_price,omitempty"`
	CounterpartWarehouseID *string          `json:"counterpart_warehouse_id,omitempty"`
	RefType                string           `json:"ref_type,omitempty"`
	RefID                  string           `json:"ref_id,omitempty"`
	BatchLabel             string           `json:"batch_label,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
	CreatedBy              string           `json:"created_by"`
}

// MovementListResponse listado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// PurchaseReceiptLine línea de recepción de compra (entrada con costo).
type PurchaseReceiptLine struct {
	ArticleID string          `json:"article_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PurchaseReceiptRequest recepción de mercancía confirmada (integración compras).
type PurchaseReceiptRequest struct {
	WarehouseID string                `json:"warehouse_id" validate:"required,uuid"`
	RefType     string                `json:"ref_type"` // purchase_order, receipt
	RefID       string                `json:"ref_id"`
	Lines       []PurchaseReceiptLine `json:"lines" validate:"required,min=1"`
}

// SaleIssueLine línea de salida por venta.
type SaleIssueLine struct {
	ArticleID string          `json:"article_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// SaleIssueRequest salida por venta al finalizar remisión/tiquete/factura
// (integración ventas). Si alguna línea no tiene cobertura de stock, toda la
// operación falla.
type SaleIssueRequest struct {
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid"`
	RefType     string          `json:"ref_type"` // delivery_note, ticket, invoice
	RefID       string          `json:"ref_id"`
	Lines       []SaleIssueLine `json:"lines" validate:"required,min=1"`
}
