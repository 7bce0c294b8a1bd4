package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferItem línea solicitada de un traslado.
type CreateTransferItem struct {
	ArticleID string          `json:"article_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	SourceWarehouseID      string               `json:"source_warehouse_id" validate:"required,uuid"`
	DestinationWarehouseID string               `json:"destination_warehouse_id" validate:"required,uuid"`
	Reason                 string               `json:"reason"`
	Notes                  string               `json:"notes"`
	Items                  []CreateTransferItem `json:"items" validate:"required,min=1"`
}

// ReceiveTransferLine cantidad recibida para una línea del traslado.
type ReceiveTransferLine struct {
	ItemID   string          `json:"item_id" validate:"required,uuid"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ReceiveTransferRequest body para POST /api/transfers/:id/receive.
type ReceiveTransferRequest struct {
	Lines []ReceiveTransferLine `json:"lines" validate:"required,min=1"`
}

// TransferItemResponse línea de traslado con derivados.
type TransferItemResponse struct {
	ID                string          `json:"id"`
	ArticleID         string          `json:"article_id"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
	QuantitySent      decimal.Decimal `json:"quantity_sent"`
	QuantityReceived  decimal.Decimal `json:"quantity_received"`
	QuantityPending   decimal.Decimal `json:"quantity_pending"`
	IsComplete        bool            `json:"is_complete"`
}

// TransferResponse salida de un traslado.
type TransferResponse struct {
	ID                     string                 `json:"id"`
	CompanyID              string                 `json:"company_id"`
	Number                 string                 `json:"number"`
	SourceWarehouseID      string                 `json:"source_warehouse_id"`
	DestinationWarehouseID string                 `json:"destination_warehouse_id"`
	Status                 string                 `json:"status"`
	Reason                 string                 `json:"reason,omitempty"`
	Notes                  string                 `json:"notes,omitempty"`
	RequestedBy            string                 `json:"requested_by"`
	RequestedAt            time.Time              `json:"requested_at"`
	SentBy                 string                 `json:"sent_by,omitempty"`
	SentAt                 *time.Time             `json:"sent_at,omitempty"`
	ReceivedBy             string                 `json:"received_by,omitempty"`
	ReceivedAt             *time.Time             `json:"received_at,omitempty"`
	Items                  []TransferItemResponse `json:"items"`
}

// TransferListResponse lista paginada de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
