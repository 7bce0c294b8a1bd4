package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado entre bodegas.
const (
	TransferStatusPending   = "pending"
	TransferStatusInTransit = "in_transit"
	TransferStatusCompleted = "completed"
	TransferStatusCancelled = "cancelled"
)

// Transfer representa un traslado de mercancía entre dos bodegas de la misma
// empresa. Number es secuencial por empresa (TRANS-000001). Nunca se elimina;
// la cancelación es un estado terminal.
type Transfer struct {
	ID                     string
	CompanyID              string
	Number                 string
	SourceWarehouseID      string
	DestinationWarehouseID string
	Status                 string
	Reason                 string
	Notes                  string
	RequestedBy            string
	RequestedAt            time.Time
	SentBy                 string
	SentAt                 *time.Time
	ReceivedBy             string
	ReceivedAt             *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
	Items                  []*TransferItem
}

// IsTerminal indica si el traslado ya no admite transiciones.
func (t *Transfer) IsTerminal() bool {
	return t.Status == TransferStatusCompleted || t.Status == TransferStatusCancelled
}

// TransferItem es una línea de traslado. Invariantes:
// 0 <= QuantitySent <= QuantityRequested y 0 <= QuantityReceived <= QuantitySent.
type TransferItem struct {
	ID                string
	TransferID        string
	ArticleID         string
	QuantityRequested decimal.Decimal
	QuantitySent      decimal.Decimal
	QuantityReceived  decimal.Decimal
}

// QuantityPending devuelve lo solicitado aún no enviado.
func (i *TransferItem) QuantityPending() decimal.Decimal {
	return i.QuantityRequested.Sub(i.QuantitySent)
}

// IsComplete indica si todo lo enviado fue recibido.
func (i *TransferItem) IsComplete() bool {
	return i.QuantitySent.Equal(i.QuantityReceived)
}
