package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntry         = "entry"
	MovementTypeExit          = "exit"
	MovementTypeTransferOut   = "transfer_out"
	MovementTypeTransferIn    = "transfer_in"
	MovementTypeAdjustmentPos = "adjustment_positive"
	MovementTypeAdjustmentNeg = "adjustment_negative"
	MovementTypeInitial       = "initial"
)

// Razones de movimiento.
const (
	MovementReasonPurchase       = "purchase"
	MovementReasonSale           = "sale"
	MovementReasonCustomerReturn = "customer_return"
	MovementReasonSupplierReturn = "supplier_return"
	MovementReasonTransfer       = "transfer"
	MovementReasonAdjustment     = "inventory_adjustment"
	MovementReasonBreakage       = "breakage"
	MovementReasonExpiry         = "expiry"
	MovementReasonInitial        = "initial"
	MovementReasonOther          = "other"
)

// IsOutbound indica si el tipo de movimiento descuenta stock.
func IsOutbound(movementType string) bool {
	switch movementType {
	case MovementTypeExit, MovementTypeTransferOut, MovementTypeAdjustmentNeg:
		return true
	}
	return false
}

// IsValidMovementType valida el tipo contra el catálogo de tipos.
func IsValidMovementType(movementType string) bool {
	switch movementType {
	case MovementTypeEntry, MovementTypeExit, MovementTypeTransferOut,
		MovementTypeTransferIn, MovementTypeAdjustmentPos,
		MovementTypeAdjustmentNeg, MovementTypeInitial:
		return true
	}
	return false
}

// IsValidMovementReason valida la razón contra el catálogo de razones.
func IsValidMovementReason(reason string) bool {
	switch reason {
	case MovementReasonPurchase, MovementReasonSale, MovementReasonCustomerReturn,
		MovementReasonSupplierReturn, MovementReasonTransfer, MovementReasonAdjustment,
		MovementReasonBreakage, MovementReasonExpiry, MovementReasonInitial,
		MovementReasonOther:
		return true
	}
	return false
}

// StockMovement representa una entrada inmutable del libro de movimientos.
// Invariante: QuantityAfter = QuantityBefore + Quantity, y QuantityAfter debe
// coincidir con Stock.Quantity inmediatamente después de escribir.
type StockMovement struct {
	ID                     string
	CompanyID              string
	ArticleID              string
	WarehouseID            string
	Type                   string
	Reason                 string
	Quantity               decimal.Decimal // con signo: positivo entradas, negativo salidas
	QuantityBefore         decimal.Decimal
	QuantityAfter          decimal.Decimal
	UnitPrice              *decimal.Decimal
	CounterpartWarehouseID *string // bodega contraparte en traslados
	RefType                string  // documento de negocio origen (transfer, invoice, receipt, ...)
	RefID                  string
	BatchLabel             string // etiqueta de lote libre, opcional
	CreatedAt              time.Time
	CreatedBy              string // UserID
}
