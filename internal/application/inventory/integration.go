package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// RegisterPurchaseReceipt registra una recepción de compra confirmada: una
// entrada con costo por cada línea, en una sola transacción. El costo
// promedio ponderado del agregado se recalcula en cada línea.
func (uc *LedgerUseCase) RegisterPurchaseReceipt(ctx context.Context, companyID, userID string, in dto.PurchaseReceiptRequest) ([]dto.MovementResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidMovementQuantity
		}
		if line.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if err := uc.validateOwnership(ctx, companyID, line.ArticleID, in.WarehouseID); err != nil {
			return nil, err
		}
	}

	refType := in.RefType
	if refType == "" {
		refType = "purchase_receipt"
	}
	now := time.Now()
	posted := make([]dto.MovementResponse, 0, len(in.Lines))
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		for _, line := range in.Lines {
			unitPrice := line.UnitPrice
			movement, err := uc.PostInTx(ctx, movRepo, stockRepo, PostParams{
				CompanyID:   companyID,
				ArticleID:   line.ArticleID,
				WarehouseID: in.WarehouseID,
				Type:        entity.MovementTypeEntry,
				Reason:      entity.MovementReasonPurchase,
				Quantity:    line.Quantity,
				UnitPrice:   &unitPrice,
				RefType:     refType,
				RefID:       in.RefID,
				CreatedBy:   userID,
				At:          now,
			})
			if err != nil {
				return err
			}
			posted = append(posted, ToMovementResponse(movement))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}

// RegisterSaleIssue registra la salida de mercancía al finalizar una remisión,
// tiquete o factura directa. Comparte la verificación de cobertura del libro:
// si alguna línea no alcanza, toda la operación falla con ErrInsufficientStock
// y no se descuenta nada (sin stock parcial ni negativo).
func (uc *LedgerUseCase) RegisterSaleIssue(ctx context.Context, companyID, userID string, in dto.SaleIssueRequest) ([]dto.MovementResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidMovementQuantity
		}
		if err := uc.validateOwnership(ctx, companyID, line.ArticleID, in.WarehouseID); err != nil {
			return nil, err
		}
	}

	refType := in.RefType
	if refType == "" {
		refType = "sale"
	}
	now := time.Now()
	posted := make([]dto.MovementResponse, 0, len(in.Lines))
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		for _, line := range in.Lines {
			movement, err := uc.PostInTx(ctx, movRepo, stockRepo, PostParams{
				CompanyID:   companyID,
				ArticleID:   line.ArticleID,
				WarehouseID: in.WarehouseID,
				Type:        entity.MovementTypeExit,
				Reason:      entity.MovementReasonSale,
				Quantity:    line.Quantity,
				RefType:     refType,
				RefID:       in.RefID,
				CreatedBy:   userID,
				At:          now,
			})
			if err != nil {
				return err
			}
			posted = append(posted, ToMovementResponse(movement))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return posted, nil
}
