package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TransferUseCase implementa la máquina de estados de traslados entre bodegas:
// pending → in_transit → completed, con cancelación desde pending o
// in_transit. Los movimientos de stock se registran a través del libro
// (inventory.LedgerUseCase) dentro de la misma transacción que el cambio de
// estado.
type TransferUseCase struct {
	txRunner      inventory.TxRunner
	ledger        *inventory.LedgerUseCase
	transferRepo  repository.TransferRepository
	warehouseRepo repository.WarehouseRepository
	articleRepo   repository.ArticleRepository
}

// NewTransferUseCase construye el caso de uso (transferRepo atado al pool,
// solo para lecturas; las mutaciones usan el repo atado a la tx).
func NewTransferUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.LedgerUseCase,
	transferRepo repository.TransferRepository,
	warehouseRepo repository.WarehouseRepository,
	articleRepo repository.ArticleRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		transferRepo:  transferRepo,
		warehouseRepo: warehouseRepo,
		articleRepo:   articleRepo,
	}
}

// Create crea un traslado en estado pending. Valida que origen y destino sean
// bodegas distintas de la misma empresa y que cada línea tenga cantidad
// positiva. El consecutivo se asigna dentro de la misma transacción que el
// insert para que no existan números duplicados bajo concurrencia.
func (uc *TransferUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.SourceWarehouseID == "" || in.DestinationWarehouseID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceWarehouseID == in.DestinationWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	source, err := uc.ownWarehouse(ctx, companyID, in.SourceWarehouseID)
	if err != nil {
		return nil, err
	}
	destination, err := uc.ownWarehouse(ctx, companyID, in.DestinationWarehouseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:                     uuid.New().String(),
		CompanyID:              companyID,
		SourceWarehouseID:      source.ID,
		DestinationWarehouseID: destination.ID,
		Status:                 entity.TransferStatusPending,
		Reason:                 in.Reason,
		Notes:                  in.Notes,
		RequestedBy:            userID,
		RequestedAt:            now,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	for _, item := range in.Items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidMovementQuantity
		}
		article, err := uc.articleRepo.GetByID(ctx, item.ArticleID)
		if err != nil {
			return nil, err
		}
		if article == nil {
			return nil, domain.ErrNotFound
		}
		if article.CompanyID != companyID {
			return nil, domain.ErrCrossTenantReference
		}
		transfer.Items = append(transfer.Items, &entity.TransferItem{
			ID:                uuid.New().String(),
			TransferID:        transfer.ID,
			ArticleID:         item.ArticleID,
			QuantityRequested: item.Quantity,
		})
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		_ repository.StockMovementRepository,
		_ repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		seq, err := transferRepo.NextNumber(ctx, companyID)
		if err != nil {
			return err
		}
		transfer.Number = fmt.Sprintf("TRANS-%06d", seq)
		return transferRepo.Create(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}
	resp := toTransferResponse(transfer)
	return &resp, nil
}

// Send transiciona pending → in_transit. Exige cobertura disponible
// (en mano − reservado) en la bodega origen para cada línea; si alguna falla,
// la operación entera se rechaza sin envío parcial. En éxito registra un
// transfer_out por línea y fija QuantitySent = QuantityRequested.
func (uc *TransferUseCase) Send(ctx context.Context, companyID, userID, transferID string) (*dto.TransferResponse, error) {
	var transfer *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		var err error
		transfer, err = uc.lockTransfer(ctx, transferRepo, companyID, transferID)
		if err != nil {
			return err
		}
		if transfer.Status != entity.TransferStatusPending {
			return domain.ErrInvalidTransition
		}

		// Cobertura disponible en origen antes de registrar nada (sin envío
		// parcial). Las líneas del mismo artículo se suman: dos líneas que
		// caben por separado no pueden exceder juntas el disponible. Las
		// filas quedan bloqueadas.
		required := make(map[string]decimal.Decimal, len(transfer.Items))
		articleOrder := make([]string, 0, len(transfer.Items))
		for _, item := range transfer.Items {
			if _, seen := required[item.ArticleID]; !seen {
				articleOrder = append(articleOrder, item.ArticleID)
			}
			required[item.ArticleID] = required[item.ArticleID].Add(item.QuantityRequested)
		}
		for _, articleID := range articleOrder {
			stock, err := stockRepo.GetForUpdate(ctx, companyID, articleID, transfer.SourceWarehouseID)
			if err != nil {
				return err
			}
			if stock.Available().LessThan(required[articleID]) {
				return domain.ErrInsufficientStock
			}
		}

		now := time.Now()
		for _, item := range transfer.Items {
			counterpart := transfer.DestinationWarehouseID
			_, err := uc.ledger.PostInTx(ctx, movRepo, stockRepo, inventory.PostParams{
				CompanyID:              companyID,
				ArticleID:              item.ArticleID,
				WarehouseID:            transfer.SourceWarehouseID,
				Type:                   entity.MovementTypeTransferOut,
				Reason:                 entity.MovementReasonTransfer,
				Quantity:               item.QuantityRequested,
				CounterpartWarehouseID: &counterpart,
				RefType:                "transfer",
				RefID:                  transfer.ID,
				CreatedBy:              userID,
				At:                     now,
			})
			if err != nil {
				return err
			}
			item.QuantitySent = item.QuantityRequested
			if err := transferRepo.UpdateItem(ctx, item); err != nil {
				return err
			}
		}

		transfer.Status = entity.TransferStatusInTransit
		transfer.SentBy = userID
		transfer.SentAt = &now
		transfer.UpdatedAt = now
		return transferRepo.Update(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}
	resp := toTransferResponse(transfer)
	return &resp, nil
}

// Receive registra cantidades recibidas por línea (pueden ser menores a lo
// enviado, p. ej. rotura en tránsito, pero nunca mayores). Por cada línea con
// cantidad > 0 registra un transfer_in en destino. Cuando todas las líneas
// quedan completas (recibido == enviado) transiciona a completed; si no, el
// traslado permanece in_transit.
func (uc *TransferUseCase) Receive(ctx context.Context, companyID, userID, transferID string, in dto.ReceiveTransferRequest) (*dto.TransferResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var transfer *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		var err error
		transfer, err = uc.lockTransfer(ctx, transferRepo, companyID, transferID)
		if err != nil {
			return err
		}
		if transfer.Status != entity.TransferStatusInTransit {
			return domain.ErrInvalidTransition
		}

		itemsByID := make(map[string]*entity.TransferItem, len(transfer.Items))
		for _, item := range transfer.Items {
			itemsByID[item.ID] = item
		}

		now := time.Now()
		for _, line := range in.Lines {
			item, ok := itemsByID[line.ItemID]
			if !ok {
				return domain.ErrNotFound
			}
			if line.Quantity.LessThan(decimal.Zero) {
				return domain.ErrInvalidMovementQuantity
			}
			if line.Quantity.IsZero() {
				continue
			}
			// 0 <= recibido <= enviado debe sostenerse después de cada paso.
			if item.QuantityReceived.Add(line.Quantity).GreaterThan(item.QuantitySent) {
				return domain.ErrInvalidMovementQuantity
			}
			counterpart := transfer.SourceWarehouseID
			_, err := uc.ledger.PostInTx(ctx, movRepo, stockRepo, inventory.PostParams{
				CompanyID:              companyID,
				ArticleID:              item.ArticleID,
				WarehouseID:            transfer.DestinationWarehouseID,
				Type:                   entity.MovementTypeTransferIn,
				Reason:                 entity.MovementReasonTransfer,
				Quantity:               line.Quantity,
				CounterpartWarehouseID: &counterpart,
				RefType:                "transfer",
				RefID:                  transfer.ID,
				CreatedBy:              userID,
				At:                     now,
			})
			if err != nil {
				return err
			}
			item.QuantityReceived = item.QuantityReceived.Add(line.Quantity)
			if err := transferRepo.UpdateItem(ctx, item); err != nil {
				return err
			}
		}

		complete := true
		for _, item := range transfer.Items {
			if !item.IsComplete() {
				complete = false
				break
			}
		}
		if complete {
			transfer.Status = entity.TransferStatusCompleted
			transfer.ReceivedBy = userID
			transfer.ReceivedAt = &now
		}
		transfer.UpdatedAt = now
		return transferRepo.Update(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}
	resp := toTransferResponse(transfer)
	return &resp, nil
}

// Cancel cancela desde pending (cambio de estado puro: no se movió stock) o
// desde in_transit (devuelve a origen el remanente no entregado con una
// entrada compensatoria por línea). Desde completed o cancelled falla.
func (uc *TransferUseCase) Cancel(ctx context.Context, companyID, userID, transferID string) (*dto.TransferResponse, error) {
	var transfer *entity.Transfer
	err := uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
	) error {
		var err error
		transfer, err = uc.lockTransfer(ctx, transferRepo, companyID, transferID)
		if err != nil {
			return err
		}
		if transfer.IsTerminal() {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		if transfer.Status == entity.TransferStatusInTransit {
			for _, item := range transfer.Items {
				remainder := item.QuantitySent.Sub(item.QuantityReceived)
				if !remainder.GreaterThan(decimal.Zero) {
					continue
				}
				counterpart := transfer.DestinationWarehouseID
				_, err := uc.ledger.PostInTx(ctx, movRepo, stockRepo, inventory.PostParams{
					CompanyID:              companyID,
					ArticleID:              item.ArticleID,
					WarehouseID:            transfer.SourceWarehouseID,
					Type:                   entity.MovementTypeEntry,
					Reason:                 entity.MovementReasonTransfer,
					Quantity:               remainder,
					CounterpartWarehouseID: &counterpart,
					RefType:                "transfer_cancel",
					RefID:                  transfer.ID,
					CreatedBy:              userID,
					At:                     now,
				})
				if err != nil {
					return err
				}
			}
		}

		transfer.Status = entity.TransferStatusCancelled
		transfer.UpdatedAt = now
		return transferRepo.Update(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}
	resp := toTransferResponse(transfer)
	return &resp, nil
}

// GetByID obtiene un traslado de la empresa con sus líneas.
func (uc *TransferUseCase) GetByID(ctx context.Context, companyID, transferID string) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(ctx, companyID, transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	resp := toTransferResponse(transfer)
	return &resp, nil
}

// List lista traslados de la empresa, filtrables por estado.
func (uc *TransferUseCase) List(ctx context.Context, companyID, status string, limit, offset int) (*dto.TransferListResponse, error) {
	list, err := uc.transferRepo.ListByCompany(ctx, companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, t := range list {
		items = append(items, toTransferResponse(t))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *TransferUseCase) lockTransfer(ctx context.Context, transferRepo repository.TransferRepository, companyID, transferID string) (*entity.Transfer, error) {
	transfer, err := transferRepo.GetByIDForUpdate(ctx, companyID, transferID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, domain.ErrNotFound
	}
	return transfer, nil
}

func (uc *TransferUseCase) ownWarehouse(ctx context.Context, companyID, warehouseID string) (*entity.Warehouse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return nil, domain.ErrCrossTenantReference
	}
	return warehouse, nil
}

func toTransferResponse(t *entity.Transfer) dto.TransferResponse {
	items := make([]dto.TransferItemResponse, 0, len(t.Items))
	for _, item := range t.Items {
		items = append(items, dto.TransferItemResponse{
			ID:                item.ID,
			ArticleID:         item.ArticleID,
			QuantityRequested: item.QuantityRequested,
			QuantitySent:      item.QuantitySent,
			QuantityReceived:  item.QuantityReceived,
			QuantityPending:   item.QuantityPending(),
			IsComplete:        item.IsComplete(),
		})
	}
	return dto.TransferResponse{
		ID:                     t.ID,
		CompanyID:              t.CompanyID,
		Number:                 t.Number,
		SourceWarehouseID:      t.SourceWarehouseID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		Status:                 t.Status,
		Reason:                 t.Reason,
		Notes:                  t.Notes,
		RequestedBy:            t.RequestedBy,
		RequestedAt:            t.RequestedAt,
		SentBy:                 t.SentBy,
		SentAt:                 t.SentAt,
		ReceivedBy:             t.ReceivedBy,
		ReceivedAt:             t.ReceivedAt,
		Items:                  items,
	}
}
