package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LedgerUseCase es el único mutador legítimo del agregado de stock: cada
// cambio de cantidad pasa por un posting transaccional (SELECT FOR UPDATE
// sobre la fila de stock + insert en stock_movements + update del agregado).
type LedgerUseCase struct {
	txRunner      TxRunner
	articleRepo   repository.ArticleRepository
	warehouseRepo repository.WarehouseRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	articleRepo repository.ArticleRepository,
	warehouseRepo repository.WarehouseRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:      txRunner,
		articleRepo:   articleRepo,
		warehouseRepo: warehouseRepo,
	}
}

// PostParams parámetros de un posting. Quantity es magnitud positiva; el
// libro aplica el signo según el tipo (salidas se guardan en negativo).
type PostParams struct {
	CompanyID              string
	ArticleID              string
	WarehouseID            string
	Type                   string
	Reason                 string
	Quantity               decimal.Decimal
	UnitPrice              *decimal.Decimal
	CounterpartWarehouseID *string
	RefType                string
	RefID                  string
	BatchLabel             string
	CreatedBy              string
	At                     time.Time
}

// PostInTx ejecuta un posting usando repositorios ya atados a la transacción
// del caller (patrón de integración: compras, ventas y traslados lo invocan
// dentro de su propia tx). Bloquea la fila de stock, verifica cobertura,
// toma los snapshots before/after y escribe movimiento + agregado.
func (uc *LedgerUseCase) PostInTx(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	p PostParams,
) (*entity.StockMovement, error) {
	if !entity.IsValidMovementType(p.Type) || !entity.IsValidMovementReason(p.Reason) {
		return nil, domain.ErrInvalidInput
	}
	if !p.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidMovementQuantity
	}
	if p.Type == entity.MovementTypeTransferOut &&
		(p.CounterpartWarehouseID == nil || *p.CounterpartWarehouseID == "") {
		return nil, domain.ErrInvalidInput
	}

	// Bloquea la fila de stock (SELECT FOR UPDATE); si no existe se crea en cero.
	stock, err := stockRepo.GetForUpdate(ctx, p.CompanyID, p.ArticleID, p.WarehouseID)
	if err != nil {
		return nil, err
	}

	signed := p.Quantity
	if entity.IsOutbound(p.Type) {
		if stock.Quantity.LessThan(p.Quantity) {
			return nil, domain.ErrInsufficientStock
		}
		signed = p.Quantity.Neg()
	}

	before := stock.Quantity
	after := before.Add(signed)

	// Costo promedio ponderado: solo en el camino de entrada con precio
	// (recepción de compras o carga inicial). Nunca en traslados ni ventas.
	if (p.Type == entity.MovementTypeEntry || p.Type == entity.MovementTypeInitial) && p.UnitPrice != nil {
		current := decimal.Zero
		if stock.AverageUnitCost != nil {
			current = *stock.AverageUnitCost
		}
		newCost := domaininv.CostCalculator(before, current, p.Quantity, *p.UnitPrice)
		stock.AverageUnitCost = &newCost
	}

	stock.Quantity = after
	if stock.Reserved.GreaterThan(stock.Quantity) {
		// Reserved <= Quantity debe sostenerse después de cada posting.
		stock.Reserved = stock.Quantity
	}
	stock.UpdatedAt = p.At
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return nil, err
	}

	movement := &entity.StockMovement{
		ID:                     uuid.New().String(),
		CompanyID:              p.CompanyID,
		ArticleID:              p.ArticleID,
		WarehouseID:            p.WarehouseID,
		Type:                   p.Type,
		Reason:                 p.Reason,
		Quantity:               signed,
		QuantityBefore:         before,
		QuantityAfter:          after,
		UnitPrice:              p.UnitPrice,
		CounterpartWarehouseID: p.CounterpartWarehouseID,
		RefType:                p.RefType,
		RefID:                  p.RefID,
		BatchLabel:             p.BatchLabel,
		CreatedAt:              p.At,
		CreatedBy:              p.CreatedBy,
	}
	if err := movRepo.Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// PostMovement registra un movimiento ad-hoc (POST /api/inventory/movements).
// Valida artículo y bodega contra la empresa del caller antes de abrir la tx.
func (uc *LedgerUseCase) PostMovement(ctx context.Context, companyID, userID string, in dto.PostMovementRequest) (*dto.MovementResponse, error) {
	if !entity.IsValidMovementType(in.Type) || !entity.IsValidMovementReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateOwnership(ctx, companyID, in.ArticleID, in.WarehouseID); err != nil {
		return nil, err
	}
	if in.CounterpartWarehouseID != nil && *in.CounterpartWarehouseID != "" {
		counterpart, err := uc.warehouseRepo.GetByID(ctx, *in.CounterpartWarehouseID)
		if err != nil {
			return nil, err
		}
		if counterpart == nil {
			return nil, domain.ErrNotFound
		}
		if counterpart.CompanyID != companyID {
			return nil, domain.ErrCrossTenantReference
		}
	}

	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		var err error
		movement, err = uc.PostInTx(ctx, movRepo, stockRepo, PostParams{
			CompanyID:              companyID,
			ArticleID:              in.ArticleID,
			WarehouseID:            in.WarehouseID,
			Type:                   in.Type,
			Reason:                 in.Reason,
			Quantity:               in.Quantity,
			UnitPrice:              in.UnitPrice,
			CounterpartWarehouseID: in.CounterpartWarehouseID,
			BatchLabel:             in.BatchLabel,
			CreatedBy:              userID,
			At:                     time.Now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := ToMovementResponse(movement)
	return &resp, nil
}

// AdjustInventory reconcilia el stock contra un conteo físico: por cada línea
// calcula el delta frente al agregado actual y registra un ajuste positivo o
// negativo (las líneas sin delta se saltan). Todas las líneas se confirman o
// se revierten juntas.
func (uc *LedgerUseCase) AdjustInventory(ctx context.Context, companyID, userID string, in dto.AdjustStockRequest) ([]dto.MovementResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	reason := in.Reason
	if reason == "" {
		reason = entity.MovementReasonAdjustment
	}
	if !entity.IsValidMovementReason(reason) {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.NewQuantity.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidMovementQuantity
		}
		if err := uc.validateOwnership(ctx, companyID, line.ArticleID, line.WarehouseID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	var posted []dto.MovementResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		for _, line := range in.Lines {
			stock, err := stockRepo.GetForUpdate(ctx, companyID, line.ArticleID, line.WarehouseID)
			if err != nil {
				return err
			}
			delta := line.NewQuantity.Sub(stock.Quantity)
			if delta.IsZero() {
				continue
			}
			movementType := entity.MovementTypeAdjustmentPos
			if delta.LessThan(decimal.Zero) {
				movementType = entity.MovementTypeAdjustmentNeg
			}
			movement, err := uc.PostInTx(ctx, movRepo, stockRepo, PostParams{
				CompanyID:   companyID,
				ArticleID:   line.ArticleID,
				WarehouseID: line.WarehouseID,
				Type:        movementType,
				Reason:      reason,
				Quantity:    delta.Abs(),
				RefType:     "inventory_count",
				BatchLabel:  in.Notes,
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

// validateOwnership verifica que artículo y bodega existan y pertenezcan a la
// empresa del caller (aislamiento por tenant, validado antes de escribir).
func (uc *LedgerUseCase) validateOwnership(ctx context.Context, companyID, articleID, warehouseID string) error {
	article, err := uc.articleRepo.GetByID(ctx, articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return domain.ErrNotFound
	}
	if article.CompanyID != companyID {
		return domain.ErrCrossTenantReference
	}
	warehouse, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	if warehouse.CompanyID != companyID {
		return domain.ErrCrossTenantReference
	}
	return nil
}

// ToMovementResponse mapea la entidad al DTO de salida.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                     m.ID,
		ArticleID:              m.ArticleID,
		WarehouseID:            m.WarehouseID,
		Type:                   m.Type,
		Reason:                 m.Reason,
		Quantity:               m.Quantity,
		QuantityBefore:         m.QuantityBefore,
		QuantityAfter:          m.QuantityAfter,
		UnitPrice:              m.UnitPrice,
		CounterpartWarehouseID: m.CounterpartWarehouseID,
		RefType:                m.RefType,
		RefID:                  m.RefID,
		BatchLabel:             m.BatchLabel,
		CreatedAt:              m.CreatedAt,
		CreatedBy:              m.CreatedBy,
	}
}
