package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas. Hace cumplir la invariante
// de bodega principal única por empresa y bloquea la eliminación mientras la
// bodega tenga stock o traslados abiertos.
type WarehouseUseCase struct {
	repo         repository.WarehouseRepository
	stockRepo    repository.StockRepository
	transferRepo repository.TransferRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(
	repo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo, stockRepo: stockRepo, transferRepo: transferRepo}
}

// Create crea una nueva bodega. Code único por empresa; si IsPrimary, no
// puede existir otra bodega principal.
func (uc *WarehouseUseCase) Create(ctx context.Context, companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, companyID, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.IsPrimary {
		primary, err := uc.repo.GetPrimary(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if primary != nil {
			return nil, domain.ErrDuplicatePrimaryWarehouse
		}
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Code:      in.Code,
		Name:      in.Name,
		Address:   in.Address,
		IsPrimary: in.IsPrimary,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega de la empresa por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.ownWarehouse(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza una bodega. Marcar IsPrimary falla si otra bodega de la
// empresa ya es principal.
func (uc *WarehouseUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.ownWarehouse(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.IsPrimary != nil && *in.IsPrimary && !warehouse.IsPrimary {
		primary, err := uc.repo.GetPrimary(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if primary != nil && primary.ID != warehouse.ID {
			return nil, domain.ErrDuplicatePrimaryWarehouse
		}
	}
	if in.Name != nil {
		warehouse.Name = *in.Name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	if in.IsPrimary != nil {
		warehouse.IsPrimary = *in.IsPrimary
	}
	if in.Active != nil {
		warehouse.Active = *in.Active
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas por empresa con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, companyID string, limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una bodega. Se rechaza mientras exista stock distinto de
// cero o algún traslado no terminal que la referencie.
func (uc *WarehouseUseCase) Delete(ctx context.Context, companyID, id string) error {
	warehouse, err := uc.ownWarehouse(ctx, companyID, id)
	if err != nil {
		return err
	}
	hasStock, err := uc.stockRepo.HasNonZero(ctx, companyID, warehouse.ID)
	if err != nil {
		return err
	}
	if hasStock {
		return domain.ErrWarehouseInUse
	}
	hasOpen, err := uc.transferRepo.HasOpen(ctx, companyID, warehouse.ID)
	if err != nil {
		return err
	}
	if hasOpen {
		return domain.ErrWarehouseInUse
	}
	return uc.repo.Delete(ctx, warehouse.ID)
}

func (uc *WarehouseUseCase) ownWarehouse(ctx context.Context, companyID, id string) (*entity.Warehouse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return warehouse, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		CompanyID: w.CompanyID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		IsPrimary: w.IsPrimary,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
