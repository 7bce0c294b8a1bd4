package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia para traslados entre
// bodegas y sus líneas.
type TransferRepository interface {
	// NextNumber incrementa y devuelve el consecutivo de traslados de la
	// empresa. Debe llamarse dentro de la misma transacción que el insert
	// para que no haya números duplicados bajo concurrencia.
	NextNumber(ctx context.Context, companyID string) (int64, error)
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Transfer, error)
	// GetByIDForUpdate bloquea la cabecera del traslado (SELECT FOR UPDATE)
	// para serializar transiciones concurrentes.
	GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.Transfer, error)
	Update(ctx context.Context, transfer *entity.Transfer) error
	UpdateItem(ctx context.Context, item *entity.TransferItem) error
	ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.Transfer, error)
	// HasOpen indica si la bodega participa en algún traslado no terminal.
	HasOpen(ctx context.Context, companyID, warehouseID string) (bool, error)
}
