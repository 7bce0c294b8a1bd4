package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos.
type MovementFilter struct {
	From   *time.Time
	To     *time.Time
	Type   string // vacío = todos
	Limit  int
	Offset int
}

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos (append-only; nunca se actualiza ni elimina una fila).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, companyID, id string) (*entity.StockMovement, error)
	ListByWarehouse(ctx context.Context, companyID, warehouseID string, f MovementFilter) ([]*entity.StockMovement, error)
	ListByArticle(ctx context.Context, companyID, articleID string, f MovementFilter) ([]*entity.StockMovement, error)
}
