package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y consulta; nunca hay UPDATE ni DELETE
// sobre stock_movements.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, company_id, article_id, warehouse_id, type, reason,
	quantity, quantity_before, quantity_after, unit_price, counterpart_warehouse_id,
	ref_type, ref_id, batch_label, created_at, created_by`

// Create persiste una entrada del libro de movimientos.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.CompanyID, movement.ArticleID, movement.WarehouseID,
		movement.Type, movement.Reason, movement.Quantity, movement.QuantityBefore,
		movement.QuantityAfter, movement.UnitPrice, movement.CounterpartWarehouseID,
		movement.RefType, movement.RefID, movement.BatchLabel,
		movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID dentro de la empresa.
func (r *StockMovementRepo) GetByID(ctx context.Context, companyID, id string) (*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE company_id = $1 AND id = $2`
	var m entity.StockMovement
	var createdBy *string
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&m.ID, &m.CompanyID, &m.ArticleID, &m.WarehouseID, &m.Type, &m.Reason,
		&m.Quantity, &m.QuantityBefore, &m.QuantityAfter, &m.UnitPrice,
		&m.CounterpartWarehouseID, &m.RefType, &m.RefID, &m.BatchLabel,
		&m.CreatedAt, &createdBy,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

// ListByWarehouse lista movimientos de una bodega, filtrables por rango de
// fechas y tipo.
func (r *StockMovementRepo) ListByWarehouse(ctx context.Context, companyID, warehouseID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE company_id = $1 AND warehouse_id = $2`
	return r.list(ctx, query, []any{companyID, warehouseID}, f)
}

// ListByArticle lista movimientos de un artículo en todas las bodegas.
func (r *StockMovementRepo) ListByArticle(ctx context.Context, companyID, articleID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE company_id = $1 AND article_id = $2`
	return r.list(ctx, query, []any{companyID, articleID}, f)
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args []any, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	pos := len(args) + 1
	if f.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	if f.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.ArticleID, &m.WarehouseID, &m.Type, &m.Reason,
			&m.Quantity, &m.QuantityBefore, &m.QuantityAfter, &m.UnitPrice,
			&m.CounterpartWarehouseID, &m.RefType, &m.RefID, &m.BatchLabel,
			&m.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
