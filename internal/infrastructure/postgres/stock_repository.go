package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `company_id, article_id, warehouse_id, quantity, reserved,
	min_threshold, max_threshold, aisle, shelf, level, average_unit_cost, updated_at`

func scanStock(row interface{ Scan(...any) error }, s *entity.Stock) error {
	return row.Scan(
		&s.CompanyID, &s.ArticleID, &s.WarehouseID, &s.Quantity, &s.Reserved,
		&s.MinThreshold, &s.MaxThreshold, &s.Aisle, &s.Shelf, &s.Level,
		&s.AverageUnitCost, &s.UpdatedAt,
	)
}

func zeroStock(companyID, articleID, warehouseID string) *entity.Stock {
	return &entity.Stock{
		CompanyID:    companyID,
		ArticleID:    articleID,
		WarehouseID:  warehouseID,
		Quantity:     decimal.Zero,
		Reserved:     decimal.Zero,
		MinThreshold: decimal.Zero,
		MaxThreshold: decimal.Zero,
	}
}

// Get obtiene el agregado de stock; si no hay fila devuelve uno en cero
// (el agregado se crea perezosamente con el primer movimiento).
func (r *StockRepo) Get(ctx context.Context, companyID, articleID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE company_id = $1 AND article_id = $2 AND warehouse_id = $3`
	var s entity.Stock
	err := scanStock(r.q.QueryRow(ctx, query, companyID, articleID, warehouseID), &s)
	if err != nil {
		if isNoRows(err) {
			return zeroStock(companyID, articleID, warehouseID), nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el agregado y bloquea la fila (SELECT FOR UPDATE).
// FOR UPDATE sobre una fila inexistente no bloquea nada, así que el primer
// posting concurrente de un mismo (empresa, artículo, bodega) perdería
// escrituras: la fila se crea en cero dentro de la misma transacción y
// recién entonces se bloquea.
func (r *StockRepo) GetForUpdate(ctx context.Context, companyID, articleID, warehouseID string) (*entity.Stock, error) {
	ensure := `
		INSERT INTO stock (company_id, article_id, warehouse_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id, article_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, ensure, companyID, articleID, warehouseID); err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	query := `
		SELECT ` + stockColumns + `
		FROM stock WHERE company_id = $1 AND article_id = $2 AND warehouse_id = $3
		FOR UPDATE`
	var s entity.Stock
	if err := scanStock(r.q.QueryRow(ctx, query, companyID, articleID, warehouseID), &s); err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el agregado (por empresa, artículo y bodega).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (company_id, article_id, warehouse_id, quantity, reserved,
			min_threshold, max_threshold, aisle, shelf, level, average_unit_cost, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (company_id, article_id, warehouse_id)
		DO UPDATE SET quantity = EXCLUDED.quantity,
			reserved          = EXCLUDED.reserved,
			min_threshold     = EXCLUDED.min_threshold,
			max_threshold     = EXCLUDED.max_threshold,
			aisle             = EXCLUDED.aisle,
			shelf             = EXCLUDED.shelf,
			level             = EXCLUDED.level,
			average_unit_cost = EXCLUDED.average_unit_cost,
			updated_at        = now()`
	_, err := r.q.Exec(ctx, query,
		stock.CompanyID, stock.ArticleID, stock.WarehouseID, stock.Quantity, stock.Reserved,
		stock.MinThreshold, stock.MaxThreshold, stock.Aisle, stock.Shelf, stock.Level,
		stock.AverageUnitCost,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByWarehouse lista filas de stock de una bodega con datos del artículo.
// El texto de búsqueda llega ya normalizado (minúsculas, sin tildes); la
// comparación usa unaccent sobre SKU y nombre.
func (r *StockRepo) ListByWarehouse(ctx context.Context, companyID, warehouseID string, f repository.StockFilter) ([]*repository.StockRow, error) {
	query := `
		SELECT s.company_id, s.article_id, s.warehouse_id, s.quantity, s.reserved,
			s.min_threshold, s.max_threshold, s.aisle, s.shelf, s.level, s.average_unit_cost, s.updated_at,
			a.sku, a.name, a.list_price
		FROM stock s
		JOIN articles a ON a.id = s.article_id
		WHERE s.company_id = $1 AND s.warehouse_id = $2`
	args := []any{companyID, warehouseID}
	pos := 3
	if f.Search != "" {
		query += fmt.Sprintf(" AND (unaccent(lower(a.sku)) LIKE $%d OR unaccent(lower(a.name)) LIKE $%d)", pos, pos)
		args = append(args, "%"+f.Search+"%")
		pos++
	}
	if f.OnlyWithStock {
		query += " AND s.quantity <> 0"
	}
	if f.OnlyBelowMin {
		query += " AND s.min_threshold > 0 AND s.quantity <= s.min_threshold"
	}
	query += fmt.Sprintf(" ORDER BY a.name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	return r.queryRows(ctx, query, args...)
}

// ListBelowMin devuelve las filas con mínimo configurado y cantidad <= mínimo.
func (r *StockRepo) ListBelowMin(ctx context.Context, companyID string) ([]*repository.StockRow, error) {
	query := `
		SELECT s.company_id, s.article_id, s.warehouse_id, s.quantity, s.reserved,
			s.min_threshold, s.max_threshold, s.aisle, s.shelf, s.level, s.average_unit_cost, s.updated_at,
			a.sku, a.name, a.list_price
		FROM stock s
		JOIN articles a ON a.id = s.article_id
		WHERE s.company_id = $1 AND s.min_threshold > 0 AND s.quantity <= s.min_threshold
		ORDER BY a.name`
	return r.queryRows(ctx, query, companyID)
}

func (r *StockRepo) queryRows(ctx context.Context, query string, args ...any) ([]*repository.StockRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockRow
	for rows.Next() {
		var row repository.StockRow
		s := &row.Stock
		if err := rows.Scan(
			&s.CompanyID, &s.ArticleID, &s.WarehouseID, &s.Quantity, &s.Reserved,
			&s.MinThreshold, &s.MaxThreshold, &s.Aisle, &s.Shelf, &s.Level,
			&s.AverageUnitCost, &s.UpdatedAt,
			&row.SKU, &row.ArticleName, &row.ListPrice,
		); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// SummaryByArticle devuelve el rollup por artículo a través de todas las
// bodegas. El valor usa costo promedio cuando existe y precio de lista si no.
func (r *StockRepo) SummaryByArticle(ctx context.Context, companyID string) ([]*repository.ArticleSummaryRow, error) {
	query := `
		SELECT s.article_id, a.sku, a.name,
			COALESCE(SUM(s.quantity), 0) AS total_quantity,
			COALESCE(SUM(s.quantity * COALESCE(s.average_unit_cost, a.list_price)), 0) AS total_value,
			COUNT(*) AS warehouses
		FROM stock s
		JOIN articles a ON a.id = s.article_id
		WHERE s.company_id = $1
		GROUP BY s.article_id, a.sku, a.name
		ORDER BY a.name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	defer rows.Close()
	var list []*repository.ArticleSummaryRow
	for rows.Next() {
		var row repository.ArticleSummaryRow
		if err := rows.Scan(&row.ArticleID, &row.SKU, &row.ArticleName,
			&row.TotalQuantity, &row.TotalValue, &row.Warehouses); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// HasNonZero indica si la bodega tiene algún agregado con cantidad distinta de cero.
func (r *StockRepo) HasNonZero(ctx context.Context, companyID, warehouseID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stock
			 WHERE company_id = $1 AND warehouse_id = $2 AND quantity <> 0
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, companyID, warehouseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check stock in warehouse: %w", err)
	}
	return exists, nil
}
