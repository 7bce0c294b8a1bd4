package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// StockFilter filtros para listar stock de una bodega.
type StockFilter struct {
	Search        string // texto ya normalizado (sin tildes, minúsculas) contra SKU y nombre
	OnlyWithStock bool
	OnlyBelowMin  bool
	Limit         int
	Offset        int
}

// StockRow agregado de stock enriquecido con datos del artículo para listados.
type StockRow struct {
	Stock       entity.Stock
	SKU         string
	ArticleName string
	ListPrice   decimal.Decimal
}

// ArticleSummaryRow rollup por artículo a través de todas las bodegas.
type ArticleSummaryRow struct {
	ArticleID     string
	SKU           string
	ArticleName   string
	TotalQuantity decimal.Decimal
	TotalValue    decimal.Decimal // cantidad * (costo promedio o precio de lista)
	Warehouses    int64           // bodegas con fila de stock para el artículo
}

// StockRepository define el puerto para consultar/actualizar el agregado de
// stock por empresa+artículo+bodega. Las escrituras ocurren solo dentro de
// transacciones del libro de movimientos.
type StockRepository interface {
	// Get devuelve el agregado; si no existe fila, devuelve uno en cero (creación perezosa).
	Get(ctx context.Context, companyID, articleID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, companyID, articleID, warehouseID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	ListByWarehouse(ctx context.Context, companyID, warehouseID string, f StockFilter) ([]*StockRow, error)
	// ListBelowMin devuelve las filas con mínimo configurado y cantidad en mano <= mínimo.
	ListBelowMin(ctx context.Context, companyID string) ([]*StockRow, error)
	SummaryByArticle(ctx context.Context, companyID string) ([]*ArticleSummaryRow, error)
	// HasNonZero indica si la bodega tiene algún agregado con cantidad distinta de cero.
	HasNonZero(ctx context.Context, companyID, warehouseID string) (bool, error)
}
