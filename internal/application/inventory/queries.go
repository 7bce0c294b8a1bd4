package inventory

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	domaininv "github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockUseCase consultas de lectura sobre el agregado de stock (listados,
// rollup, alertas) y ajustes de umbrales/ubicación.
type StockUseCase struct {
	txRunner      TxRunner
	stockRepo     repository.StockRepository
	movementRepo  repository.StockMovementRepository
	warehouseRepo repository.WarehouseRepository
	articleRepo   repository.ArticleRepository
}

// NewStockUseCase construye el caso de uso (stockRepo y movementRepo atados al pool).
func NewStockUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	warehouseRepo repository.WarehouseRepository,
	articleRepo repository.ArticleRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:      txRunner,
		stockRepo:     stockRepo,
		movementRepo:  movementRepo,
		warehouseRepo: warehouseRepo,
		articleRepo:   articleRepo,
	}
}

// searchNormalizer quita marcas diacríticas (tildes) para buscar sin acentos.
var searchNormalizer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func normalizeSearch(s string) string {
	out, _, err := transform.String(searchNormalizer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// ListWarehouseStock lista las filas de stock de una bodega, filtrables por
// texto, "con existencias" y "bajo mínimo".
func (uc *StockUseCase) ListWarehouseStock(ctx context.Context, companyID, warehouseID string, f repository.StockFilter) (*dto.WarehouseStockResponse, error) {
	if err := uc.ownWarehouse(ctx, companyID, warehouseID); err != nil {
		return nil, err
	}
	f.Search = normalizeSearch(f.Search)
	rows, err := uc.stockRepo.ListByWarehouse(ctx, companyID, warehouseID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItemResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, toStockItemResponse(row))
	}
	return &dto.WarehouseStockResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// ListWarehouseMovements lista los movimientos que tocan una bodega,
// filtrables por rango de fechas y tipo.
func (uc *StockUseCase) ListWarehouseMovements(ctx context.Context, companyID, warehouseID string, f repository.MovementFilter) (*dto.MovementListResponse, error) {
	if err := uc.ownWarehouse(ctx, companyID, warehouseID); err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListByWarehouse(ctx, companyID, warehouseID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// Summary devuelve el rollup por artículo (cantidad y valor) a través de
// todas las bodegas de la empresa.
func (uc *StockUseCase) Summary(ctx context.Context, companyID string) (*dto.StockSummaryResponse, error) {
	rows, err := uc.stockRepo.SummaryByArticle(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockSummaryResponse{Items: make([]dto.StockSummaryRow, 0, len(rows))}
	for _, row := range rows {
		resp.Items = append(resp.Items, dto.StockSummaryRow{
			ArticleID:     row.ArticleID,
			SKU:           row.SKU,
			ArticleName:   row.ArticleName,
			TotalQuantity: row.TotalQuantity,
			TotalValue:    row.TotalValue,
			Warehouses:    row.Warehouses,
		})
		resp.TotalValue = resp.TotalValue.Add(row.TotalValue)
	}
	return resp, nil
}

// Alerts devuelve las alertas de stock bajo ordenadas por severidad
// (proyección de lectura; no se persisten).
func (uc *StockUseCase) Alerts(ctx context.Context, companyID string) ([]dto.StockAlertDTO, error) {
	rows, err := uc.stockRepo.ListBelowMin(ctx, companyID)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.StockAlertDTO, 0, len(rows))
	for _, row := range rows {
		severity := domaininv.AlertSeverity(row.Stock.Quantity, row.Stock.MinThreshold)
		alerts = append(alerts, dto.StockAlertDTO{
			ArticleID:      row.Stock.ArticleID,
			SKU:            row.SKU,
			ArticleName:    row.ArticleName,
			WarehouseID:    row.Stock.WarehouseID,
			QuantityOnHand: row.Stock.Quantity,
			MinThreshold:   row.Stock.MinThreshold,
			Shortfall:      row.Stock.MinThreshold.Sub(row.Stock.Quantity),
			Severity:       severity,
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if ra, rb := domaininv.SeverityRank(a.Severity), domaininv.SeverityRank(b.Severity); ra != rb {
			return ra < rb
		}
		return a.Shortfall.GreaterThan(b.Shortfall)
	})
	return alerts, nil
}

// UpdateSettings actualiza umbrales mín/máx y ubicación física (pasillo,
// estante, nivel) del agregado, sin tocar cantidades.
func (uc *StockUseCase) UpdateSettings(ctx context.Context, companyID, warehouseID, articleID string, in dto.UpdateStockSettingsRequest) error {
	if err := uc.ownWarehouse(ctx, companyID, warehouseID); err != nil {
		return err
	}
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
	return uc.txRunner.Run(ctx, func(
		_ repository.StockMovementRepository,
		stockRepo repository.StockRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(ctx, companyID, articleID, warehouseID)
		if err != nil {
			return err
		}
		if in.MinThreshold != nil {
			stock.MinThreshold = *in.MinThreshold
		}
		if in.MaxThreshold != nil {
			stock.MaxThreshold = *in.MaxThreshold
		}
		if in.Aisle != nil {
			stock.Aisle = *in.Aisle
		}
		if in.Shelf != nil {
			stock.Shelf = *in.Shelf
		}
		if in.Level != nil {
			stock.Level = *in.Level
		}
		stock.UpdatedAt = time.Now()
		return stockRepo.Upsert(ctx, stock)
	})
}

func (uc *StockUseCase) ownWarehouse(ctx context.Context, companyID, warehouseID string) error {
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

func toStockItemResponse(row *repository.StockRow) dto.StockItemResponse {
	s := row.Stock
	return dto.StockItemResponse{
		ArticleID:          s.ArticleID,
		SKU:                row.SKU,
		ArticleName:        row.ArticleName,
		WarehouseID:        s.WarehouseID,
		QuantityOnHand:     s.Quantity,
		QuantityReserved:   s.Reserved,
		Available:          s.Available(),
		MinThreshold:       s.MinThreshold,
		MaxThreshold:       s.MaxThreshold,
		Aisle:              s.Aisle,
		Shelf:              s.Shelf,
		Level:              s.Level,
		AverageUnitCost:    s.AverageUnitCost,
		Valuation:          domaininv.Valuation(&s, row.ListPrice),
		NeedsReplenishment: s.NeedsReplenishment(),
		UpdatedAt:          s.UpdatedAt,
	}
}
