package transfer_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Dobles en memoria de los puertos de persistencia. El runner de transacciones
// falso toma un snapshot de stock, libro y traslados antes de ejecutar y lo
// restaura si la función falla, para reproducir la atomicidad de la
// transacción real.

func stockKey(companyID, articleID, warehouseID string) string {
	return companyID + "|" + articleID + "|" + warehouseID
}

type fakeStockRepo struct {
	rows map[string]*entity.Stock
}

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[string]*entity.Stock)}
}

func (r *fakeStockRepo) seed(s entity.Stock) {
	r.rows[stockKey(s.CompanyID, s.ArticleID, s.WarehouseID)] = &s
}

func (r *fakeStockRepo) get(companyID, articleID, warehouseID string) entity.Stock {
	if s, ok := r.rows[stockKey(companyID, articleID, warehouseID)]; ok {
		return *s
	}
	return entity.Stock{CompanyID: companyID, ArticleID: articleID, WarehouseID: warehouseID}
}

func (r *fakeStockRepo) Get(_ context.Context, companyID, articleID, warehouseID string) (*entity.Stock, error) {
	s := r.get(companyID, articleID, warehouseID)
	return &s, nil
}

func (r *fakeStockRepo) GetForUpdate(ctx context.Context, companyID, articleID, warehouseID string) (*entity.Stock, error) {
	return r.Get(ctx, companyID, articleID, warehouseID)
}

func (r *fakeStockRepo) Upsert(_ context.Context, stock *entity.Stock) error {
	cp := *stock
	r.rows[stockKey(stock.CompanyID, stock.ArticleID, stock.WarehouseID)] = &cp
	return nil
}

func (r *fakeStockRepo) ListByWarehouse(context.Context, string, string, repository.StockFilter) ([]*repository.StockRow, error) {
	return nil, nil
}

func (r *fakeStockRepo) ListBelowMin(context.Context, string) ([]*repository.StockRow, error) {
	return nil, nil
}

func (r *fakeStockRepo) SummaryByArticle(context.Context, string) ([]*repository.ArticleSummaryRow, error) {
	return nil, nil
}

func (r *fakeStockRepo) HasNonZero(_ context.Context, companyID, warehouseID string) (bool, error) {
	for _, s := range r.rows {
		if s.CompanyID == companyID && s.WarehouseID == warehouseID && !s.Quantity.IsZero() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeStockRepo) snapshot() map[string]*entity.Stock {
	snap := make(map[string]*entity.Stock, len(r.rows))
	for k, s := range r.rows {
		cp := *s
		snap[k] = &cp
	}
	return snap
}

func (r *fakeStockRepo) restore(snap map[string]*entity.Stock) {
	r.rows = snap
}

type fakeMovementRepo struct {
	rows []*entity.StockMovement
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	cp := *movement
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, companyID, id string) (*entity.StockMovement, error) {
	for _, m := range r.rows {
		if m.CompanyID == companyID && m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByWarehouse(_ context.Context, companyID, warehouseID string, _ repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.rows {
		if m.CompanyID == companyID && m.WarehouseID == warehouseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByArticle(_ context.Context, companyID, articleID string, _ repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.rows {
		if m.CompanyID == companyID && m.ArticleID == articleID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) snapshot() []*entity.StockMovement {
	return append([]*entity.StockMovement(nil), r.rows...)
}

func (r *fakeMovementRepo) restore(snap []*entity.StockMovement) {
	r.rows = snap
}

// byType filtra el libro por tipo de movimiento.
func (r *fakeMovementRepo) byType(movementType string) []*entity.StockMovement {
	var out []*entity.StockMovement
	for _, m := range r.rows {
		if m.Type == movementType {
			out = append(out, m)
		}
	}
	return out
}

type fakeArticleRepo struct {
	rows map[string]*entity.Article
}

var _ repository.ArticleRepository = (*fakeArticleRepo)(nil)

func newFakeArticleRepo(articles ...entity.Article) *fakeArticleRepo {
	r := &fakeArticleRepo{rows: make(map[string]*entity.Article)}
	for _, a := range articles {
		cp := a
		r.rows[a.ID] = &cp
	}
	return r
}

func (r *fakeArticleRepo) Create(_ context.Context, article *entity.Article) error {
	cp := *article
	r.rows[article.ID] = &cp
	return nil
}

func (r *fakeArticleRepo) GetByID(_ context.Context, id string) (*entity.Article, error) {
	if a, ok := r.rows[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeArticleRepo) GetBySKU(_ context.Context, companyID, sku string) (*entity.Article, error) {
	for _, a := range r.rows {
		if a.CompanyID == companyID && a.SKU == sku {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeArticleRepo) Update(_ context.Context, article *entity.Article) error {
	cp := *article
	r.rows[article.ID] = &cp
	return nil
}

func (r *fakeArticleRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Article, error) {
	var out []*entity.Article
	for _, a := range r.rows {
		if a.CompanyID == companyID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeWarehouseRepo struct {
	rows map[string]*entity.Warehouse
}

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

func newFakeWarehouseRepo(warehouses ...entity.Warehouse) *fakeWarehouseRepo {
	r := &fakeWarehouseRepo{rows: make(map[string]*entity.Warehouse)}
	for _, w := range warehouses {
		cp := w
		r.rows[w.ID] = &cp
	}
	return r
}

func (r *fakeWarehouseRepo) Create(_ context.Context, warehouse *entity.Warehouse) error {
	cp := *warehouse
	r.rows[warehouse.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	if w, ok := r.rows[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) GetByCode(_ context.Context, companyID, code string) (*entity.Warehouse, error) {
	for _, w := range r.rows {
		if w.CompanyID == companyID && w.Code == code {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) GetPrimary(_ context.Context, companyID string) (*entity.Warehouse, error) {
	for _, w := range r.rows {
		if w.CompanyID == companyID && w.IsPrimary {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeWarehouseRepo) Update(_ context.Context, warehouse *entity.Warehouse) error {
	cp := *warehouse
	r.rows[warehouse.ID] = &cp
	return nil
}

func (r *fakeWarehouseRepo) ListByCompany(_ context.Context, companyID string, _, _ int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.rows {
		if w.CompanyID == companyID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id string) error {
	delete(r.rows, id)
	return nil
}

type fakeTransferRepo struct {
	rows    map[string]*entity.Transfer
	counter int64
}

var _ repository.TransferRepository = (*fakeTransferRepo)(nil)

func newFakeTransferRepo() *fakeTransferRepo {
	return &fakeTransferRepo{rows: make(map[string]*entity.Transfer)}
}

func cloneTransfer(t *entity.Transfer) *entity.Transfer {
	cp := *t
	cp.Items = make([]*entity.TransferItem, 0, len(t.Items))
	for _, item := range t.Items {
		itemCp := *item
		cp.Items = append(cp.Items, &itemCp)
	}
	return &cp
}

func (r *fakeTransferRepo) NextNumber(_ context.Context, _ string) (int64, error) {
	r.counter++
	return r.counter, nil
}

func (r *fakeTransferRepo) Create(_ context.Context, transfer *entity.Transfer) error {
	r.rows[transfer.ID] = cloneTransfer(transfer)
	return nil
}

func (r *fakeTransferRepo) GetByID(_ context.Context, companyID, id string) (*entity.Transfer, error) {
	if t, ok := r.rows[id]; ok && t.CompanyID == companyID {
		return cloneTransfer(t), nil
	}
	return nil, nil
}

func (r *fakeTransferRepo) GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *fakeTransferRepo) Update(_ context.Context, transfer *entity.Transfer) error {
	r.rows[transfer.ID] = cloneTransfer(transfer)
	return nil
}

func (r *fakeTransferRepo) UpdateItem(_ context.Context, item *entity.TransferItem) error {
	t, ok := r.rows[item.TransferID]
	if !ok {
		return nil
	}
	for i, existing := range t.Items {
		if existing.ID == item.ID {
			cp := *item
			t.Items[i] = &cp
			return nil
		}
	}
	return nil
}

func (r *fakeTransferRepo) ListByCompany(_ context.Context, companyID, status string, _, _ int) ([]*entity.Transfer, error) {
	var out []*entity.Transfer
	for _, t := range r.rows {
		if t.CompanyID != companyID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, cloneTransfer(t))
	}
	return out, nil
}

func (r *fakeTransferRepo) HasOpen(_ context.Context, companyID, warehouseID string) (bool, error) {
	for _, t := range r.rows {
		if t.CompanyID != companyID {
			continue
		}
		if t.SourceWarehouseID != warehouseID && t.DestinationWarehouseID != warehouseID {
			continue
		}
		if t.Status == entity.TransferStatusPending || t.Status == entity.TransferStatusInTransit {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTransferRepo) snapshot() map[string]*entity.Transfer {
	snap := make(map[string]*entity.Transfer, len(r.rows))
	for k, t := range r.rows {
		snap[k] = cloneTransfer(t)
	}
	return snap
}

func (r *fakeTransferRepo) restore(snap map[string]*entity.Transfer) {
	r.rows = snap
}

type fakeTxRunner struct {
	movements *fakeMovementRepo
	stocks    *fakeStockRepo
	transfers *fakeTransferRepo
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	stockSnap := r.stocks.snapshot()
	movSnap := r.movements.snapshot()
	if err := fn(r.movements, r.stocks); err != nil {
		r.stocks.restore(stockSnap)
		r.movements.restore(movSnap)
		return err
	}
	return nil
}

func (r *fakeTxRunner) RunTransfer(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
) error) error {
	stockSnap := r.stocks.snapshot()
	movSnap := r.movements.snapshot()
	transferSnap := r.transfers.snapshot()
	counterSnap := r.transfers.counter
	if err := fn(r.movements, r.stocks, r.transfers); err != nil {
		r.stocks.restore(stockSnap)
		r.movements.restore(movSnap)
		r.transfers.restore(transferSnap)
		r.transfers.counter = counterSnap
		return err
	}
	return nil
}

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}
