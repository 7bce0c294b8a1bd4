package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const (
	testCompanyID  = "co-00000000-0000-0000-0000-000000000001"
	otherCompanyID = "co-00000000-0000-0000-0000-000000000002"
)

// fakeWarehouseRepo doble en memoria del puerto de bodegas.
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

// stubStockRepo solo responde HasNonZero; el resto no se usa en estos tests.
type stubStockRepo struct {
	hasNonZero bool
}

var _ repository.StockRepository = (*stubStockRepo)(nil)

func (s *stubStockRepo) Get(context.Context, string, string, string) (*entity.Stock, error) {
	return nil, nil
}

func (s *stubStockRepo) GetForUpdate(context.Context, string, string, string) (*entity.Stock, error) {
	return nil, nil
}

func (s *stubStockRepo) Upsert(context.Context, *entity.Stock) error { return nil }

func (s *stubStockRepo) ListByWarehouse(context.Context, string, string, repository.StockFilter) ([]*repository.StockRow, error) {
	return nil, nil
}

func (s *stubStockRepo) ListBelowMin(context.Context, string) ([]*repository.StockRow, error) {
	return nil, nil
}

func (s *stubStockRepo) SummaryByArticle(context.Context, string) ([]*repository.ArticleSummaryRow, error) {
	return nil, nil
}

func (s *stubStockRepo) HasNonZero(context.Context, string, string) (bool, error) {
	return s.hasNonZero, nil
}

// stubTransferRepo solo responde HasOpen.
type stubTransferRepo struct {
	hasOpen bool
}

var _ repository.TransferRepository = (*stubTransferRepo)(nil)

func (s *stubTransferRepo) NextNumber(context.Context, string) (int64, error) { return 0, nil }
func (s *stubTransferRepo) Create(context.Context, *entity.Transfer) error    { return nil }

func (s *stubTransferRepo) GetByID(context.Context, string, string) (*entity.Transfer, error) {
	return nil, nil
}

func (s *stubTransferRepo) GetByIDForUpdate(context.Context, string, string) (*entity.Transfer, error) {
	return nil, nil
}

func (s *stubTransferRepo) Update(context.Context, *entity.Transfer) error         { return nil }
func (s *stubTransferRepo) UpdateItem(context.Context, *entity.TransferItem) error { return nil }

func (s *stubTransferRepo) ListByCompany(context.Context, string, string, int, int) ([]*entity.Transfer, error) {
	return nil, nil
}

func (s *stubTransferRepo) HasOpen(context.Context, string, string) (bool, error) {
	return s.hasOpen, nil
}

type warehouseFixture struct {
	uc        *usecase.WarehouseUseCase
	repo      *fakeWarehouseRepo
	stocks    *stubStockRepo
	transfers *stubTransferRepo
}

func newWarehouseFixture(warehouses ...entity.Warehouse) *warehouseFixture {
	repo := newFakeWarehouseRepo(warehouses...)
	stocks := &stubStockRepo{}
	transfers := &stubTransferRepo{}
	return &warehouseFixture{
		uc:        usecase.NewWarehouseUseCase(repo, stocks, transfers),
		repo:      repo,
		stocks:    stocks,
		transfers: transfers,
	}
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseCreate_OK(t *testing.T) {
	f := newWarehouseFixture()

	resp, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateWarehouseRequest{
		Code:      "BOD-01",
		Name:      "Bodega Principal",
		Address:   "Calle 10 # 5-20",
		IsPrimary: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, testCompanyID, resp.CompanyID)
	assert.Equal(t, "BOD-01", resp.Code)
	assert.True(t, resp.IsPrimary)
	assert.True(t, resp.Active, "las bodegas nacen activas")
}

func TestWarehouseCreate_CodeDuplicado(t *testing.T) {
	f := newWarehouseFixture(
		entity.Warehouse{ID: "wh-1", CompanyID: testCompanyID, Code: "BOD-01", Name: "Existente", Active: true},
	)

	_, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateWarehouseRequest{
		Code: "BOD-01", Name: "Otra",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo código en otra empresa sí es válido.
	_, err = f.uc.Create(context.Background(), otherCompanyID, dto.CreateWarehouseRequest{
		Code: "BOD-01", Name: "Ajena",
	})
	assert.NoError(t, err)
}

func TestWarehouseCreate_SegundaPrincipalRechazada(t *testing.T) {
	f := newWarehouseFixture(
		entity.Warehouse{ID: "wh-1", CompanyID: testCompanyID, Code: "BOD-01", Name: "Principal", IsPrimary: true, Active: true},
	)

	_, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateWarehouseRequest{
		Code: "BOD-02", Name: "Otra principal", IsPrimary: true,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicatePrimaryWarehouse)

	// No principal sí pasa.
	_, err = f.uc.Create(context.Background(), testCompanyID, dto.CreateWarehouseRequest{
		Code: "BOD-02", Name: "Secundaria",
	})
	assert.NoError(t, err)
}

func TestWarehouseCreate_CamposObligatorios(t *testing.T) {
	f := newWarehouseFixture()

	_, err := f.uc.Create(context.Background(), testCompanyID, dto.CreateWarehouseRequest{Name: "Sin código"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(context.Background(), testCompanyID, dto.CreateWarehouseRequest{Code: "BOD-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseUpdate_MarcarPrincipalConOtraExistente(t *testing.T) {
	f := newWarehouseFixture(
		entity.Warehouse{ID: "wh-1", CompanyID: testCompanyID, Code: "BOD-01", Name: "Principal", IsPrimary: true, Active: true},
		entity.Warehouse{ID: "wh-2", CompanyID: testCompanyID, Code: "BOD-02", Name: "Secundaria", Active: true},
	)

	_, err := f.uc.Update(context.Background(), testCompanyID, "wh-2", dto.UpdateWarehouseRequest{
		IsPrimary: boolPtr(true),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicatePrimaryWarehouse)

	// Reafirmar la principal actual no debe fallar.
	resp, err := f.uc.Update(context.Background(), testCompanyID, "wh-1", dto.UpdateWarehouseRequest{
		IsPrimary: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, resp.IsPrimary)
}

func TestWarehouseUpdate_AplicaCampos(t *testing.T) {
	f := newWarehouseFixture(
		entity.Warehouse{ID: "wh-1", CompanyID: testCompanyID, Code: "BOD-01", Name: "Vieja", Address: "x", Active: true},
	)

	resp, err := f.uc.Update(context.Background(), testCompanyID, "wh-1", dto.UpdateWarehouseRequest{
		Name:    strPtr("Nueva"),
		Address: strPtr("Carrera 7 # 12-30"),
		Active:  boolPtr(false),
	})
	require.NoError(t, err)

	assert.Equal(t, "Nueva", resp.Name)
	assert.Equal(t, "Carrera 7 # 12-30", resp.Address)
	assert.False(t, resp.Active)
	assert.Equal(t, "BOD-01", resp.Code, "el código no cambia en update")
}

func TestWarehouseGetByID_AisladoPorEmpresa(t *testing.T) {
	f := newWarehouseFixture(
		entity.Warehouse{ID: "wh-1", CompanyID: testCompanyID, Code: "BOD-01", Name: "Principal", Active: true},
	)

	_, err := f.uc.GetByID(context.Background(), otherCompanyID, "wh-1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "otra empresa no debe ver la bodega")

	_, err = f.uc.GetByID(context.Background(), testCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouseDelete_BloqueadaConStock(t *testing.T) {
	f := newWarehouseFixture(
		entity.Warehouse{ID: "wh-1", CompanyID: testCompanyID, Code: "BOD-01", Name: "Con stock", Active: true},
	)
	f.stocks.hasNonZero = true

	err := f.uc.Delete(context.Background(), testCompanyID, "wh-1")
	assert.ErrorIs(t, err, domain.ErrWarehouseInUse)

	got, _ := f.repo.GetByID(context.Background(), "wh-1")
	assert.NotNil(t, got, "la bodega no debe eliminarse")
}

func TestWarehouseDelete_BloqueadaConTrasladosAbiertos(t *testing.T) {
	f := newWarehouseFixture(
		entity.Warehouse{ID: "wh-1", CompanyID: testCompanyID, Code: "BOD-01", Name: "Con traslados", Active: true},
	)
	f.transfers.hasOpen = true

	err := f.uc.Delete(context.Background(), testCompanyID, "wh-1")
	assert.ErrorIs(t, err, domain.ErrWarehouseInUse)
}

func TestWarehouseDelete_OK(t *testing.T) {
	f := newWarehouseFixture(
		entity.Warehouse{ID: "wh-1", CompanyID: testCompanyID, Code: "BOD-01", Name: "Vacía", Active: true},
	)

	err := f.uc.Delete(context.Background(), testCompanyID, "wh-1")
	require.NoError(t, err)

	got, _ := f.repo.GetByID(context.Background(), "wh-1")
	assert.Nil(t, got)
}
