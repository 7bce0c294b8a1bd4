package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable
// con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador de traslados. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, company_id, number, source_warehouse_id, destination_warehouse_id,
	status, reason, notes, requested_by, requested_at, sent_by, sent_at,
	received_by, received_at, created_at, updated_at`

// NextNumber incrementa y devuelve el consecutivo de traslados de la empresa.
// El upsert sobre transfer_counters bloquea la fila del contador, así dos
// traslados concurrentes de la misma empresa se serializan y no repiten número.
func (r *TransferRepo) NextNumber(ctx context.Context, companyID string) (int64, error) {
	query := `
		INSERT INTO transfer_counters (company_id, last_number)
		VALUES ($1, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET last_number = transfer_counters.last_number + 1
		RETURNING last_number`
	var seq int64
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next transfer number: %w", err)
	}
	return seq, nil
}

// Create persiste la cabecera del traslado y sus líneas.
func (r *TransferRepo) Create(ctx context.Context, transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.CompanyID, transfer.Number,
		transfer.SourceWarehouseID, transfer.DestinationWarehouseID,
		transfer.Status, transfer.Reason, transfer.Notes,
		transfer.RequestedBy, transfer.RequestedAt,
		nullIfEmpty(transfer.SentBy), transfer.SentAt,
		nullIfEmpty(transfer.ReceivedBy), transfer.ReceivedAt,
		transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transfer number %s already taken: %w", transfer.Number, err)
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	for _, item := range transfer.Items {
		itemQuery := `
			INSERT INTO transfer_items (id, transfer_id, article_id, quantity_requested, quantity_sent, quantity_received)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, transfer.ID, item.ArticleID,
			item.QuantityRequested, item.QuantitySent, item.QuantityReceived,
		)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un traslado con sus líneas.
func (r *TransferRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE company_id = $1 AND id = $2`
	return r.getOne(ctx, query, companyID, id)
}

// GetByIDForUpdate obtiene un traslado bloqueando la cabecera (SELECT FOR
// UPDATE) para serializar transiciones concurrentes del mismo traslado.
func (r *TransferRepo) GetByIDForUpdate(ctx context.Context, companyID, id string) (*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE company_id = $1 AND id = $2
		FOR UPDATE`
	return r.getOne(ctx, query, companyID, id)
}

func (r *TransferRepo) getOne(ctx context.Context, query, companyID, id string) (*entity.Transfer, error) {
	var t entity.Transfer
	if err := r.scanTransfer(r.q.QueryRow(ctx, query, companyID, id), &t); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	items, err := r.loadItems(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return &t, nil
}

// Update actualiza el estado y las marcas de envío/recepción de la cabecera.
func (r *TransferRepo) Update(ctx context.Context, transfer *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET status = $3, reason = $4, notes = $5,
			sent_by = $6, sent_at = $7, received_by = $8, received_at = $9,
			updated_at = $10
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(ctx, query,
		transfer.CompanyID, transfer.ID,
		transfer.Status, transfer.Reason, transfer.Notes,
		nullIfEmpty(transfer.SentBy), transfer.SentAt,
		nullIfEmpty(transfer.ReceivedBy), transfer.ReceivedAt,
		transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// UpdateItem actualiza las cantidades enviada/recibida de una línea.
func (r *TransferRepo) UpdateItem(ctx context.Context, item *entity.TransferItem) error {
	query := `
		UPDATE transfer_items
		SET quantity_sent = $2, quantity_received = $3
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, item.ID, item.QuantitySent, item.QuantityReceived)
	if err != nil {
		return fmt.Errorf("update transfer item: %w", err)
	}
	return nil
}

// ListByCompany lista traslados por empresa, opcionalmente por estado.
func (r *TransferRepo) ListByCompany(ctx context.Context, companyID, status string, limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := r.scanTransfer(rows, &t); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		items, err := r.loadItems(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}
	return list, nil
}

// HasOpen indica si la bodega participa (como origen o destino) en algún
// traslado no terminal.
func (r *TransferRepo) HasOpen(ctx context.Context, companyID, warehouseID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transfers
			 WHERE company_id = $1
			   AND (source_warehouse_id = $2 OR destination_warehouse_id = $2)
			   AND status IN ('pending', 'in_transit')
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, companyID, warehouseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check open transfers: %w", err)
	}
	return exists, nil
}

func (r *TransferRepo) scanTransfer(row interface{ Scan(...any) error }, t *entity.Transfer) error {
	var sentBy, receivedBy *string
	err := row.Scan(
		&t.ID, &t.CompanyID, &t.Number, &t.SourceWarehouseID, &t.DestinationWarehouseID,
		&t.Status, &t.Reason, &t.Notes, &t.RequestedBy, &t.RequestedAt,
		&sentBy, &t.SentAt, &receivedBy, &t.ReceivedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if sentBy != nil {
		t.SentBy = *sentBy
	}
	if receivedBy != nil {
		t.ReceivedBy = *receivedBy
	}
	return nil
}

func (r *TransferRepo) loadItems(ctx context.Context, transferID string) ([]*entity.TransferItem, error) {
	query := `
		SELECT id, transfer_id, article_id, quantity_requested, quantity_sent, quantity_received
		FROM transfer_items WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	var items []*entity.TransferItem
	for rows.Next() {
		var i entity.TransferItem
		if err := rows.Scan(&i.ID, &i.TransferID, &i.ArticleID,
			&i.QuantityRequested, &i.QuantitySent, &i.QuantityReceived); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
