package postgres_test

import (
	"context"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
)

// recordedCall una sentencia SQL ejecutada contra el Querier grabador.
type recordedCall struct {
	sql  string
	args []any
}

// recordingQuerier implementa postgres.Querier grabando cada sentencia; las
// lecturas de una fila se resuelven con la función row.
type recordingQuerier struct {
	calls []recordedCall
	row   func(sql string, args []any) pgx.Row
}

var _ postgres.Querier = (*recordingQuerier)(nil)

func (q *recordingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, recordedCall{sql: sql, args: args})
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, recordedCall{sql: sql, args: args})
	return nil, nil
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.calls = append(q.calls, recordedCall{sql: sql, args: args})
	return q.row(sql, args)
}

// scriptedRow fila única cuyo Scan delega en la función provista.
type scriptedRow struct {
	scan func(dest ...any) error
}

func (r scriptedRow) Scan(dest ...any) error { return r.scan(dest...) }

// La fila de stock debe existir antes del SELECT FOR UPDATE: bloquear una
// fila inexistente no serializa nada y dos primeros postings concurrentes se
// pisarían mutuamente. GetForUpdate debe crear la fila en cero (ON CONFLICT
// DO NOTHING) y recién entonces bloquearla, dentro de la misma transacción.
func TestStockGetForUpdate_CreaLaFilaAntesDeBloquear(t *testing.T) {
	q := &recordingQuerier{
		row: func(_ string, args []any) pgx.Row {
			return scriptedRow{scan: func(dest ...any) error {
				// La fila recién creada vuelve con los valores por defecto.
				*(dest[0].(*string)) = args[0].(string)
				*(dest[1].(*string)) = args[1].(string)
				*(dest[2].(*string)) = args[2].(string)
				return nil
			}}
		},
	}
	repo := postgres.NewStockRepository(q)

	stock, err := repo.GetForUpdate(context.Background(), "co-1", "art-1", "wh-1")
	require.NoError(t, err)

	require.Len(t, q.calls, 2, "deben ejecutarse exactamente insert + select")

	insert := q.calls[0]
	assert.Contains(t, insert.sql, "INSERT INTO stock")
	assert.Contains(t, insert.sql, "ON CONFLICT (company_id, article_id, warehouse_id) DO NOTHING")
	assert.Equal(t, []any{"co-1", "art-1", "wh-1"}, insert.args)

	sel := q.calls[1]
	assert.Contains(t, sel.sql, "FOR UPDATE")
	assert.True(t, strings.Contains(sel.sql, "SELECT"), "la segunda sentencia debe ser el SELECT bloqueante")
	assert.Equal(t, []any{"co-1", "art-1", "wh-1"}, sel.args)

	assert.Equal(t, "co-1", stock.CompanyID)
	assert.Equal(t, "art-1", stock.ArticleID)
	assert.Equal(t, "wh-1", stock.WarehouseID)
	assert.True(t, stock.Quantity.IsZero(), "la primera lectura del agregado es cero")
	assert.True(t, stock.Reserved.IsZero())
}
