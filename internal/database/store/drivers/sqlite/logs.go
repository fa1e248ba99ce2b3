package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ltplabs/ecatalog/internal/database/domain"
)

const logColumns = `id, cliente_id, demo_id, tipo, mensagem, timestamp`

type logRow struct {
	ID        string         `db:"id"`
	ClienteID sql.NullString `db:"cliente_id"`
	DemoID    sql.NullString `db:"demo_id"`
	Tipo      string         `db:"tipo"`
	Mensagem  sql.NullString `db:"mensagem"`
	Timestamp string         `db:"timestamp"`
}

func (r logRow) toDomain() domain.LogEntry {
	return domain.LogEntry{
		ID:        r.ID,
		ClientID:  mapNullStringPtr(r.ClienteID),
		DemoID:    mapNullStringPtr(r.DemoID),
		Kind:      domain.LogKind(r.Tipo),
		Message:   mapNullStringPtr(r.Mensagem),
		Timestamp: parseTime(r.Timestamp),
	}
}

type logStatsRow struct {
	Tipo            string `db:"tipo"`
	Total           int    `db:"total"`
	DistinctClients int    `db:"clientes_unicos"`
	DistinctDemos   int    `db:"demos_unicas"`
}

type logsRepo struct {
	q sqlx.ExtContext
}

func (r *logsRepo) list(ctx context.Context, query string, args ...any) ([]domain.LogEntry, error) {
	var rows []logRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]domain.LogEntry, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *logsRepo) ListLogs(ctx context.Context, limit int) ([]domain.LogEntry, error) {
	return r.list(ctx,
		`SELECT `+logColumns+` FROM log ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
}

func (r *logsRepo) GetLogByID(ctx context.Context, id string) (domain.LogEntry, error) {
	var row logRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+logColumns+` FROM log WHERE id = ?`, id)
	if err != nil {
		return domain.LogEntry{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *logsRepo) ListLogsByClient(ctx context.Context, clientID string, limit int) ([]domain.LogEntry, error) {
	return r.list(ctx, `
		SELECT `+logColumns+` FROM log
		WHERE cliente_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, clientID, limit)
}

func (r *logsRepo) ListLogsByDemo(ctx context.Context, demoID string, limit int) ([]domain.LogEntry, error) {
	return r.list(ctx, `
		SELECT `+logColumns+` FROM log
		WHERE demo_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, demoID, limit)
}

func (r *logsRepo) ListLogsByKind(ctx context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error) {
	return r.list(ctx, `
		SELECT `+logColumns+` FROM log
		WHERE tipo = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, string(kind), limit)
}

func (r *logsRepo) CreateLog(ctx context.Context, e domain.LogEntry) error {
	if e.Timestamp.IsZero() {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO log (id, cliente_id, demo_id, tipo, mensagem) VALUES (?, ?, ?, ?, ?)`,
			e.ID, mapOptionalString(e.ClientID), mapOptionalString(e.DemoID),
			string(e.Kind), mapOptionalString(e.Message),
		)
		return mapWriteErr(err)
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO log (id, cliente_id, demo_id, tipo, mensagem, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, mapOptionalString(e.ClientID), mapOptionalString(e.DemoID),
		string(e.Kind), mapOptionalString(e.Message), formatTime(e.Timestamp),
	)
	return mapWriteErr(err)
}

func (r *logsRepo) DeleteLog(ctx context.Context, id string) error {
	return requireRow(r.q.ExecContext(ctx, `DELETE FROM log WHERE id = ?`, id))
}

func (r *logsRepo) Stats(ctx context.Context) ([]domain.LogStats, error) {
	var rows []logStatsRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT
			tipo,
			COUNT(*)                   AS total,
			COUNT(DISTINCT cliente_id) AS clientes_unicos,
			COUNT(DISTINCT demo_id)    AS demos_unicas
		FROM log
		GROUP BY tipo
		ORDER BY total DESC, tipo ASC`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.LogStats, len(rows))
	for i, row := range rows {
		out[i] = domain.LogStats{
			Kind:            domain.LogKind(row.Tipo),
			Total:           row.Total,
			DistinctClients: row.DistinctClients,
			DistinctDemos:   row.DistinctDemos,
		}
	}
	return out, nil
}
