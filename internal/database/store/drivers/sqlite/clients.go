package sqlite

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
)

const clientColumns = `id, nome, email, password_hash, data_registo, data_expiracao, criado_por, criado_em`

type clientRow struct {
	ID            string `db:"id"`
	Nome          string `db:"nome"`
	Email         string `db:"email"`
	PasswordHash  string `db:"password_hash"`
	DataRegisto   string `db:"data_registo"`
	DataExpiracao string `db:"data_expiracao"`
	CriadoPor     string `db:"criado_por"`
	CriadoEm      string `db:"criado_em"`
}

func (r clientRow) toDomain() domain.Client {
	return domain.Client{
		ID:           r.ID,
		Name:         r.Nome,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		RegisteredAt: parseTime(r.DataRegisto),
		ExpiresAt:    parseTime(r.DataExpiracao),
		CreatedBy:    r.CriadoPor,
		CreatedAt:    parseTime(r.CriadoEm),
	}
}

type clientsRepo struct {
	q sqlx.ExtContext
}

func (r *clientsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Client, error) {
	var rows []clientRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]domain.Client, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	return r.list(ctx,
		`SELECT `+clientColumns+` FROM cliente ORDER BY criado_em DESC, id DESC`)
}

func (r *clientsRepo) ListActiveClients(ctx context.Context) ([]domain.Client, error) {
	return r.list(ctx, `
		SELECT `+clientColumns+` FROM cliente
		WHERE datetime(data_registo) <= datetime('now')
		  AND datetime(data_expiracao) >= datetime('now')
		ORDER BY data_expiracao ASC`)
}

func (r *clientsRepo) ListExpiredClients(ctx context.Context) ([]domain.Client, error) {
	return r.list(ctx, `
		SELECT `+clientColumns+` FROM cliente
		WHERE datetime(data_expiracao) < datetime('now')
		ORDER BY data_expiracao DESC`)
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	var row clientRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+clientColumns+` FROM cliente WHERE id = ?`, id)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *clientsRepo) GetClientByEmail(ctx context.Context, email string) (domain.Client, error) {
	var row clientRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+clientColumns+` FROM cliente WHERE email = ?`, email)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO cliente (id, nome, email, password_hash, data_registo, data_expiracao, criado_por)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.PasswordHash,
		formatTime(c.RegisteredAt), formatTime(c.ExpiresAt), c.CreatedBy,
	)
	return mapWriteErr(err)
}

func (r *clientsRepo) UpdateClient(ctx context.Context, id string, patch domain.ClientPatch) error {
	u := newUpdate("cliente")
	setIfPresent(u, "nome", patch.Name)
	setIfPresent(u, "email", patch.Email)
	setIfPresent(u, "password_hash", patch.PasswordHash)
	if patch.ExpiresAt != nil {
		u.set("data_expiracao", formatTime(*patch.ExpiresAt))
	}

	if u.empty() {
		_, err := r.GetClientByID(ctx, id)
		return err
	}
	return u.exec(ctx, r.q, id)
}

func (r *clientsRepo) SetClientExpiration(ctx context.Context, id string, expiresAt time.Time) error {
	return requireRow(r.q.ExecContext(ctx,
		`UPDATE cliente SET data_expiracao = ? WHERE id = ?`, formatTime(expiresAt), id))
}

func (r *clientsRepo) DeleteClient(ctx context.Context, id string) error {
	return requireRow(r.q.ExecContext(ctx, `DELETE FROM cliente WHERE id = ?`, id))
}

var _ store.Clients = (*clientsRepo)(nil)
