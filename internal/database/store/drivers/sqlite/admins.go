package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ltplabs/ecatalog/internal/database/domain"
)

const adminColumns = `id, nome, email, password_hash, contacto, criado_em`

type adminRow struct {
	ID           string         `db:"id"`
	Nome         string         `db:"nome"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	Contacto     sql.NullString `db:"contacto"`
	CriadoEm     string         `db:"criado_em"`
}

func (r adminRow) toDomain() domain.Admin {
	return domain.Admin{
		ID:           r.ID,
		Name:         r.Nome,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Contact:      mapNullStringPtr(r.Contacto),
		CreatedAt:    parseTime(r.CriadoEm),
	}
}

type adminsRepo struct {
	q sqlx.ExtContext
}

func (r *adminsRepo) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	var rows []adminRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+adminColumns+` FROM admin ORDER BY nome ASC`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Admin, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id string) (domain.Admin, error) {
	var row adminRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+adminColumns+` FROM admin WHERE id = ?`, id)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *adminsRepo) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	var row adminRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+adminColumns+` FROM admin WHERE email = ?`, email)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.Admin) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO admin (id, nome, email, password_hash, contacto) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, a.PasswordHash, mapOptionalString(a.Contact),
	)
	return mapWriteErr(err)
}
