package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ltplabs/ecatalog/internal/database/domain"
)

const demoColumns = `id, nome, descricao, url, estado, vertical, horizontal, keywords,
	codigo_projeto, comercial_nome, comercial_contacto, comercial_foto_url,
	criado_por, criado_em, atualizado_em`

type demoRow struct {
	ID                string         `db:"id"`
	Nome              string         `db:"nome"`
	Descricao         sql.NullString `db:"descricao"`
	URL               sql.NullString `db:"url"`
	Estado            string         `db:"estado"`
	Vertical          sql.NullString `db:"vertical"`
	Horizontal        sql.NullString `db:"horizontal"`
	Keywords          sql.NullString `db:"keywords"`
	CodigoProjeto     sql.NullString `db:"codigo_projeto"`
	ComercialNome     sql.NullString `db:"comercial_nome"`
	ComercialContacto sql.NullString `db:"comercial_contacto"`
	ComercialFotoURL  sql.NullString `db:"comercial_foto_url"`
	CriadoPor         string         `db:"criado_por"`
	CriadoEm          string         `db:"criado_em"`
	AtualizadoEm      string         `db:"atualizado_em"`
}

func (r demoRow) toDomain() domain.Demo {
	return domain.Demo{
		ID:                r.ID,
		Name:              r.Nome,
		Description:       mapNullStringPtr(r.Descricao),
		URL:               mapNullStringPtr(r.URL),
		Status:            domain.DemoStatus(r.Estado),
		Vertical:          mapNullStringPtr(r.Vertical),
		Horizontal:        mapNullStringPtr(r.Horizontal),
		Keywords:          mapNullStringPtr(r.Keywords),
		ProjectCode:       mapNullStringPtr(r.CodigoProjeto),
		SalesContactName:  mapNullStringPtr(r.ComercialNome),
		SalesContact:      mapNullStringPtr(r.ComercialContacto),
		SalesContactPhoto: mapNullStringPtr(r.ComercialFotoURL),
		CreatedBy:         r.CriadoPor,
		CreatedAt:         parseTime(r.CriadoEm),
		UpdatedAt:         parseTime(r.AtualizadoEm),
	}
}

type demosRepo struct {
	q sqlx.ExtContext
}

func (r *demosRepo) list(ctx context.Context, query string, args ...any) ([]domain.Demo, error) {
	var rows []demoRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]domain.Demo, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *demosRepo) ListDemos(ctx context.Context) ([]domain.Demo, error) {
	return r.list(ctx, `SELECT `+demoColumns+` FROM demo ORDER BY nome ASC`)
}

func (r *demosRepo) ListActiveDemos(ctx context.Context) ([]domain.Demo, error) {
	return r.list(ctx, `SELECT `+demoColumns+` FROM demo WHERE estado = 'ativa' ORDER BY nome ASC`)
}

func (r *demosRepo) ListDemosByVertical(ctx context.Context, vertical string) ([]domain.Demo, error) {
	return r.list(ctx, `SELECT `+demoColumns+` FROM demo WHERE vertical = ? ORDER BY nome ASC`, vertical)
}

func (r *demosRepo) ListDemosByHorizontal(ctx context.Context, horizontal string) ([]domain.Demo, error) {
	return r.list(ctx, `SELECT `+demoColumns+` FROM demo WHERE horizontal = ? ORDER BY nome ASC`, horizontal)
}

func (r *demosRepo) GetDemoByID(ctx context.Context, id string) (domain.Demo, error) {
	var row demoRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+demoColumns+` FROM demo WHERE id = ?`, id)
	if err != nil {
		return domain.Demo{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *demosRepo) CreateDemo(ctx context.Context, d domain.Demo) error {
	status := d.Status
	if status == "" {
		status = domain.DemoActive
	}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO demo (id, nome, descricao, url, estado, vertical, horizontal, keywords,
			codigo_projeto, comercial_nome, comercial_contacto, comercial_foto_url, criado_por)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name,
		mapOptionalString(d.Description),
		mapOptionalString(d.URL),
		string(status),
		mapOptionalString(d.Vertical),
		mapOptionalString(d.Horizontal),
		mapOptionalString(d.Keywords),
		mapOptionalString(d.ProjectCode),
		mapOptionalString(d.SalesContactName),
		mapOptionalString(d.SalesContact),
		mapOptionalString(d.SalesContactPhoto),
		d.CreatedBy,
	)
	return mapWriteErr(err)
}

func (r *demosRepo) UpdateDemo(ctx context.Context, id string, patch domain.DemoPatch) error {
	if patch.IsEmpty() {
		_, err := r.GetDemoByID(ctx, id)
		return err
	}

	u := newUpdate("demo")
	setIfPresent(u, "nome", patch.Name)
	setIfPresent(u, "descricao", patch.Description)
	setIfPresent(u, "url", patch.URL)
	if patch.Status != nil {
		u.set("estado", string(*patch.Status))
	}
	setIfPresent(u, "vertical", patch.Vertical)
	setIfPresent(u, "horizontal", patch.Horizontal)
	setIfPresent(u, "keywords", patch.Keywords)
	setIfPresent(u, "codigo_projeto", patch.ProjectCode)
	setIfPresent(u, "comercial_nome", patch.SalesContactName)
	setIfPresent(u, "comercial_contacto", patch.SalesContact)
	setIfPresent(u, "comercial_foto_url", patch.SalesContactPhoto)
	u.setRaw("atualizado_em", `strftime('%Y-%m-%dT%H:%M:%SZ', 'now')`)

	return u.exec(ctx, r.q, id)
}

func (r *demosRepo) DeleteDemo(ctx context.Context, id string) error {
	return requireRow(r.q.ExecContext(ctx, `DELETE FROM demo WHERE id = ?`, id))
}
