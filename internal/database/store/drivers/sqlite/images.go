package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ltplabs/ecatalog/internal/database/domain"
)

const imageColumns = `id, nome_imagem, versao_imagem, url, descricao, atualizado_em`

type imageRow struct {
	ID           string         `db:"id"`
	NomeImagem   string         `db:"nome_imagem"`
	VersaoImagem string         `db:"versao_imagem"`
	URL          string         `db:"url"`
	Descricao    sql.NullString `db:"descricao"`
	AtualizadoEm string         `db:"atualizado_em"`
}

func (r imageRow) toDomain() domain.Image {
	return domain.Image{
		ID:          r.ID,
		Name:        r.NomeImagem,
		Version:     r.VersaoImagem,
		URL:         r.URL,
		Description: mapNullStringPtr(r.Descricao),
		UpdatedAt:   parseTime(r.AtualizadoEm),
	}
}

type imagesRepo struct {
	q sqlx.ExtContext
}

func (r *imagesRepo) list(ctx context.Context, query string, args ...any) ([]domain.Image, error) {
	var rows []imageRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]domain.Image, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *imagesRepo) ListImages(ctx context.Context) ([]domain.Image, error) {
	return r.list(ctx,
		`SELECT `+imageColumns+` FROM docker_images ORDER BY nome_imagem ASC, versao_imagem DESC`)
}

func (r *imagesRepo) ListImagesByName(ctx context.Context, name string) ([]domain.Image, error) {
	return r.list(ctx,
		`SELECT `+imageColumns+` FROM docker_images WHERE nome_imagem = ? ORDER BY versao_imagem DESC`, name)
}

func (r *imagesRepo) GetImageByID(ctx context.Context, id string) (domain.Image, error) {
	var row imageRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+imageColumns+` FROM docker_images WHERE id = ?`, id)
	if err != nil {
		return domain.Image{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *imagesRepo) CreateImage(ctx context.Context, img domain.Image) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO docker_images (id, nome_imagem, versao_imagem, url, descricao) VALUES (?, ?, ?, ?, ?)`,
		img.ID, img.Name, img.Version, img.URL, mapOptionalString(img.Description),
	)
	return mapWriteErr(err)
}

func (r *imagesRepo) UpdateImage(ctx context.Context, id string, patch domain.ImagePatch) error {
	if patch.IsEmpty() {
		_, err := r.GetImageByID(ctx, id)
		return err
	}

	u := newUpdate("docker_images")
	setIfPresent(u, "nome_imagem", patch.Name)
	setIfPresent(u, "versao_imagem", patch.Version)
	setIfPresent(u, "url", patch.URL)
	setIfPresent(u, "descricao", patch.Description)
	u.setRaw("atualizado_em", `strftime('%Y-%m-%dT%H:%M:%SZ', 'now')`)

	return u.exec(ctx, r.q, id)
}

func (r *imagesRepo) DeleteImage(ctx context.Context, id string) error {
	return requireRow(r.q.ExecContext(ctx, `DELETE FROM docker_images WHERE id = ?`, id))
}
