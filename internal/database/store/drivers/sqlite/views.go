package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ltplabs/ecatalog/internal/database/domain"
)

type activeClientRow struct {
	ID            string `db:"id"`
	Nome          string `db:"nome"`
	Email         string `db:"email"`
	DataRegisto   string `db:"data_registo"`
	DataExpiracao string `db:"data_expiracao"`
	DiasRestantes int    `db:"dias_restantes"`
	AccessStatus  string `db:"access_status"`
}

type activeDemoRow struct {
	ID            string         `db:"id"`
	Nome          string         `db:"nome"`
	Descricao     sql.NullString `db:"descricao"`
	URL           sql.NullString `db:"url"`
	Vertical      sql.NullString `db:"vertical"`
	Horizontal    sql.NullString `db:"horizontal"`
	CodigoProjeto sql.NullString `db:"codigo_projeto"`
	CriadoEm      string         `db:"criado_em"`
	CriadorNome   string         `db:"criador_nome"`
	CriadorEmail  string         `db:"criador_email"`
}

type clientStatsRow struct {
	ID              string         `db:"id"`
	Nome            string         `db:"nome"`
	Email           string         `db:"email"`
	DemosOpened     int            `db:"demos_opened"`
	TotalOpens      int            `db:"total_opens"`
	TotalLogins     int            `db:"total_logins"`
	UltimaAtividade sql.NullString `db:"ultima_atividade"`
}

func (r clientStatsRow) toDomain() domain.ClientStats {
	s := domain.ClientStats{
		ClientID:    r.ID,
		Name:        r.Nome,
		Email:       r.Email,
		DemosOpened: r.DemosOpened,
		TotalOpens:  r.TotalOpens,
		TotalLogins: r.TotalLogins,
	}
	if r.UltimaAtividade.Valid {
		t := parseTime(r.UltimaAtividade.String)
		s.LastActivity = &t
	}
	return s
}

type viewsRepo struct {
	q sqlx.QueryerContext
}

func (r *viewsRepo) ActiveClients(ctx context.Context) ([]domain.ActiveClient, error) {
	var rows []activeClientRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT id, nome, email, data_registo, data_expiracao, dias_restantes, access_status
		FROM v_active_clients
		ORDER BY access_status ASC, nome ASC`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ActiveClient, len(rows))
	for i, row := range rows {
		out[i] = domain.ActiveClient{
			ID:            row.ID,
			Name:          row.Nome,
			Email:         row.Email,
			RegisteredAt:  parseTime(row.DataRegisto),
			ExpiresAt:     parseTime(row.DataExpiracao),
			DaysRemaining: row.DiasRestantes,
			AccessStatus:  row.AccessStatus,
		}
	}
	return out, nil
}

func (r *viewsRepo) ActiveDemos(ctx context.Context) ([]domain.ActiveDemo, error) {
	var rows []activeDemoRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT id, nome, descricao, url, vertical, horizontal, codigo_projeto,
		       criado_em, criador_nome, criador_email
		FROM v_active_demos
		ORDER BY nome ASC`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ActiveDemo, len(rows))
	for i, row := range rows {
		out[i] = domain.ActiveDemo{
			ID:           row.ID,
			Name:         row.Nome,
			Description:  mapNullStringPtr(row.Descricao),
			URL:          mapNullStringPtr(row.URL),
			Vertical:     mapNullStringPtr(row.Vertical),
			Horizontal:   mapNullStringPtr(row.Horizontal),
			ProjectCode:  mapNullStringPtr(row.CodigoProjeto),
			CreatedAt:    parseTime(row.CriadoEm),
			CreatorName:  row.CriadorNome,
			CreatorEmail: row.CriadorEmail,
		}
	}
	return out, nil
}

const clientStatsColumns = `id, nome, email, demos_opened, total_opens, total_logins, ultima_atividade`

func (r *viewsRepo) ClientStats(ctx context.Context) ([]domain.ClientStats, error) {
	var rows []clientStatsRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+clientStatsColumns+` FROM v_client_stats ORDER BY total_opens DESC, nome ASC`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ClientStats, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *viewsRepo) ClientStatsByID(ctx context.Context, clientID string) (domain.ClientStats, error) {
	var row clientStatsRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+clientStatsColumns+` FROM v_client_stats WHERE id = ?`, clientID)
	if err != nil {
		return domain.ClientStats{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}
