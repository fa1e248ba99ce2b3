package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ltplabs/ecatalog/internal/database/domain"
	"github.com/ltplabs/ecatalog/internal/database/store"
)

const requestColumns = `id, cliente_id, tipo_pedido, estado, criado_em, gerido_por`

type requestRow struct {
	ID         string         `db:"id"`
	ClienteID  string         `db:"cliente_id"`
	TipoPedido string         `db:"tipo_pedido"`
	Estado     string         `db:"estado"`
	CriadoEm   string         `db:"criado_em"`
	GeridoPor  sql.NullString `db:"gerido_por"`
}

func (r requestRow) toDomain() domain.Request {
	return domain.Request{
		ID:        r.ID,
		ClientID:  r.ClienteID,
		Kind:      domain.RequestKind(r.TipoPedido),
		Status:    domain.RequestStatus(r.Estado),
		CreatedAt: parseTime(r.CriadoEm),
		ManagedBy: mapNullStringPtr(r.GeridoPor),
	}
}

type pendingRequestRow struct {
	requestRow

	ClienteNome          string `db:"cliente_nome"`
	ClienteEmail         string `db:"cliente_email"`
	ClienteDataExpiracao string `db:"cliente_data_expiracao"`
}

type requestsRepo struct {
	q sqlx.ExtContext
}

func (r *requestsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Request, error) {
	var rows []requestRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]domain.Request, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

func (r *requestsRepo) ListRequests(ctx context.Context) ([]domain.Request, error) {
	return r.list(ctx,
		`SELECT `+requestColumns+` FROM pedido ORDER BY criado_em DESC, id DESC`)
}

func (r *requestsRepo) ListRequestsByStatus(
	ctx context.Context,
	status domain.RequestStatus,
) ([]domain.Request, error) {
	order := `criado_em DESC, id DESC`
	if status == domain.RequestPending {
		order = `criado_em ASC, id ASC`
	}
	return r.list(ctx,
		`SELECT `+requestColumns+` FROM pedido WHERE estado = ? ORDER BY `+order, string(status))
}

func (r *requestsRepo) ListRequestsByClient(ctx context.Context, clientID string) ([]domain.Request, error) {
	return r.list(ctx,
		`SELECT `+requestColumns+` FROM pedido WHERE cliente_id = ? ORDER BY criado_em DESC, id DESC`,
		clientID)
}

func (r *requestsRepo) GetRequestByID(ctx context.Context, id string) (domain.Request, error) {
	var row requestRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+requestColumns+` FROM pedido WHERE id = ?`, id)
	if err != nil {
		return domain.Request{}, mapNotFound(err)
	}
	return row.toDomain(), nil
}

func (r *requestsRepo) CreateRequest(ctx context.Context, req domain.Request) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO pedido (id, cliente_id, tipo_pedido, estado) VALUES (?, ?, ?, 'pendente')`,
		req.ID, req.ClientID, string(req.Kind),
	)
	return mapWriteErr(err)
}

func (r *requestsRepo) ResolveRequest(
	ctx context.Context,
	id string,
	status domain.RequestStatus,
	adminID string,
) error {
	// The estado guard makes the transition single-shot: whichever writer
	// commits first wins and everyone else matches zero rows.
	res, err := r.q.ExecContext(ctx,
		`UPDATE pedido SET estado = ?, gerido_por = ? WHERE id = ? AND estado = 'pendente'`,
		string(status), adminID, id,
	)
	if err != nil {
		return mapWriteErr(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrConflict
	}
	return nil
}

func (r *requestsRepo) DeleteRequest(ctx context.Context, id string) error {
	return requireRow(r.q.ExecContext(ctx, `DELETE FROM pedido WHERE id = ?`, id))
}

func (r *requestsRepo) ListPendingWithClient(ctx context.Context) ([]domain.PendingRequest, error) {
	var rows []pendingRequestRow
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT `+requestColumns+`, cliente_nome, cliente_email, cliente_data_expiracao
		FROM v_pending_requests
		ORDER BY criado_em ASC, id ASC`)
	if err != nil {
		return nil, err
	}

	out := make([]domain.PendingRequest, len(rows))
	for i, row := range rows {
		out[i] = domain.PendingRequest{
			Request:         row.toDomain(),
			ClientName:      row.ClienteNome,
			ClientEmail:     row.ClienteEmail,
			ClientExpiresAt: parseTime(row.ClienteDataExpiracao),
		}
	}
	return out, nil
}
