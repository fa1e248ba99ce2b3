package sqlite

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ltplabs/ecatalog/internal/database/store"
)

type txStore struct {
	tx *sqlx.Tx
}

func newTx(tx *sqlx.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

// Ping is a no-op; the connection is pinned for the life of the transaction.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

// Optimize is not allowed inside a transaction (wal_checkpoint needs a
// connection without an open write transaction).
func (t *txStore) Optimize(ctx context.Context) error {
	return sql.ErrTxDone
}

func (t *txStore) Admins() store.Admins     { return &adminsRepo{q: t.tx} }
func (t *txStore) Clients() store.Clients   { return &clientsRepo{q: t.tx} }
func (t *txStore) Requests() store.Requests { return &requestsRepo{q: t.tx} }
func (t *txStore) Logs() store.Logs         { return &logsRepo{q: t.tx} }
func (t *txStore) Demos() store.Demos       { return &demosRepo{q: t.tx} }
func (t *txStore) Images() store.Images     { return &imagesRepo{q: t.tx} }
func (t *txStore) Views() store.Views       { return &viewsRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
