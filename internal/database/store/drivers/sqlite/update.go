package sqlite

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

// updateSet builds a single parameterized UPDATE from the fields a caller
// actually supplied. Column names only ever come from this package.
type updateSet struct {
	table string
	cols  []string
	args  []any
}

func newUpdate(table string) *updateSet {
	return &updateSet{table: table}
}

func (u *updateSet) set(col string, v any) {
	u.cols = append(u.cols, col+" = ?")
	u.args = append(u.args, v)
}

// setRaw appends an expression that takes no argument, e.g. a default.
func (u *updateSet) setRaw(col, expr string) {
	u.cols = append(u.cols, col+" = "+expr)
}

func (u *updateSet) empty() bool { return len(u.cols) == 0 }

// setIfPresent adds col when v is non-nil.
func setIfPresent[T any](u *updateSet, col string, v *T) {
	if v != nil {
		u.set(col, *v)
	}
}

func (u *updateSet) query() string {
	return "UPDATE " + u.table + " SET " + strings.Join(u.cols, ", ") + " WHERE id = ?"
}

// exec runs the update for the row with the given id. A missing row maps
// to store.ErrNotFound.
func (u *updateSet) exec(ctx context.Context, q sqlx.ExecerContext, id string) error {
	args := append(u.args, id)
	return requireRow(q.ExecContext(ctx, u.query(), args...))
}
