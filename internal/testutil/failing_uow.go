package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/timecard/internal/db"
)

// FailingUoW is a UnitOfWork that injects Err into a transaction's writes,
// for testing that a partially written export rolls back.
//
// The failing ExecContext is the FailOn-th call (counting from 1) or, when
// Match is set, the first call whose query contains Match. Reads pass
// through.
type FailingUoW struct {
	DB     *sql.DB
	FailOn int32
	Match  string
	Err    error

	execs atomic.Int32
}

// Execs returns the number of ExecContext calls seen by the last
// transaction, the failing one included.
func (u *FailingUoW) Execs() int {
	return int(u.execs.Load())
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	u.execs.Store(0)

	if fnErr := fn(ctx, &failingTx{DBTX: tx, uow: u}); fnErr != nil {
		_ = tx.Rollback()
		return fnErr
	}
	return tx.Commit()
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	n := f.uow.execs.Add(1)
	if f.uow.Match != "" {
		if strings.Contains(query, f.uow.Match) {
			return nil, f.uow.Err
		}
	} else if n == f.uow.FailOn {
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
