package database

import (
	"context"

	"github.com/kevin07696/settlement-ledger/internal/db/sqlc"
)

// TransactionManager opens units of work for the ledger.
// fn receives a transaction-bound Querier; returning an error rolls the
// whole unit back, returning nil commits it.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(sqlc.Querier) error) error
}

var _ TransactionManager = (*PostgreSQLAdapter)(nil)
