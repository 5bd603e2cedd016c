package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager starts, commits and rolls back database transactions.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryWithTx marks repositories whose writes can run inside a caller
// managed transaction.
type RepositoryWithTx interface {
	TransactionManager
}
