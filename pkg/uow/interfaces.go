package uow

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks
import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// TX hands out repositories bound to one open transaction.
type TX interface {
	Get(name RepositoryName) (Repository, error)
}

// DBTX is what repositories run queries against: the pool or a transaction. Both *pgxpool.Pool and pgx.Tx
// satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type UOW interface {
	// Register binds a repository factory to name. Names are registered once, before the first Do.
	Register(name RepositoryName, factory RepositoryFactory) error
	// Do runs fn in one transaction, committing when fn returns nil and rolling back otherwise.
	Do(ctx context.Context, fn func(ctx context.Context, tx TX) error) error
	// GetRepository returns a repository running outside of any transaction.
	GetRepository(name RepositoryName) (Repository, error)
}
