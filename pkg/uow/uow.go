package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RepositoryName string
type Repository any
type RepositoryFactory func(DBTX) Repository

// Option tunes a UnitOfWork.
type Option func(*UnitOfWork)

// WithTxOptions sets the options every transaction started by Do begins with.
func WithTxOptions(opts pgx.TxOptions) Option {
	return func(u *UnitOfWork) {
		u.txOptions = opts
	}
}

// UnitOfWork keeps repository factories by name and runs callbacks inside a pool transaction.
type UnitOfWork struct {
	conn         *pgxpool.Pool
	repositories map[RepositoryName]RepositoryFactory
	txOptions    pgx.TxOptions
}

func NewUnitOfWork(conn *pgxpool.Pool, opts ...Option) *UnitOfWork {
	u := &UnitOfWork{
		conn:         conn,
		repositories: make(map[RepositoryName]RepositoryFactory),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Register stores factory under name. A second registration of the same name returns
// ErrRepositoryAlreadyRegistered. Register is not safe to call concurrently with Do: register every
// repository during startup.
func (u *UnitOfWork) Register(name RepositoryName, factory RepositoryFactory) error {
	if factory == nil {
		return ErrNilFactory
	}
	if _, ok := u.repositories[name]; ok {
		return fmt.Errorf("%w: %q", ErrRepositoryAlreadyRegistered, name)
	}
	u.repositories[name] = factory
	return nil
}

// Do runs fn inside a transaction. The transaction is committed when fn returns nil and rolled back
// otherwise; a rollback failure is joined to the returned error.
func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, TX) error) (err error) {
	tx, txErr := u.conn.BeginTx(ctx, u.txOptions)
	if txErr != nil {
		return txErr //nolint:wrapcheck
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rollbackErr)
		}
	}()

	if err = fn(ctx, NewTransaction(tx, u.repositories)); err != nil {
		return err
	}
	return tx.Commit(ctx) //nolint:wrapcheck
}

// GetRepository returns the repository registered as name bound to the pool, outside any transaction.
func (u *UnitOfWork) GetRepository(name RepositoryName) (Repository, error) {
	return lookup(u.repositories, name, u.conn)
}

// GetRepositoryAs is GetRepository followed by a type assertion to T.
func GetRepositoryAs[T any](u UOW, name RepositoryName) (T, error) {
	repo, err := u.GetRepository(name)
	if err != nil {
		var zero T
		return zero, err //nolint:wrapcheck
	}
	return assertRepository[T](repo, name)
}
