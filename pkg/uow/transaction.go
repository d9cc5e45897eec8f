package uow

import (
	"github.com/jackc/pgx/v5"
)

// Transaction builds repositories on top of an open pgx.Tx. Each Get call returns a fresh repository
// sharing the same transaction.
type Transaction struct {
	factories map[RepositoryName]RepositoryFactory
	tx        pgx.Tx
}

func NewTransaction(tx pgx.Tx, factories map[RepositoryName]RepositoryFactory) *Transaction {
	return &Transaction{factories: factories, tx: tx}
}

func (t *Transaction) Get(name RepositoryName) (Repository, error) {
	return lookup(t.factories, name, t.tx)
}

// GetAs is Get followed by a type assertion to T.
func GetAs[T any](t TX, name RepositoryName) (T, error) {
	repo, err := t.Get(name)
	if err != nil {
		var zero T
		return zero, err //nolint:wrapcheck
	}
	return assertRepository[T](repo, name)
}
