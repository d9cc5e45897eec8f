package uow

import (
	"errors"
	"fmt"
)

var (
	ErrRepositoryNotRegistered     = errors.New("uow: no repository under this name")
	ErrRepositoryAlreadyRegistered = errors.New("uow: name is taken by another repository")
	ErrInvalidRepositoryType       = errors.New("uow: repository has unexpected type")
	ErrNilFactory                  = errors.New("uow: nil repository factory")
)

// lookup resolves name in factories and binds the factory to db.
func lookup(factories map[RepositoryName]RepositoryFactory, name RepositoryName, db DBTX) (Repository, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRepositoryNotRegistered, name)
	}
	return factory(db), nil
}

// assertRepository narrows repo to T, naming both types when they disagree.
func assertRepository[T any](repo Repository, name RepositoryName) (T, error) {
	typed, ok := repo.(T)
	if !ok {
		return typed, fmt.Errorf("%w: %q is %T, want %T", ErrInvalidRepositoryType, name, repo, *new(T))
	}
	return typed, nil
}
