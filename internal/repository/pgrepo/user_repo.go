package pgrepo

import (
	"context"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, created_at, updated_at, username, account, encrypted_password`

type UserRepository struct {
	conn uow.DBTX
}

func NewUserRepository(conn uow.DBTX) *UserRepository {
	return &UserRepository{conn: conn}
}

// CreateUser stores a user. A conflicting account or username yields domain.ErrDuplicateKey.
func (u *UserRepository) CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `
		INSERT INTO users (username, account, encrypted_password)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		user.Username, user.Account, user.Password,
	)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "creating user with account `%s`", user.Account)
	}
	return dbUser, nil
}

// FindUserByAccount returns domain.ErrRecordNotFound when no user has the account.
func (u *UserRepository) FindUserByAccount(ctx context.Context, account string) (*domain.User, error) {
	row := u.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE account = $1`, account)
	dbUser, err := scanUser(row)
	if err != nil {
		return nil, convertErr(err, "finding user by account `%s`", account)
	}
	return dbUser, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Username,
		&user.Account,
		&user.EncryptedPassword,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &user, nil
}
