package service

import (
	"context"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type TokenManager interface {
	Generate(user domain.UserClaims) (string, error)
	Validate(token string) (*domain.UserClaims, error)
	Refresh(token string) (string, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByAccount(ctx context.Context, account string) (*domain.User, error)
}

type MemberCardRepository interface {
	Create(ctx context.Context, card domain.CardInput) (*domain.MemberCard, error)
	BatchCreate(ctx context.Context, cards []domain.CardInput, fn repoargs.MemberCardBatchQueryRow) error
	FindByID(ctx context.Context, id int64) (*domain.MemberCard, error)
	FindByCardNumber(ctx context.Context, cardNumber string) (*domain.MemberCard, error)
	ExistsCardNumber(ctx context.Context, cardNumber string, excludeID int64) (bool, error)
	Update(ctx context.Context, id int64, upd repoargs.UpdateMemberCard) (*domain.MemberCard, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	List(ctx context.Context, query repoargs.CardListQuery) ([]domain.MemberCard, int64, error)
	Export(ctx context.Context, filter repoargs.CardFilter) ([]domain.MemberCard, error)
}

type StatsRepository interface {
	Aggregate(ctx context.Context, window repoargs.Window) (*repoargs.CardAggregation, error)
	Series(ctx context.Context, query repoargs.SeriesQuery) ([]repoargs.SeriesBucket, error)
	TopProducts(ctx context.Context, limit uint) ([]repoargs.ProductDelivery, error)
}
