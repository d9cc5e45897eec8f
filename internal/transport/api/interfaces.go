package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/internal/service"
)

type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
	ValidateToken(token string) (*domain.UserClaims, error)
	RefreshToken(token string) (string, error)
}

type CardServicer interface {
	Create(ctx context.Context, in domain.CardInput) (*domain.MemberCard, error)
	BulkCreate(ctx context.Context, in []domain.CardInput) (*service.BulkCreateResult, error)
	FindAll(ctx context.Context, args service.ListCardsArgs) (*service.CardPage, error)
	FindByID(ctx context.Context, id int64) (*domain.MemberCard, error)
	FindByCardNumber(ctx context.Context, cardNumber string) (*domain.MemberCard, error)
	Update(ctx context.Context, id int64, upd repoargs.UpdateMemberCard) (*domain.MemberCard, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	Export(ctx context.Context, args service.CardFilterArgs) ([]domain.MemberCard, error)
}

type StatsServicer interface {
	Overview(ctx context.Context) (*service.Overview, error)
	Chart(ctx context.Context, timeRange string) (*service.Chart, error)
	Rank(ctx context.Context) ([]service.RankItem, error)
}
