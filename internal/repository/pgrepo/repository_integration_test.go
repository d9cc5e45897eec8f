package pgrepo_test

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/pgrepo"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/internal/service"
	"github.com/fsdevblog/cenjin-cards/pkg/uow"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RepositorySuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	cards     *pgrepo.MemberCardRepository
	users     *pgrepo.UserRepository
	stats     *pgrepo.StatsRepository
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() || os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run postgres integration tests")
	}
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("cards"),
		postgres.WithUsername("cards"),
		postgres.WithPassword("cards"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	l := logrus.New()
	l.SetOutput(io.Discard)
	pool, err := pgrepo.Connect(s.ctx, "../../db/migrations", dsn, l)
	s.Require().NoError(err)
	s.pool = pool

	s.cards = pgrepo.NewMemberCardRepository(pool)
	s.users = pgrepo.NewUserRepository(pool)
	s.stats = pgrepo.NewStatsRepository(pool)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *RepositorySuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE member_cards, users RESTART IDENTITY`)
	s.Require().NoError(err)
}

func (s *RepositorySuite) TestUsers() {
	created, err := s.users.CreateUser(s.ctx, repoargs.CreateUser{
		Username: "admin",
		Account:  "admin",
		Password: "hash",
	})
	s.Require().NoError(err)
	s.NotZero(created.ID)

	_, err = s.users.CreateUser(s.ctx, repoargs.CreateUser{Username: "other", Account: "admin", Password: "x"})
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)

	found, err := s.users.FindUserByAccount(s.ctx, "admin")
	s.Require().NoError(err)
	s.Equal(created.ID, found.ID)

	_, err = s.users.FindUserByAccount(s.ctx, "nobody")
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *RepositorySuite) TestCreateAndUpdate() {
	card, err := s.cards.Create(s.ctx, fakeCard("C-1", time.Now()))
	s.Require().NoError(err)

	_, err = s.cards.Create(s.ctx, fakeCard("C-1", time.Now()))
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)

	price := decimal.RequireFromString("99.50")
	status := domain.CardStatusUsed
	updated, err := s.cards.Update(s.ctx, card.ID, repoargs.UpdateMemberCard{Price: &price, Status: &status})
	s.Require().NoError(err)
	s.True(price.Equal(updated.Price))
	s.Equal(domain.CardStatusUsed, updated.Status)
	s.Equal(card.CardNumber, updated.CardNumber)

	exists, err := s.cards.ExistsCardNumber(s.ctx, "C-1", card.ID)
	s.Require().NoError(err)
	s.False(exists)
	exists, err = s.cards.ExistsCardNumber(s.ctx, "C-1", 0)
	s.Require().NoError(err)
	s.True(exists)

	_, err = s.cards.Update(s.ctx, card.ID+100, repoargs.UpdateMemberCard{Price: &price})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *RepositorySuite) TestBatchCreateSkipsDuplicates() {
	_, err := s.cards.Create(s.ctx, fakeCard("DUP", time.Now()))
	s.Require().NoError(err)

	var created, skipped []int
	err = s.cards.BatchCreate(s.ctx,
		[]domain.CardInput{fakeCard("DUP", time.Now()), fakeCard("NEW", time.Now()), fakeCard("NEW", time.Now())},
		func(i int, card *domain.MemberCard, err error) {
			if err != nil {
				s.Require().ErrorIs(err, domain.ErrDuplicateKey)
				skipped = append(skipped, i)
				return
			}
			s.NotNil(card)
			created = append(created, i)
		},
	)
	s.Require().NoError(err)
	s.Equal([]int{1}, created)
	s.Equal([]int{0, 2}, skipped)
}

func (s *RepositorySuite) TestListFiltersAndPages() {
	day := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	for i, num := range []string{"A-1", "A-2", "B-1"} {
		in := fakeCard(num, day.AddDate(0, 0, i))
		if num == "B-1" {
			in.Status = domain.CardStatusUnshipped
		}
		_, err := s.cards.Create(s.ctx, in)
		s.Require().NoError(err)
	}

	cards, total, err := s.cards.List(s.ctx, repoargs.CardListQuery{
		Filter: repoargs.CardFilter{Status: domain.CardStatusShipped},
		Limit:  1,
	})
	s.Require().NoError(err)
	s.EqualValues(2, total)
	s.Require().Len(cards, 1)
	s.Equal("A-2", cards[0].CardNumber)

	from := day.AddDate(0, 0, 1).Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 1)
	cards, total, err = s.cards.List(s.ctx, repoargs.CardListQuery{
		Filter: repoargs.CardFilter{OrderTimeFrom: &from, OrderTimeTo: &to},
		Limit:  10,
	})
	s.Require().NoError(err)
	s.EqualValues(1, total)
	s.Equal("A-2", cards[0].CardNumber)

	exported, err := s.cards.Export(s.ctx, repoargs.CardFilter{CardNumber: "a-"})
	s.Require().NoError(err)
	s.Len(exported, 2)

	deleted, err := s.cards.BulkDelete(s.ctx, []int64{exported[0].ID, exported[1].ID, 999})
	s.Require().NoError(err)
	s.EqualValues(2, deleted)
	s.Require().ErrorIs(s.cards.Delete(s.ctx, exported[0].ID), domain.ErrRecordNotFound)
}

func (s *RepositorySuite) TestStats() {
	now := time.Now().UTC()
	for i, price := range []string{"10", "20", "30"} {
		in := fakeCard(gofakeit.UUID(), now.Add(-time.Duration(i)*time.Minute))
		in.Price = decimal.RequireFromString(price)
		in.ImportPrice = decimal.NewFromInt(5)
		in.ProductName = []string{"gold", "silver", "gold"}[i]
		_, err := s.cards.Create(s.ctx, in)
		s.Require().NoError(err)
	}

	agg, err := s.stats.Aggregate(s.ctx, repoargs.Window{From: now.Add(-time.Hour), To: now.Add(time.Hour)})
	s.Require().NoError(err)
	s.EqualValues(3, agg.Count)
	s.True(decimal.NewFromInt(60).Equal(agg.SalesAmount))
	s.True(decimal.NewFromInt(15).Equal(agg.PurchaseAmount))
	s.EqualValues(3, agg.ShippedCount)

	series, err := s.stats.Series(s.ctx, repoargs.SeriesQuery{
		From:     now.Add(-time.Hour),
		To:       now.Add(time.Hour),
		Bucket:   repoargs.BucketMonth,
		Location: time.UTC,
	})
	s.Require().NoError(err)
	s.Require().NotEmpty(series)
	var orders int64
	for _, b := range series {
		orders += b.OrderCount
	}
	s.EqualValues(3, orders)

	top, err := s.stats.TopProducts(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(repoargs.ProductDelivery{ProductName: "gold", DeliveryCount: 2}, top[0])
}

// services wires the card and stats services over the suite pool, the way the app does.
func (s *RepositorySuite) services() (*service.CardService, *service.StatsService) {
	u := uow.NewUnitOfWork(s.pool)
	s.Require().NoError(u.Register(uow.RepositoryName(repoargs.MemberCardRepoName), func(db uow.DBTX) uow.Repository {
		return pgrepo.NewMemberCardRepository(db)
	}))
	s.Require().NoError(u.Register(uow.RepositoryName(repoargs.StatsRepoName), func(db uow.DBTX) uow.Repository {
		return pgrepo.NewStatsRepository(db)
	}))

	cards, err := service.NewCardService(u, time.UTC)
	s.Require().NoError(err)
	stats, err := service.NewStatsService(u, time.UTC)
	s.Require().NoError(err)
	return cards, stats
}

func (s *RepositorySuite) TestFindAllDateRangeIsInclusive() {
	cards, _ := s.services()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	for number, at := range map[string]time.Time{
		"before-start": start.Add(-time.Second),
		"at-start":     start,
		"end-last-sec": end.Add(24*time.Hour - time.Second),
		"after-end":    end.AddDate(0, 0, 1),
	} {
		_, err := s.cards.Create(s.ctx, fakeCard(number, at))
		s.Require().NoError(err)
	}

	page, err := cards.FindAll(s.ctx, service.ListCardsArgs{
		Filter:    service.CardFilterArgs{StartDate: "2024-03-01", EndDate: "2024-03-31"},
		SortBy:    "orderTime",
		SortOrder: repoargs.SortAsc,
	})
	s.Require().NoError(err)
	s.EqualValues(2, page.Total)
	s.Require().Len(page.Cards, 2)
	s.Equal("at-start", page.Cards[0].CardNumber)
	s.Equal("end-last-sec", page.Cards[1].CardNumber)
}

func (s *RepositorySuite) TestOverviewCurrentMonth() {
	_, stats := s.services()
	now := time.Now().UTC()
	for _, price := range []int64{10, 20, 30} {
		in := fakeCard(gofakeit.UUID(), now)
		in.Price = decimal.NewFromInt(price)
		in.ImportPrice = decimal.NewFromInt(5)
		_, err := s.cards.Create(s.ctx, in)
		s.Require().NoError(err)
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	previous := fakeCard("previous-month", monthStart.Add(-time.Hour))
	previous.Status = domain.CardStatusUnshipped
	_, err := s.cards.Create(s.ctx, previous)
	s.Require().NoError(err)

	overview, err := stats.Overview(s.ctx)
	s.Require().NoError(err)

	month := overview.CurrentMonth
	s.EqualValues(3, month.Count)
	s.True(decimal.NewFromInt(60).Equal(month.SalesAmount))
	s.True(decimal.NewFromInt(15).Equal(month.PurchaseAmount))
	s.True(decimal.NewFromInt(45).Equal(month.Profit))
	s.EqualValues(3, month.ShippedCount)
	s.Zero(month.PendingCount)

	s.EqualValues(1, overview.LastMonth.Count)
	s.EqualValues(1, overview.LastMonth.PendingCount)
}

func (s *RepositorySuite) TestRankBreaksTiesByArrival() {
	_, stats := s.services()
	// zeta arrives before eta and omega before iota, against the alphabet.
	arrivals := []string{"zeta", "alpha", "alpha", "eta", "omega", "iota", "alpha", "alpha", "alpha",
		"zeta", "eta", "zeta", "eta"}
	at := time.Now().UTC()
	for _, product := range arrivals {
		in := fakeCard(gofakeit.UUID(), at)
		in.ProductName = product
		_, err := s.cards.Create(s.ctx, in)
		s.Require().NoError(err)
	}
	unshipped := fakeCard(gofakeit.UUID(), at)
	unshipped.ProductName = "iota"
	unshipped.Status = domain.CardStatusUsed
	for range 3 {
		unshipped.CardNumber = gofakeit.UUID()
		_, err := s.cards.Create(s.ctx, unshipped)
		s.Require().NoError(err)
	}

	ranked, err := stats.Rank(s.ctx)
	s.Require().NoError(err)
	s.Equal([]service.RankItem{
		{Rank: 1, ProductName: "alpha", DeliveryCount: 5},
		{Rank: 2, ProductName: "zeta", DeliveryCount: 3},
		{Rank: 3, ProductName: "eta", DeliveryCount: 3},
		{Rank: 4, ProductName: "omega", DeliveryCount: 1},
		{Rank: 5, ProductName: "iota", DeliveryCount: 1},
	}, ranked)
}

func fakeCard(number string, orderTime time.Time) domain.CardInput {
	return domain.CardInput{
		BatchNumber:  "BATCH-" + gofakeit.DigitN(4),
		Merchant:     gofakeit.Company(),
		Supplier:     gofakeit.Company(),
		ProductName:  gofakeit.ProductName(),
		FaceValue:    decimal.NewFromInt(100),
		Price:        decimal.NewFromInt(90),
		ImportPrice:  decimal.NewFromInt(80),
		CardNumber:   number,
		CardPassword: gofakeit.Password(true, true, true, false, false, 12),
		OrderTime:    orderTime,
		Status:       domain.CardStatusShipped,
	}
}
