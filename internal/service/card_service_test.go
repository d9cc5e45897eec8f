package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/internal/service/mocks"
	"github.com/fsdevblog/cenjin-cards/pkg/uow"
	uowmocks "github.com/fsdevblog/cenjin-cards/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CardServiceTestSuite struct {
	suite.Suite
	mockUOW      *uowmocks.MockUOW
	mockTX       *uowmocks.MockTX
	mockCardRepo *mocks.MockMemberCardRepository
	loc          *time.Location
	cardService  *CardService
}

func TestCardServiceSuite(t *testing.T) {
	suite.Run(t, new(CardServiceTestSuite))
}

func (s *CardServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockCardRepo = mocks.NewMockMemberCardRepository(mockCtrl)
	s.loc = time.FixedZone("CST", 8*60*60)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.MemberCardRepoName)).
		Return(s.mockCardRepo, nil).AnyTimes()
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.MemberCardRepoName)).
		Return(s.mockCardRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	cardService, err := NewCardService(s.mockUOW, s.loc)
	s.Require().NoError(err)
	s.cardService = cardService
}

func validInput(number string) domain.CardInput {
	return domain.CardInput{
		BatchNumber:  "B" + gofakeit.DigitN(6),
		Merchant:     gofakeit.Company(),
		Supplier:     gofakeit.Company(),
		ProductName:  gofakeit.ProductName(),
		FaceValue:    decimal.NewFromInt(100),
		Price:        decimal.NewFromInt(95),
		ImportPrice:  decimal.NewFromInt(90),
		CardNumber:   number,
		CardPassword: gofakeit.LetterN(10),
		OrderTime:    time.Now(),
	}
}

func (s *CardServiceTestSuite) TestCreate() {
	s.Run("ok with default status", func() {
		in := validInput("C-1")
		s.mockCardRepo.EXPECT().ExistsCardNumber(gomock.Any(), "C-1", int64(0)).Return(false, nil)
		s.mockCardRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, card domain.CardInput) (*domain.MemberCard, error) {
				s.Equal(domain.CardStatusShipped, card.Status)
				return &domain.MemberCard{ID: 1, CardNumber: card.CardNumber, Status: card.Status}, nil
			})

		card, err := s.cardService.Create(s.T().Context(), in)
		s.Require().NoError(err)
		s.EqualValues(1, card.ID)
	})

	s.Run("duplicate number", func() {
		s.mockCardRepo.EXPECT().ExistsCardNumber(gomock.Any(), "C-2", int64(0)).Return(true, nil)
		_, err := s.cardService.Create(s.T().Context(), validInput("C-2"))

		var vErr *domain.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal("卡号已存在", vErr.Message)
	})

	s.Run("duplicate detected by constraint", func() {
		s.mockCardRepo.EXPECT().ExistsCardNumber(gomock.Any(), "C-3", int64(0)).Return(false, nil)
		s.mockCardRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.ErrDuplicateKey)
		_, err := s.cardService.Create(s.T().Context(), validInput("C-3"))

		var vErr *domain.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal("卡号已存在", vErr.Message)
	})

	invalid := []struct {
		name    string
		mutate  func(in *domain.CardInput)
		message string
	}{
		{name: "all absent", mutate: func(in *domain.CardInput) { *in = domain.CardInput{} }, message: "缺少必填字段"},
		{name: "blank card number", mutate: func(in *domain.CardInput) { in.CardNumber = "  " },
			message: "缺少必填字段"},
		{name: "no order time", mutate: func(in *domain.CardInput) { in.OrderTime = time.Time{} },
			message: "缺少必填字段"},
		{name: "negative price", mutate: func(in *domain.CardInput) { in.Price = decimal.NewFromInt(-1) },
			message: "金额不能为负数"},
		{name: "unknown status", mutate: func(in *domain.CardInput) { in.Status = "sold" },
			message: "无效的状态值"},
		{name: "batch number too long", mutate: func(in *domain.CardInput) { in.BatchNumber = strings.Repeat("B", 51) },
			message: "字段长度超出限制"},
		{name: "price over column", mutate: func(in *domain.CardInput) { in.Price = decimal.NewFromInt(100_000_000) },
			message: "金额超出范围"},
		{name: "face value rounds over column",
			mutate:  func(in *domain.CardInput) { in.FaceValue = decimal.RequireFromString("99999999.995") },
			message: "金额超出范围"},
	}
	for _, tt := range invalid {
		s.Run(tt.name, func() {
			in := validInput("X")
			tt.mutate(&in)
			_, err := s.cardService.Create(s.T().Context(), in)

			var vErr *domain.ValidationError
			s.Require().ErrorAs(err, &vErr)
			s.Equal(tt.message, vErr.Message)
		})
	}
}

func (s *CardServiceTestSuite) TestBulkCreate() {
	s.Run("skips duplicates", func() {
		in := []domain.CardInput{validInput("DUP"), validInput("NEW")}
		s.mockCardRepo.EXPECT().BatchCreate(gomock.Any(), gomock.Len(2), gomock.Any()).
			DoAndReturn(func(_ context.Context, cards []domain.CardInput, fn repoargs.MemberCardBatchQueryRow) error {
				fn(0, nil, domain.ErrDuplicateKey)
				fn(1, &domain.MemberCard{ID: 2, CardNumber: cards[1].CardNumber}, nil)
				return nil
			})

		res, err := s.cardService.BulkCreate(s.T().Context(), in)
		s.Require().NoError(err)
		s.Len(res.Created, 1)
		s.Equal("NEW", res.Created[0].CardNumber)
		s.Equal([]string{"DUP"}, res.Skipped)
	})

	s.Run("invalid row rejects the batch", func() {
		bad := validInput("BAD")
		bad.Merchant = ""
		s.mockCardRepo.EXPECT().BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := s.cardService.BulkCreate(s.T().Context(), []domain.CardInput{validInput("OK"), bad})
		var vErr *domain.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal("第 2 条数据: 缺少必填字段", vErr.Message)
	})

	s.Run("oversized row rejects the batch", func() {
		bad := validInput("BIG")
		bad.BatchNumber = strings.Repeat("批", 60)
		bad.ImportPrice = decimal.NewFromInt(123_456_789)
		s.mockCardRepo.EXPECT().BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := s.cardService.BulkCreate(s.T().Context(), []domain.CardInput{validInput("OK"), bad})
		var vErr *domain.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal("第 2 条数据: 字段长度超出限制", vErr.Message)
	})

	s.Run("empty batch", func() {
		_, err := s.cardService.BulkCreate(s.T().Context(), nil)
		var vErr *domain.ValidationError
		s.Require().ErrorAs(err, &vErr)
	})

	s.Run("row failure aborts", func() {
		s.mockCardRepo.EXPECT().BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ []domain.CardInput, fn repoargs.MemberCardBatchQueryRow) error {
				fn(0, nil, domain.ErrUnknown)
				return nil
			})
		_, err := s.cardService.BulkCreate(s.T().Context(), []domain.CardInput{validInput("A")})
		s.Require().ErrorIs(err, domain.ErrUnknown)
	})
}

func (s *CardServiceTestSuite) TestFindAll() {
	s.mockCardRepo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q repoargs.CardListQuery) ([]domain.MemberCard, int64, error) {
			s.EqualValues(MaxPageSize, q.Limit)
			s.EqualValues(MaxPageSize, q.Offset)
			s.Equal(repoargs.SortAsc, q.SortOrder)
			s.Equal(domain.CardStatusShipped, q.Filter.Status)

			s.Require().NotNil(q.Filter.OrderTimeFrom)
			s.Require().NotNil(q.Filter.OrderTimeTo)
			s.True(time.Date(2024, 5, 1, 0, 0, 0, 0, s.loc).Equal(*q.Filter.OrderTimeFrom))
			s.True(time.Date(2024, 5, 3, 0, 0, 0, 0, s.loc).Equal(*q.Filter.OrderTimeTo))
			return []domain.MemberCard{{ID: 1}}, 201, nil
		})

	page, err := s.cardService.FindAll(s.T().Context(), ListCardsArgs{
		Filter: CardFilterArgs{
			Status:    domain.CardStatusShipped,
			StartDate: "2024-05-01",
			EndDate:   "2024-05-02",
		},
		Page:      2,
		PageSize:  500,
		SortBy:    "price",
		SortOrder: "asc",
	})
	s.Require().NoError(err)
	s.EqualValues(201, page.Total)
	s.EqualValues(3, page.TotalPages)
	s.EqualValues(2, page.Page)
	s.EqualValues(MaxPageSize, page.PageSize)
}

func (s *CardServiceTestSuite) TestFindAllDefaultsAndBadDate() {
	s.mockCardRepo.EXPECT().List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q repoargs.CardListQuery) ([]domain.MemberCard, int64, error) {
			s.EqualValues(DefaultPageSize, q.Limit)
			s.EqualValues(0, q.Offset)
			return []domain.MemberCard{}, 0, nil
		})
	page, err := s.cardService.FindAll(s.T().Context(), ListCardsArgs{})
	s.Require().NoError(err)
	s.EqualValues(0, page.TotalPages)

	_, err = s.cardService.FindAll(s.T().Context(), ListCardsArgs{Filter: CardFilterArgs{StartDate: "05/01/2024"}})
	var vErr *domain.ValidationError
	s.Require().ErrorAs(err, &vErr)

	_, err = s.cardService.FindAll(s.T().Context(), ListCardsArgs{Page: ^uint(0), PageSize: MaxPageSize})
	s.Require().ErrorAs(err, &vErr)
	s.Equal("无效的页码", vErr.Message)
}

func (s *CardServiceTestSuite) TestUpdate() {
	current := &domain.MemberCard{ID: 1, CardNumber: "OLD"}

	s.Run("number taken by another card", func() {
		number := "TAKEN"
		s.mockCardRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(current, nil)
		s.mockCardRepo.EXPECT().ExistsCardNumber(gomock.Any(), "TAKEN", int64(1)).Return(true, nil)
		s.mockCardRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := s.cardService.Update(s.T().Context(), 1, repoargs.UpdateMemberCard{CardNumber: &number})
		var vErr *domain.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal("卡号已存在", vErr.Message)
	})

	s.Run("same number skips uniqueness check", func() {
		number := " OLD "
		price := decimal.NewFromInt(5)
		s.mockCardRepo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(current, nil)
		s.mockCardRepo.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, upd repoargs.UpdateMemberCard) (*domain.MemberCard, error) {
				s.Equal("OLD", *upd.CardNumber)
				return &domain.MemberCard{ID: 1, CardNumber: "OLD", Price: *upd.Price}, nil
			})

		card, err := s.cardService.Update(s.T().Context(), 1, repoargs.UpdateMemberCard{
			CardNumber: &number,
			Price:      &price,
		})
		s.Require().NoError(err)
		s.True(price.Equal(card.Price))
	})

	s.Run("missing card", func() {
		s.mockCardRepo.EXPECT().FindByID(gomock.Any(), int64(9)).Return(nil, domain.ErrRecordNotFound)
		_, err := s.cardService.Update(s.T().Context(), 9, repoargs.UpdateMemberCard{})
		s.Require().ErrorIs(err, domain.ErrRecordNotFound)
	})

	s.Run("field over column limits", func() {
		merchant := strings.Repeat("m", 201)
		_, err := s.cardService.Update(s.T().Context(), 1, repoargs.UpdateMemberCard{Merchant: &merchant})
		var vErr *domain.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal("字段长度超出限制", vErr.Message)

		price := decimal.NewFromInt(100_000_000)
		_, err = s.cardService.Update(s.T().Context(), 1, repoargs.UpdateMemberCard{Price: &price})
		s.Require().ErrorAs(err, &vErr)
		s.Equal("金额超出范围", vErr.Message)
	})

	s.Run("invalid status", func() {
		status := domain.CardStatusType("sold")
		_, err := s.cardService.Update(s.T().Context(), 1, repoargs.UpdateMemberCard{Status: &status})
		var vErr *domain.ValidationError
		s.Require().ErrorAs(err, &vErr)
	})
}

func (s *CardServiceTestSuite) TestDelete() {
	s.mockCardRepo.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
	s.mockCardRepo.EXPECT().Delete(gomock.Any(), int64(2)).Return(domain.ErrRecordNotFound)

	s.Require().NoError(s.cardService.Delete(s.T().Context(), 1))
	s.Require().ErrorIs(s.cardService.Delete(s.T().Context(), 2), domain.ErrRecordNotFound)
}

func (s *CardServiceTestSuite) TestBulkDelete() {
	s.mockCardRepo.EXPECT().BulkDelete(gomock.Any(), []int64{1, 2, 3}).Return(int64(2), nil)

	deleted, err := s.cardService.BulkDelete(s.T().Context(), []int64{1, 2, 3})
	s.Require().NoError(err)
	s.EqualValues(2, deleted)

	for _, ids := range [][]int64{nil, {1, 0}} {
		_, err = s.cardService.BulkDelete(s.T().Context(), ids)
		var vErr *domain.ValidationError
		s.Require().ErrorAs(err, &vErr)
		s.Equal("无效的 ID 列表", vErr.Message)
	}
}

func (s *CardServiceTestSuite) TestExport() {
	s.mockCardRepo.EXPECT().Export(gomock.Any(), repoargs.CardFilter{CardNumber: "88"}).
		Return([]domain.MemberCard{{ID: 1}, {ID: 2}}, nil)
	s.mockCardRepo.EXPECT().Export(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	cards, err := s.cardService.Export(s.T().Context(), CardFilterArgs{CardNumber: " 88 "})
	s.Require().NoError(err)
	s.Len(cards, 2)

	_, err = s.cardService.Export(s.T().Context(), CardFilterArgs{})
	s.Require().Error(err)
}

func TestNormalizeCardLimits(t *testing.T) {
	in := validInput("N")
	in.BatchNumber = strings.Repeat("批", 50)
	in.ProductName = strings.Repeat("品", 200)
	in.Price = decimal.RequireFromString("99999999.99")

	out, err := normalizeCard(in)
	require.NoError(t, err, "limits count characters, not bytes")
	assert.Equal(t, in.BatchNumber, out.BatchNumber)

	in.BatchNumber += "批"
	_, err = normalizeCard(in)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "字段长度超出限制", vErr.Message)
}
