package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/pkg/uow"
	"github.com/shopspring/decimal"
)

const (
	rankLimit          = 10
	unknownProductName = "未知产品"
)

type StatsService struct {
	statsRepo StatsRepository
	loc       *time.Location
	now       func() time.Time
}

// NewStatsService builds the statistics service. Calendar windows are computed in loc, nil means UTC.
func NewStatsService(u uow.UOW, loc *time.Location) (*StatsService, error) {
	statsRepo, err := uow.GetRepositoryAs[StatsRepository](u, uow.RepositoryName(repoargs.StatsRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{
		statsRepo: statsRepo,
		loc:       loc,
		now:       time.Now,
	}, nil
}

type PeriodStats struct {
	Count          int64
	SalesAmount    decimal.Decimal
	PurchaseAmount decimal.Decimal
	Profit         decimal.Decimal
	ShippedCount   int64
	PendingCount   int64
}

type Overview struct {
	CurrentMonth PeriodStats
	LastMonth    PeriodStats
	CurrentYear  PeriodStats
}

// Overview aggregates the current month, the previous month and the current year.
func (s *StatsService) Overview(ctx context.Context) (*Overview, error) {
	now := s.now().In(s.loc)

	var overview Overview
	for _, p := range []struct {
		window repoargs.Window
		dst    *PeriodStats
	}{
		{window: currentMonth(now), dst: &overview.CurrentMonth},
		{window: lastMonth(now), dst: &overview.LastMonth},
		{window: currentYear(now), dst: &overview.CurrentYear},
	} {
		agg, err := s.statsRepo.Aggregate(ctx, p.window)
		if err != nil {
			return nil, fmt.Errorf("building stats overview: %w", err)
		}
		*p.dst = PeriodStats{
			Count:          agg.Count,
			SalesAmount:    agg.SalesAmount,
			PurchaseAmount: agg.PurchaseAmount,
			Profit:         agg.SalesAmount.Sub(agg.PurchaseAmount),
			ShippedCount:   agg.ShippedCount,
			PendingCount:   agg.Count - agg.ShippedCount,
		}
	}
	return &overview, nil
}

type ChartPoint struct {
	Date           string
	OrderCount     int64
	SalesAmount    decimal.Decimal
	PurchaseAmount decimal.Decimal
	Profit         decimal.Decimal
}

type Chart struct {
	TimeRange   TimeRange
	LabelFormat repoargs.BucketSize
	Points      []ChartPoint
}

// Chart returns the sales series for timeRange. Unknown ranges are treated as a week.
func (s *StatsService) Chart(ctx context.Context, timeRange string) (*Chart, error) {
	r := ParseTimeRange(timeRange)
	query := chartQuery(r, s.now().In(s.loc))

	buckets, err := s.statsRepo.Series(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("building chart for `%s`: %w", r, err)
	}

	points := make([]ChartPoint, len(buckets))
	for i, b := range buckets {
		points[i] = ChartPoint{
			Date:           b.Key,
			OrderCount:     b.OrderCount,
			SalesAmount:    b.SalesAmount,
			PurchaseAmount: b.PurchaseAmount,
			Profit:         b.SalesAmount.Sub(b.PurchaseAmount),
		}
	}
	return &Chart{TimeRange: r, LabelFormat: query.Bucket, Points: points}, nil
}

type RankItem struct {
	Rank          int
	ProductName   string
	DeliveryCount int64
}

// Rank lists the most delivered products, best first.
func (s *StatsService) Rank(ctx context.Context) ([]RankItem, error) {
	products, err := s.statsRepo.TopProducts(ctx, rankLimit)
	if err != nil {
		return nil, fmt.Errorf("ranking products: %w", err)
	}

	items := make([]RankItem, len(products))
	for i, p := range products {
		name := p.ProductName
		if strings.TrimSpace(name) == "" {
			name = unknownProductName
		}
		items[i] = RankItem{Rank: i + 1, ProductName: name, DeliveryCount: p.DeliveryCount}
	}
	return items, nil
}
