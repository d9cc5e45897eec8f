package pgrepo

import (
	"context"
	"fmt"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/pkg/uow"
)

var bucketFormats = map[repoargs.BucketSize]string{
	repoargs.BucketDay:   "YYYY-MM-DD",
	repoargs.BucketMonth: "YYYY-MM",
}

// StatsRepository runs read only aggregations over member_cards.
type StatsRepository struct {
	conn uow.DBTX
}

func NewStatsRepository(conn uow.DBTX) *StatsRepository {
	return &StatsRepository{conn: conn}
}

// Aggregate sums the cards ordered inside window.
func (s *StatsRepository) Aggregate(ctx context.Context, window repoargs.Window) (*repoargs.CardAggregation, error) {
	var agg repoargs.CardAggregation
	err := s.conn.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(price), 0),
			COALESCE(SUM(import_price), 0),
			COUNT(*) FILTER (WHERE status = $3)
		FROM member_cards
		WHERE order_time >= $1 AND order_time < $2`,
		window.From, window.To, string(domain.CardStatusShipped),
	).Scan(&agg.Count, &agg.SalesAmount, &agg.PurchaseAmount, &agg.ShippedCount)
	if err != nil {
		return nil, convertErr(err, "aggregating member cards from %s to %s", window.From, window.To)
	}
	return &agg, nil
}

// Series groups cards with From <= order_time <= To into day or month buckets. Empty buckets are absent,
// buckets come back in ascending key order.
func (s *StatsRepository) Series(ctx context.Context, query repoargs.SeriesQuery) ([]repoargs.SeriesBucket, error) {
	format, ok := bucketFormats[query.Bucket]
	if !ok {
		return nil, convertErr(fmt.Errorf("unknown bucket `%s`", query.Bucket), "building sales series")
	}
	zone := "UTC"
	if query.Location != nil {
		zone = query.Location.String()
	}

	rows, err := s.conn.Query(ctx, `
		SELECT
			to_char(order_time AT TIME ZONE $3, '`+format+`') AS bucket,
			COUNT(*),
			COALESCE(SUM(price), 0),
			COALESCE(SUM(import_price), 0)
		FROM member_cards
		WHERE order_time >= $1 AND order_time <= $2
		GROUP BY bucket
		ORDER BY bucket`,
		query.From, query.To, zone,
	)
	if err != nil {
		return nil, convertErr(err, "building sales series")
	}
	defer rows.Close()

	buckets := make([]repoargs.SeriesBucket, 0)
	for rows.Next() {
		var b repoargs.SeriesBucket
		if err = rows.Scan(&b.Key, &b.OrderCount, &b.SalesAmount, &b.PurchaseAmount); err != nil {
			return nil, convertErr(err, "scanning sales series bucket")
		}
		buckets = append(buckets, b)
	}
	if err = rows.Err(); err != nil {
		return nil, convertErr(err, "reading sales series")
	}
	return buckets, nil
}

// TopProducts counts shipped cards per product, most delivered first. Ties keep the product that was
// stored first.
func (s *StatsRepository) TopProducts(ctx context.Context, limit uint) ([]repoargs.ProductDelivery, error) {
	safeLimit, err := safeConvertUintToInt64(limit)
	if err != nil {
		return nil, convertErr(err, "converting limit")
	}

	rows, err := s.conn.Query(ctx, `
		SELECT product_name, COUNT(*) AS delivery_count
		FROM member_cards
		WHERE status = $1
		GROUP BY product_name
		ORDER BY delivery_count DESC, MIN(id) ASC
		LIMIT $2`,
		string(domain.CardStatusShipped), safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "ranking products")
	}
	defer rows.Close()

	products := make([]repoargs.ProductDelivery, 0)
	for rows.Next() {
		var p repoargs.ProductDelivery
		if err = rows.Scan(&p.ProductName, &p.DeliveryCount); err != nil {
			return nil, convertErr(err, "scanning product rank")
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, convertErr(err, "reading product rank")
	}
	return products, nil
}
