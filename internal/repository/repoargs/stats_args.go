package repoargs

import (
	"time"

	"github.com/shopspring/decimal"
)

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

type CardAggregation struct {
	Count          int64
	SalesAmount    decimal.Decimal
	PurchaseAmount decimal.Decimal
	ShippedCount   int64
}

type BucketSize string

const (
	BucketDay   BucketSize = "day"
	BucketMonth BucketSize = "month"
)

// SeriesQuery selects cards with From <= order_time <= To grouped into buckets rendered in Location.
type SeriesQuery struct {
	From     time.Time
	To       time.Time
	Bucket   BucketSize
	Location *time.Location
}

type SeriesBucket struct {
	Key            string
	OrderCount     int64
	SalesAmount    decimal.Decimal
	PurchaseAmount decimal.Decimal
}

type ProductDelivery struct {
	ProductName   string
	DeliveryCount int64
}
