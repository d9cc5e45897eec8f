package repoargs

import (
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/shopspring/decimal"
)

type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// CardFilter narrows card listings. Zero values mean "no condition". OrderTimeFrom is inclusive,
// OrderTimeTo is exclusive.
type CardFilter struct {
	BatchNumber   string
	CardNumber    string
	Status        domain.CardStatusType
	OrderTimeFrom *time.Time
	OrderTimeTo   *time.Time
}

// CardListQuery is a paginated and ordered CardFilter. SortBy holds a public field name (orderTime, price...)
// that the repository maps to a column.
type CardListQuery struct {
	Filter    CardFilter
	Limit     uint
	Offset    uint
	SortBy    string
	SortOrder SortOrder
}

// UpdateMemberCard holds a partial update, nil fields are left untouched.
type UpdateMemberCard struct {
	BatchNumber  *string
	Merchant     *string
	Supplier     *string
	ProductName  *string
	FaceValue    *decimal.Decimal
	Price        *decimal.Decimal
	ImportPrice  *decimal.Decimal
	CardNumber   *string
	CardPassword *string
	OrderTime    *time.Time
	Status       *domain.CardStatusType
}

type MemberCardBatchQueryRow func(i int, card *domain.MemberCard, err error)
