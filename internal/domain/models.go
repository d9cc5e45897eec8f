package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CardStatusType string

const (
	CardStatusShipped   CardStatusType = "已出库"
	CardStatusUnshipped CardStatusType = "未出库"
	CardStatusUsed      CardStatusType = "已使用"
	CardStatusExpired   CardStatusType = "已过期"
)

// DefaultCardStatus is assigned when a card arrives without a status.
const DefaultCardStatus = CardStatusShipped

func (s CardStatusType) IsValid() bool {
	switch s {
	case CardStatusShipped, CardStatusUnshipped, CardStatusUsed, CardStatusExpired:
		return true
	default:
		return false
	}
}

type User struct {
	ID                int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Username          string
	Account           string
	EncryptedPassword string
}

type MemberCard struct {
	ID           int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	BatchNumber  string
	Merchant     string
	Supplier     string
	ProductName  string
	FaceValue    decimal.Decimal
	Price        decimal.Decimal
	ImportPrice  decimal.Decimal
	CardNumber   string
	CardPassword string
	OrderTime    time.Time
	Status       CardStatusType
}
