package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardInput is a card that is not stored yet. It is produced by the HTTP layer and by the spreadsheet
// importer.
type CardInput struct {
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

// UserClaims is the identity embedded into bearer tokens.
type UserClaims struct {
	ID       int64  `json:"id"`
	Account  string `json:"account"`
	Username string `json:"username"`
}
