package api

import (
	"strings"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/internal/service"
	"github.com/shopspring/decimal"
)

var orderTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseOrderTime accepts RFC3339 and zoneless layouts, the latter are read in loc.
func parseOrderTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	var lastErr error
	for _, layout := range orderTimeLayouts {
		t, err := time.ParseInLocation(layout, v, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr //nolint:wrapcheck
}

// CardResponse renders amounts as decimal strings with two places.
type CardResponse struct {
	ID           int64                 `json:"id"`
	BatchNumber  string                `json:"batchNumber"`
	Merchant     string                `json:"merchant"`
	Supplier     string                `json:"supplier"`
	ProductName  string                `json:"productName"`
	FaceValue    string                `json:"faceValue"`
	Price        string                `json:"price"`
	ImportPrice  string                `json:"importPrice"`
	CardNumber   string                `json:"cardNumber"`
	CardPassword string                `json:"cardPassword"`
	OrderTime    time.Time             `json:"orderTime"`
	Status       domain.CardStatusType `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func newCardResponse(card *domain.MemberCard) CardResponse {
	return CardResponse{
		ID:           card.ID,
		BatchNumber:  card.BatchNumber,
		Merchant:     card.Merchant,
		Supplier:     card.Supplier,
		ProductName:  card.ProductName,
		FaceValue:    card.FaceValue.StringFixed(2),
		Price:        card.Price.StringFixed(2),
		ImportPrice:  card.ImportPrice.StringFixed(2),
		CardNumber:   card.CardNumber,
		CardPassword: card.CardPassword,
		OrderTime:    card.OrderTime,
		Status:       card.Status,
		CreatedAt:    card.CreatedAt,
		UpdatedAt:    card.UpdatedAt,
	}
}

func newCardListResponse(cards []domain.MemberCard) []CardResponse {
	list := make([]CardResponse, len(cards))
	for i := range cards {
		list[i] = newCardResponse(&cards[i])
	}
	return list
}

// CreateCardParams is the body of card creation. Pointers tell an absent field from a zero one.
type CreateCardParams struct {
	BatchNumber  *string          `binding:"required,max=50"          json:"batchNumber"`
	Merchant     *string          `binding:"required,max=200"         json:"merchant"`
	Supplier     *string          `binding:"required,max=200"         json:"supplier"`
	ProductName  *string          `binding:"required,max=200"         json:"productName"`
	FaceValue    *decimal.Decimal `binding:"required"                 json:"faceValue"`
	Price        *decimal.Decimal `binding:"required"                 json:"price"`
	ImportPrice  *decimal.Decimal `binding:"required"                 json:"importPrice"`
	CardNumber   *string          `binding:"required,max=100"         json:"cardNumber"`
	CardPassword *string          `binding:"required,max=100"         json:"cardPassword"`
	OrderTime    *string          `binding:"required"                 json:"orderTime"`
	Status       *string          `binding:"omitempty,card_status"    json:"status"`
}

// toInput converts params, absent fields become zero values for the service to reject.
func (p CreateCardParams) toInput(loc *time.Location) (domain.CardInput, error) {
	in := domain.CardInput{
		BatchNumber:  deref(p.BatchNumber),
		Merchant:     deref(p.Merchant),
		Supplier:     deref(p.Supplier),
		ProductName:  deref(p.ProductName),
		CardNumber:   deref(p.CardNumber),
		CardPassword: deref(p.CardPassword),
		Status:       domain.CardStatusType(deref(p.Status)),
	}
	for _, pair := range []struct {
		src *decimal.Decimal
		dst *decimal.Decimal
	}{
		{p.FaceValue, &in.FaceValue},
		{p.Price, &in.Price},
		{p.ImportPrice, &in.ImportPrice},
	} {
		if pair.src != nil {
			*pair.dst = *pair.src
		}
	}

	if p.OrderTime != nil && strings.TrimSpace(*p.OrderTime) != "" {
		t, err := parseOrderTime(*p.OrderTime, loc)
		if err != nil {
			return in, domain.NewValidationError(msgInvalidDate)
		}
		in.OrderTime = t
	}
	return in, nil
}

type BulkCreateParams struct {
	Cards []CreateCardParams `binding:"required,min=1" json:"cards"`
}

type BulkCreateResponse struct {
	Created int      `json:"created"`
	Skipped []string `json:"skipped"`
}

type UpdateCardParams struct {
	BatchNumber  *string          `binding:"omitempty,max=50"      json:"batchNumber"`
	Merchant     *string          `binding:"omitempty,max=200"     json:"merchant"`
	Supplier     *string          `binding:"omitempty,max=200"     json:"supplier"`
	ProductName  *string          `binding:"omitempty,max=200"     json:"productName"`
	FaceValue    *decimal.Decimal `json:"faceValue"`
	Price        *decimal.Decimal `json:"price"`
	ImportPrice  *decimal.Decimal `json:"importPrice"`
	CardNumber   *string          `binding:"omitempty,max=100"     json:"cardNumber"`
	CardPassword *string          `binding:"omitempty,max=100"     json:"cardPassword"`
	OrderTime    *string          `json:"orderTime"`
	Status       *string          `binding:"omitempty,card_status" json:"status"`
}

func (p UpdateCardParams) toUpdate(loc *time.Location) (repoargs.UpdateMemberCard, error) {
	upd := repoargs.UpdateMemberCard{
		BatchNumber:  p.BatchNumber,
		Merchant:     p.Merchant,
		Supplier:     p.Supplier,
		ProductName:  p.ProductName,
		FaceValue:    p.FaceValue,
		Price:        p.Price,
		ImportPrice:  p.ImportPrice,
		CardNumber:   p.CardNumber,
		CardPassword: p.CardPassword,
	}
	if p.Status != nil && *p.Status != "" {
		status := domain.CardStatusType(*p.Status)
		upd.Status = &status
	}
	if p.OrderTime != nil {
		t, err := parseOrderTime(*p.OrderTime, loc)
		if err != nil {
			return upd, domain.NewValidationError(msgInvalidDate)
		}
		upd.OrderTime = &t
	}
	return upd, nil
}

type BulkDeleteParams struct {
	IDs []int64 `json:"ids"`
}

type BulkDeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// CardFilterParams are the query filters shared by listing and export.
type CardFilterParams struct {
	BatchNumber string `binding:"omitempty,max=50"                 form:"batchNumber"`
	CardNumber  string `binding:"omitempty,max=100"                form:"cardNumber"`
	Status      string `binding:"omitempty,card_status"            form:"status"`
	StartDate   string `binding:"omitempty,datetime=2006-01-02"    form:"startDate"`
	EndDate     string `binding:"omitempty,datetime=2006-01-02"    form:"endDate"`
}

func (p CardFilterParams) toArgs() service.CardFilterArgs {
	return service.CardFilterArgs{
		BatchNumber: p.BatchNumber,
		CardNumber:  p.CardNumber,
		Status:      domain.CardStatusType(p.Status),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	}
}

type ListCardsParams struct {
	CardFilterParams
	Page      *uint  `binding:"omitempty,min=1,max=1000000"                            form:"page"`
	PageSize  *uint  `binding:"omitempty,min=1"                                        form:"pageSize"`
	SortBy    string `binding:"omitempty,oneof=orderTime id createdAt updatedAt price importPrice faceValue batchNumber cardNumber status productName merchant supplier" form:"sortBy"`
	SortOrder string `binding:"omitempty,oneof=ASC DESC asc desc"                      form:"sortOrder"`
}

type PaginationResponse struct {
	Total      int64 `json:"total"`
	Page       uint  `json:"page"`
	PageSize   uint  `json:"pageSize"`
	TotalPages int64 `json:"totalPages"`
}

type CardListResponse struct {
	List       []CardResponse     `json:"list"`
	Pagination PaginationResponse `json:"pagination"`
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
