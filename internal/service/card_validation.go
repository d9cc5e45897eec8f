package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

const (
	msgMissingFields  = "缺少必填字段"
	msgInvalidStatus  = "无效的状态值"
	msgNegativeAmount = "金额不能为负数"
	msgInvalidData    = "无效的数据格式"
	msgInvalidIDs     = "无效的 ID 列表"
	msgInvalidDate    = "无效的日期格式"
	msgDuplicateCard  = "卡号已存在"
	msgFieldTooLong   = "字段长度超出限制"
	msgAmountTooLarge = "金额超出范围"
	msgInvalidPage    = "无效的页码"
)

// Column limits of member_cards. Lengths count characters like VARCHAR does.
const (
	maxBatchNumberLen = 50
	maxNameLen        = 200
	maxCardNumberLen  = 100
	maxPasswordLen    = 100
)

// maxAmount is the first value NUMERIC(10, 2) cannot hold.
var maxAmount = decimal.New(1, 8)

// normalizeCard trims text fields, defaults the status and checks required fields and amounts.
func normalizeCard(in domain.CardInput) (domain.CardInput, error) {
	in.BatchNumber = strings.TrimSpace(in.BatchNumber)
	in.Merchant = strings.TrimSpace(in.Merchant)
	in.Supplier = strings.TrimSpace(in.Supplier)
	in.ProductName = strings.TrimSpace(in.ProductName)
	in.CardNumber = strings.TrimSpace(in.CardNumber)
	in.CardPassword = strings.TrimSpace(in.CardPassword)

	for _, v := range []string{in.BatchNumber, in.Merchant, in.Supplier, in.ProductName, in.CardNumber, in.CardPassword} {
		if v == "" {
			return in, domain.NewValidationError(msgMissingFields)
		}
	}
	if in.OrderTime.IsZero() {
		return in, domain.NewValidationError(msgMissingFields)
	}
	if err := checkLengths(
		textField{in.BatchNumber, maxBatchNumberLen},
		textField{in.Merchant, maxNameLen},
		textField{in.Supplier, maxNameLen},
		textField{in.ProductName, maxNameLen},
		textField{in.CardNumber, maxCardNumberLen},
		textField{in.CardPassword, maxPasswordLen},
	); err != nil {
		return in, err
	}
	if err := checkAmounts(in.FaceValue, in.Price, in.ImportPrice); err != nil {
		return in, err
	}

	if in.Status == "" {
		in.Status = domain.DefaultCardStatus
	}
	if !in.Status.IsValid() {
		return in, domain.NewValidationError(msgInvalidStatus)
	}
	return in, nil
}

// normalizeUpdate applies the same rules as normalizeCard to the fields present in upd.
func normalizeUpdate(upd repoargs.UpdateMemberCard) (repoargs.UpdateMemberCard, error) {
	limits := []struct {
		field **string
		max   int
	}{
		{&upd.BatchNumber, maxBatchNumberLen},
		{&upd.Merchant, maxNameLen},
		{&upd.Supplier, maxNameLen},
		{&upd.ProductName, maxNameLen},
		{&upd.CardNumber, maxCardNumberLen},
		{&upd.CardPassword, maxPasswordLen},
	}
	for _, l := range limits {
		if *l.field == nil {
			continue
		}
		v := strings.TrimSpace(**l.field)
		if v == "" {
			return upd, domain.NewValidationError(msgMissingFields)
		}
		if err := checkLengths(textField{v, l.max}); err != nil {
			return upd, err
		}
		*l.field = &v
	}
	if upd.OrderTime != nil && upd.OrderTime.IsZero() {
		return upd, domain.NewValidationError(msgMissingFields)
	}
	for _, amount := range []*decimal.Decimal{upd.FaceValue, upd.Price, upd.ImportPrice} {
		if amount == nil {
			continue
		}
		if err := checkAmounts(*amount); err != nil {
			return upd, err
		}
	}
	if upd.Status != nil && !upd.Status.IsValid() {
		return upd, domain.NewValidationError(msgInvalidStatus)
	}
	return upd, nil
}

type textField struct {
	value string
	max   int
}

func checkLengths(fields ...textField) error {
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.max {
			return domain.NewValidationError(msgFieldTooLong)
		}
	}
	return nil
}

func checkAmounts(amounts ...decimal.Decimal) error {
	for _, a := range amounts {
		if a.IsNegative() {
			return domain.NewValidationError(msgNegativeAmount)
		}
		// the column rounds to cents before checking its precision.
		if a.Round(2).GreaterThanOrEqual(maxAmount) {
			return domain.NewValidationError(msgAmountTooLarge)
		}
	}
	return nil
}

func rowError(i int, err error) error {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return domain.NewValidationError(fmt.Sprintf("第 %d 条数据: %s", i+1, vErr.Message))
	}
	return err
}
