package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode   = "23505"
	checkViolationCode    = "23514"
	stringTooLongCode     = "22001"
	numericOutOfRangeCode = "22003"
)

// convertErr brings a driver error to the repository layer form: a formatted context message, the domain
// error kind and the original message.
//   - pgx.ErrNoRows becomes domain.ErrRecordNotFound.
//   - unique violations become domain.ErrDuplicateKey.
//   - check violations (card status) become a *domain.ValidationError.
//   - values that overflow their column become a *domain.ValidationError.
//   - everything else is domain.ErrUnknown.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	var pgErr *pgconn.PgError
	errType := domain.ErrUnknown

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			errType = domain.ErrDuplicateKey
		case checkViolationCode:
			return fmt.Errorf("[repository/%s] %w", msg, domain.NewValidationError("无效的状态值"))
		case stringTooLongCode:
			return fmt.Errorf("[repository/%s] %w", msg, domain.NewValidationError("字段长度超出限制"))
		case numericOutOfRangeCode:
			return fmt.Errorf("[repository/%s] %w", msg, domain.NewValidationError("金额超出范围"))
		}
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}
