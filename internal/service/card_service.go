package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/pkg/uow"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*pageSize far from overflowing the offset.
	MaxPage = 1_000_000
	dateLayout      = "2006-01-02"
)

type CardService struct {
	uow      uow.UOW
	cardRepo MemberCardRepository
	loc      *time.Location
}

// NewCardService builds the card service. loc is the zone date filters are interpreted in, nil means UTC.
func NewCardService(u uow.UOW, loc *time.Location) (*CardService, error) {
	cardRepo, err := uow.GetRepositoryAs[MemberCardRepository](u, uow.RepositoryName(repoargs.MemberCardRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if loc == nil {
		loc = time.UTC
	}
	return &CardService{
		uow:      u,
		cardRepo: cardRepo,
		loc:      loc,
	}, nil
}

// Create validates and stores one card. A taken card number is reported as a validation error.
func (c *CardService) Create(ctx context.Context, in domain.CardInput) (*domain.MemberCard, error) {
	card, err := normalizeCard(in)
	if err != nil {
		return nil, err
	}

	exists, err := c.cardRepo.ExistsCardNumber(ctx, card.CardNumber, 0)
	if err != nil {
		return nil, fmt.Errorf("creating card: %w", err)
	}
	if exists {
		return nil, domain.NewValidationError(msgDuplicateCard)
	}

	created, err := c.cardRepo.Create(ctx, card)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.NewValidationError(msgDuplicateCard)
		}
		return nil, fmt.Errorf("creating card: %w", err)
	}
	return created, nil
}

type BulkCreateResult struct {
	Created []domain.MemberCard
	// Skipped lists card numbers that were already stored or repeated inside the batch.
	Skipped []string
}

// BulkCreate stores cards in one transaction. Any invalid row rejects the whole batch, duplicate card
// numbers are skipped.
func (c *CardService) BulkCreate(ctx context.Context, in []domain.CardInput) (*BulkCreateResult, error) {
	if len(in) == 0 {
		return nil, domain.NewValidationError(msgInvalidData)
	}

	cards := make([]domain.CardInput, len(in))
	for i, row := range in {
		card, err := normalizeCard(row)
		if err != nil {
			return nil, rowError(i, err)
		}
		cards[i] = card
	}

	result := &BulkCreateResult{
		Created: make([]domain.MemberCard, 0, len(cards)),
		Skipped: make([]string, 0),
	}
	txErr := c.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		repo, err := uow.GetAs[MemberCardRepository](tx, uow.RepositoryName(repoargs.MemberCardRepoName))
		if err != nil {
			return err //nolint:wrapcheck
		}

		var rowErrs []error
		batchErr := repo.BatchCreate(ctx, cards, func(i int, card *domain.MemberCard, err error) {
			switch {
			case err == nil:
				result.Created = append(result.Created, *card)
			case errors.Is(err, domain.ErrDuplicateKey):
				result.Skipped = append(result.Skipped, cards[i].CardNumber)
			default:
				rowErrs = append(rowErrs, err)
			}
		})
		if batchErr != nil {
			return batchErr //nolint:wrapcheck
		}
		return errors.Join(rowErrs...)
	})
	if txErr != nil {
		return nil, fmt.Errorf("bulk creating cards: %w", txErr)
	}
	return result, nil
}

type CardFilterArgs struct {
	BatchNumber string
	CardNumber  string
	Status      domain.CardStatusType
	// StartDate and EndDate are YYYY-MM-DD days, both inclusive.
	StartDate string
	EndDate   string
}

type ListCardsArgs struct {
	Filter    CardFilterArgs
	Page      uint
	PageSize  uint
	SortBy    string
	SortOrder repoargs.SortOrder
}

type CardPage struct {
	Cards      []domain.MemberCard
	Total      int64
	Page       uint
	PageSize   uint
	TotalPages int64
}

// FindAll returns one page of cards. Page defaults to 1, page size to DefaultPageSize and is capped at
// MaxPageSize.
func (c *CardService) FindAll(ctx context.Context, args ListCardsArgs) (*CardPage, error) {
	filter, err := c.buildFilter(args.Filter)
	if err != nil {
		return nil, err
	}

	page := args.Page
	if page == 0 {
		page = 1
	}
	if page > MaxPage {
		return nil, domain.NewValidationError(msgInvalidPage)
	}
	pageSize := args.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	cards, total, err := c.cardRepo.List(ctx, repoargs.CardListQuery{
		Filter:    filter,
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
		SortBy:    args.SortBy,
		SortOrder: repoargs.SortOrder(strings.ToUpper(string(args.SortOrder))),
	})
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}

	size := int64(pageSize)
	return &CardPage{
		Cards:      cards,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + size - 1) / size,
	}, nil
}

func (c *CardService) FindByID(ctx context.Context, id int64) (*domain.MemberCard, error) {
	card, err := c.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding card: %w", err)
	}
	return card, nil
}

func (c *CardService) FindByCardNumber(ctx context.Context, cardNumber string) (*domain.MemberCard, error) {
	card, err := c.cardRepo.FindByCardNumber(ctx, strings.TrimSpace(cardNumber))
	if err != nil {
		return nil, fmt.Errorf("finding card: %w", err)
	}
	return card, nil
}

// Update applies a partial update. Changing the card number re-checks uniqueness against the other cards.
func (c *CardService) Update(
	ctx context.Context,
	id int64,
	upd repoargs.UpdateMemberCard,
) (*domain.MemberCard, error) {
	upd, err := normalizeUpdate(upd)
	if err != nil {
		return nil, err
	}

	var updated *domain.MemberCard
	txErr := c.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[MemberCardRepository](tx, uow.RepositoryName(repoargs.MemberCardRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		current, findErr := repo.FindByID(ctx, id)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}

		if upd.CardNumber != nil && *upd.CardNumber != current.CardNumber {
			exists, existsErr := repo.ExistsCardNumber(ctx, *upd.CardNumber, id)
			if existsErr != nil {
				return existsErr //nolint:wrapcheck
			}
			if exists {
				return domain.NewValidationError(msgDuplicateCard)
			}
		}

		var updErr error
		updated, updErr = repo.Update(ctx, id, upd)
		return updErr //nolint:wrapcheck
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrDuplicateKey) {
			return nil, domain.NewValidationError(msgDuplicateCard)
		}
		return nil, fmt.Errorf("updating card %d: %w", id, txErr)
	}
	return updated, nil
}

func (c *CardService) Delete(ctx context.Context, id int64) error {
	if err := c.cardRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting card %d: %w", id, err)
	}
	return nil
}

// BulkDelete removes the cards with the given ids and returns how many were actually removed.
func (c *CardService) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.NewValidationError(msgInvalidIDs)
	}
	for _, id := range ids {
		if id <= 0 {
			return 0, domain.NewValidationError(msgInvalidIDs)
		}
	}

	deleted, err := c.cardRepo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk deleting cards: %w", err)
	}
	return deleted, nil
}

// Export returns every card matching filter, newest order first.
func (c *CardService) Export(ctx context.Context, args CardFilterArgs) ([]domain.MemberCard, error) {
	filter, err := c.buildFilter(args)
	if err != nil {
		return nil, err
	}
	cards, err := c.cardRepo.Export(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("exporting cards: %w", err)
	}
	return cards, nil
}

// buildFilter turns the inclusive day range into [startDate 00:00, day after endDate 00:00) in the
// service location.
func (c *CardService) buildFilter(args CardFilterArgs) (repoargs.CardFilter, error) {
	filter := repoargs.CardFilter{
		BatchNumber: strings.TrimSpace(args.BatchNumber),
		CardNumber:  strings.TrimSpace(args.CardNumber),
		Status:      args.Status,
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return filter, domain.NewValidationError(msgInvalidStatus)
	}

	if args.StartDate != "" {
		from, err := time.ParseInLocation(dateLayout, args.StartDate, c.loc)
		if err != nil {
			return filter, domain.NewValidationError(msgInvalidDate)
		}
		filter.OrderTimeFrom = &from
	}
	if args.EndDate != "" {
		end, err := time.ParseInLocation(dateLayout, args.EndDate, c.loc)
		if err != nil {
			return filter, domain.NewValidationError(msgInvalidDate)
		}
		to := end.AddDate(0, 0, 1)
		filter.OrderTimeTo = &to
	}
	return filter, nil
}
