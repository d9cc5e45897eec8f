package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const memberCardColumns = `id, created_at, updated_at, batch_number, merchant, supplier, product_name,
	face_value, price, import_price, card_number, card_password, order_time, status`

const insertMemberCardSQL = `
	INSERT INTO member_cards (batch_number, merchant, supplier, product_name, face_value, price, import_price,
		card_number, card_password, order_time, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

type MemberCardRepository struct {
	conn uow.DBTX
}

func NewMemberCardRepository(conn uow.DBTX) *MemberCardRepository {
	return &MemberCardRepository{conn: conn}
}

// Create inserts a card. A taken card number yields domain.ErrDuplicateKey.
func (m *MemberCardRepository) Create(ctx context.Context, card domain.CardInput) (*domain.MemberCard, error) {
	row := m.conn.QueryRow(ctx, insertMemberCardSQL+` RETURNING `+memberCardColumns, insertArgs(card)...)
	dbCard, err := scanMemberCard(row)
	if err != nil {
		return nil, convertErr(err, "creating member card `%s`", card.CardNumber)
	}
	return dbCard, nil
}

// BatchCreate queues one insert per card in a single round trip. Cards whose number is already stored are
// not inserted and fn gets domain.ErrDuplicateKey for them. fn is called for every card in input order.
func (m *MemberCardRepository) BatchCreate(
	ctx context.Context,
	cards []domain.CardInput,
	fn repoargs.MemberCardBatchQueryRow,
) error {
	if len(cards) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i, card := range cards {
		batch.Queue(
			insertMemberCardSQL+` ON CONFLICT (card_number) DO NOTHING RETURNING `+memberCardColumns,
			insertArgs(card)...,
		).QueryRow(func(row pgx.Row) error {
			dbCard, err := scanMemberCard(row)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					fn(i, nil, fmt.Errorf("[repository/creating member card `%s`] %w",
						card.CardNumber, domain.ErrDuplicateKey))
					return nil
				}
				fn(i, nil, convertErr(err, "creating member card `%s`", card.CardNumber))
				return err //nolint:wrapcheck
			}
			fn(i, dbCard, nil)
			return nil
		})
	}

	if err := m.conn.SendBatch(ctx, batch).Close(); err != nil {
		return convertErr(err, "batch creating %d member cards", len(cards))
	}
	return nil
}

func (m *MemberCardRepository) FindByID(ctx context.Context, id int64) (*domain.MemberCard, error) {
	row := m.conn.QueryRow(ctx, `SELECT `+memberCardColumns+` FROM member_cards WHERE id = $1`, id)
	dbCard, err := scanMemberCard(row)
	if err != nil {
		return nil, convertErr(err, "finding member card by id %d", id)
	}
	return dbCard, nil
}

func (m *MemberCardRepository) FindByCardNumber(ctx context.Context, cardNumber string) (*domain.MemberCard, error) {
	row := m.conn.QueryRow(ctx, `SELECT `+memberCardColumns+` FROM member_cards WHERE card_number = $1`, cardNumber)
	dbCard, err := scanMemberCard(row)
	if err != nil {
		return nil, convertErr(err, "finding member card by number `%s`", cardNumber)
	}
	return dbCard, nil
}

// ExistsCardNumber reports whether a card other than excludeID already uses cardNumber.
// Pass excludeID 0 to check against every card.
func (m *MemberCardRepository) ExistsCardNumber(ctx context.Context, cardNumber string, excludeID int64) (bool, error) {
	var exists bool
	err := m.conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM member_cards WHERE card_number = $1 AND id <> $2)`,
		cardNumber, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, convertErr(err, "checking card number `%s`", cardNumber)
	}
	return exists, nil
}

// Update applies the non-nil fields of upd and bumps updated_at.
func (m *MemberCardRepository) Update(
	ctx context.Context,
	id int64,
	upd repoargs.UpdateMemberCard,
) (*domain.MemberCard, error) {
	var status *string
	if upd.Status != nil {
		s := string(*upd.Status)
		status = &s
	}

	row := m.conn.QueryRow(ctx, `
		UPDATE member_cards SET
			batch_number  = COALESCE($2::varchar, batch_number),
			merchant      = COALESCE($3::varchar, merchant),
			supplier      = COALESCE($4::varchar, supplier),
			product_name  = COALESCE($5::varchar, product_name),
			face_value    = COALESCE($6::numeric, face_value),
			price         = COALESCE($7::numeric, price),
			import_price  = COALESCE($8::numeric, import_price),
			card_number   = COALESCE($9::varchar, card_number),
			card_password = COALESCE($10::varchar, card_password),
			order_time    = COALESCE($11::timestamptz, order_time),
			status        = COALESCE($12::varchar, status),
			updated_at    = now()
		WHERE id = $1
		RETURNING `+memberCardColumns,
		id,
		upd.BatchNumber,
		upd.Merchant,
		upd.Supplier,
		upd.ProductName,
		upd.FaceValue,
		upd.Price,
		upd.ImportPrice,
		upd.CardNumber,
		upd.CardPassword,
		upd.OrderTime,
		status,
	)
	dbCard, err := scanMemberCard(row)
	if err != nil {
		return nil, convertErr(err, "updating member card with id %d", id)
	}
	return dbCard, nil
}

// Delete removes a card and returns domain.ErrRecordNotFound when nothing was deleted.
func (m *MemberCardRepository) Delete(ctx context.Context, id int64) error {
	tag, err := m.conn.Exec(ctx, `DELETE FROM member_cards WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "deleting member card with id %d", id)
	}
	if tag.RowsAffected() == 0 {
		return convertErr(pgx.ErrNoRows, "deleting member card with id %d", id)
	}
	return nil
}

// BulkDelete removes every card whose id is in ids and returns how many rows went away.
func (m *MemberCardRepository) BulkDelete(ctx context.Context, ids []int64) (int64, error) {
	tag, err := m.conn.Exec(ctx, `DELETE FROM member_cards WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, convertErr(err, "deleting member cards with ids `%v`", ids)
	}
	return tag.RowsAffected(), nil
}

// List returns one page of cards matching the query and the total number of matching cards.
func (m *MemberCardRepository) List(
	ctx context.Context,
	query repoargs.CardListQuery,
) ([]domain.MemberCard, int64, error) {
	limit, err := safeConvertUintToInt64(query.Limit)
	if err != nil {
		return nil, 0, convertErr(err, "converting limit")
	}
	offset, err := safeConvertUintToInt64(query.Offset)
	if err != nil {
		return nil, 0, convertErr(err, "converting offset")
	}

	args := &queryArgs{}
	where := buildCardWhere(query.Filter, args)

	var total int64
	if err = m.conn.QueryRow(ctx, `SELECT COUNT(*) FROM member_cards`+where, args.values...).Scan(&total); err != nil {
		return nil, 0, convertErr(err, "counting member cards")
	}
	if total == 0 {
		return []domain.MemberCard{}, 0, nil
	}

	sql := `SELECT ` + memberCardColumns + ` FROM member_cards` + where +
		buildCardOrder(query.SortBy, query.SortOrder) +
		` LIMIT ` + args.add(limit) + ` OFFSET ` + args.add(offset)

	cards, err := m.queryCards(ctx, sql, args.values...)
	if err != nil {
		return nil, 0, convertErr(err, "listing member cards")
	}
	return cards, total, nil
}

// Export returns every card matching filter, newest order first.
func (m *MemberCardRepository) Export(ctx context.Context, filter repoargs.CardFilter) ([]domain.MemberCard, error) {
	args := &queryArgs{}
	sql := `SELECT ` + memberCardColumns + ` FROM member_cards` + buildCardWhere(filter, args) +
		buildCardOrder("orderTime", repoargs.SortDesc)

	cards, err := m.queryCards(ctx, sql, args.values...)
	if err != nil {
		return nil, convertErr(err, "exporting member cards")
	}
	return cards, nil
}

func (m *MemberCardRepository) queryCards(ctx context.Context, sql string, args ...any) ([]domain.MemberCard, error) {
	rows, err := m.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	defer rows.Close()

	cards := make([]domain.MemberCard, 0)
	for rows.Next() {
		card, scanErr := scanMemberCard(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err() //nolint:wrapcheck
}

func insertArgs(card domain.CardInput) []any {
	status := card.Status
	if status == "" {
		status = domain.DefaultCardStatus
	}
	return []any{
		card.BatchNumber,
		card.Merchant,
		card.Supplier,
		card.ProductName,
		card.FaceValue,
		card.Price,
		card.ImportPrice,
		card.CardNumber,
		card.CardPassword,
		card.OrderTime,
		string(status),
	}
}

func scanMemberCard(row pgx.Row) (*domain.MemberCard, error) {
	var (
		card   domain.MemberCard
		status string
	)
	if err := row.Scan(
		&card.ID,
		&card.CreatedAt,
		&card.UpdatedAt,
		&card.BatchNumber,
		&card.Merchant,
		&card.Supplier,
		&card.ProductName,
		&card.FaceValue,
		&card.Price,
		&card.ImportPrice,
		&card.CardNumber,
		&card.CardPassword,
		&card.OrderTime,
		&status,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	card.Status = domain.CardStatusType(status)
	return &card, nil
}
