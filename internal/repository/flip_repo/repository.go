package flip_repo

import (
	"bingoo_backend/internal/model"
	"bingoo_backend/internal/repository"
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

const (
	table         = "card_flips"
	colSessionID  = "session_id"
	colCardIndex  = "card_index"
	colWasWinning = "was_winning"
	colPrize      = "prize"
	colCreatedAt  = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewFlipRepository(dbc *pgxpool.Pool) repository.FlipRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateFlip - записывает открытие карты.
// Уникальность (session_id, card_index) обеспечивается констрейнтом в БД
func (r *repo) CreateFlip(ctx context.Context, flip *model.FlipRecord) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colSessionID, colCardIndex, colWasWinning, colPrize, colCreatedAt).
		Values(flip.SessionID, flip.CardIndex, flip.WasWinning, flip.Prize, flip.CreatedAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// GetFlips - возвращает все флипы сессии в порядке их совершения
func (r *repo) GetFlips(ctx context.Context, sessionID string) ([]model.FlipRecord, error) {
	// Формируем запрос
	query := sq.Select(colSessionID, colCardIndex, colWasWinning, colPrize, colCreatedAt).
		From(table).
		Where(sq.Eq{colSessionID: sessionID}).
		OrderBy(colCreatedAt + " ASC").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flips []model.FlipRecord
	for rows.Next() {
		var f model.FlipRecord
		err = rows.Scan(&f.SessionID, &f.CardIndex, &f.WasWinning, &f.Prize, &f.CreatedAt)
		if err != nil {
			return nil, err
		}
		flips = append(flips, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return flips, nil
}
