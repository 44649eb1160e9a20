package cause_repo

import (
	"bingoo_backend/internal/model"
	"bingoo_backend/internal/repository"
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table             = "causes"
	colID             = "id"
	colName           = "name"
	colStatus         = "status"
	colWinningAmount  = "winning_amount"
	colMaxCommunities = "max_communities"

	competitionsTable = "cause_competitions"
	colCauseID        = "cause_id"
	colHasPaid        = "has_paid"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewCauseRepository(dbc *pgxpool.Pool) repository.CauseRepository {
	return &repo{
		dbc: dbc,
	}
}

// GetCause - возвращает кауз по его ID
func (r *repo) GetCause(ctx context.Context, causeID int) (*model.Cause, error) {
	// Формируем запрос
	query := sq.Select(colID, colName, colStatus, colWinningAmount, colMaxCommunities).
		From(table).
		Where(sq.Eq{colID: causeID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		cause  model.Cause
		status string
	)
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(
		&cause.ID, &cause.Name, &status, &cause.WinningAmount, &cause.MaxCommunities)
	if err != nil {
		return nil, err
	}

	cause.Status = model.CauseStatus(status)
	return &cause, nil
}

// CountPaidCommunities - количество сообществ, оплативших участие в каузе
func (r *repo) CountPaidCommunities(ctx context.Context, causeID int) (int, error) {
	// Формируем запрос
	query := sq.Select("COUNT(*)").
		From(competitionsTable).
		Where(sq.Eq{
			colCauseID: causeID,
			colHasPaid: true,
		}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}
