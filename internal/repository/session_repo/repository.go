package session_repo

import (
	"bingoo_backend/internal/model"
	"bingoo_backend/internal/repository"
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

const (
	table          = "game_sessions"
	colID          = "id"
	colUserID      = "user_id"
	colVariant     = "variant"
	colBet         = "bet"
	colUsePoints   = "use_points"
	colState       = "state"
	colHasWon      = "has_won"
	colPrize       = "prize"
	colFlipsUsed   = "flips_used"
	colCards       = "cards"
	colCreatedAt   = "created_at"
	colCompletedAt = "completed_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewSessionRepository(dbc *pgxpool.Pool) repository.SessionRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateSession - создает игровую сессию в БД.
// Карты сериализуются в jsonb как [index, is_prize, prize, revealed]
func (r *repo) CreateSession(ctx context.Context, session *model.GameSession) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colUserID, colVariant, colBet, colUsePoints,
			colState, colHasWon, colPrize, colFlipsUsed, colCards, colCreatedAt).
		Values(session.ID, session.UserID, session.Variant, session.Bet, session.UsePoints,
			string(session.State), session.HasWon, session.Prize, session.FlipsUsed,
			encodeCards(session.Board), session.CreatedAt).
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

// GetSession - возвращает сессию со всеми картами по ее ID
func (r *repo) GetSession(ctx context.Context, sessionID string) (*model.GameSession, error) {
	// Формируем запрос
	query := sq.Select(colID, colUserID, colVariant, colBet, colUsePoints,
		colState, colHasWon, colPrize, colFlipsUsed, colCards, colCreatedAt, colCompletedAt).
		From(table).
		Where(sq.Eq{colID: sessionID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		session     model.GameSession
		state       string
		rawCards    [][]int
		completedAt *time.Time
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(
		&session.ID, &session.UserID, &session.Variant, &session.Bet, &session.UsePoints,
		&state, &session.HasWon, &session.Prize, &session.FlipsUsed, &rawCards,
		&session.CreatedAt, &completedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	session.State = model.SessionState(state)
	session.CompletedAt = completedAt
	session.Board, err = decodeCards(rawCards)
	if err != nil {
		return nil, err
	}

	return &session, nil
}

// UpdateSession - сохраняет мутируемую часть сессии
// (состояние, выигрыш, счетчик флипов, карты, отметка завершения)
func (r *repo) UpdateSession(ctx context.Context, session *model.GameSession) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colState, string(session.State)).
		Set(colHasWon, session.HasWon).
		Set(colPrize, session.Prize).
		Set(colFlipsUsed, session.FlipsUsed).
		Set(colCards, encodeCards(session.Board)).
		Set(colCompletedAt, session.CompletedAt).
		Where(sq.Eq{colID: session.ID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return model.ErrSessionNotFound
	}

	return nil
}

// encodeCards - конвертирует карты в [][]int для jsonb колонки
func encodeCards(board []model.CardSlot) [][]int {
	rawData := make([][]int, 0, len(board))
	for _, c := range board {
		isPrize := 0
		if c.IsPrize {
			isPrize = 1
		}
		revealed := 0
		if c.Revealed {
			revealed = 1
		}
		rawData = append(rawData, []int{c.Index, isPrize, c.Prize, revealed})
	}
	return rawData
}

// decodeCards - обратная конвертация из jsonb
func decodeCards(rawData [][]int) ([]model.CardSlot, error) {
	board := make([]model.CardSlot, 0, len(rawData))
	for _, item := range rawData {
		if len(item) != 4 {
			return nil, errors.New("invalid cards structure: expected 4 elements per card")
		}
		board = append(board, model.CardSlot{
			Index:    item[0],
			IsPrize:  item[1] == 1,
			Prize:    item[2],
			Revealed: item[3] == 1,
		})
	}
	return board, nil
}
