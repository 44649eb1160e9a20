package transaction_repo

import (
	"bingoo_backend/internal/model"
	"bingoo_backend/internal/repository"
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
)

const (
	table        = "transactions"
	colID        = "id"
	colUserID    = "user_id"
	colType      = "type"
	colAmount    = "amount"
	colStatus    = "status"
	colSessionID = "session_id"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewTransactionRepository(dbc *pgxpool.Pool) repository.TransactionRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// CreateTransaction - записывает транзакцию леджера.
// Возвращает ID созданной записи
func (r *repo) CreateTransaction(ctx context.Context, tx *model.Transaction) (int, error) {
	// session_id пишем как NULL, если транзакция не привязана к сессии
	var sessionID interface{}
	if tx.SessionID != "" {
		sessionID = tx.SessionID
	}

	// Формируем запрос
	query := sq.Insert(table).
		Columns(colUserID, colType, colAmount, colStatus, colSessionID, colCreatedAt).
		Values(tx.UserID, string(tx.Type), tx.Amount, string(tx.Status), sessionID, tx.CreatedAt).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetWinBySessionID - возвращает завершенную WIN транзакцию сессии.
// Возвращает nil без ошибки, если записи нет
func (r *repo) GetWinBySessionID(ctx context.Context, sessionID string) (*model.Transaction, error) {
	// Формируем запрос
	query := sq.Select(colID, colUserID, colType, colAmount, colStatus, colSessionID, colCreatedAt).
		From(table).
		Where(sq.Eq{
			colSessionID: sessionID,
			colType:      string(model.TransactionWin),
			colStatus:    string(model.StatusCompleted),
		}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	tx, err := scanTransaction(r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return tx, nil
}

// ListByUser - возвращает последние транзакции пользователя
func (r *repo) ListByUser(ctx context.Context, userID int, limit int) ([]model.Transaction, error) {
	// Формируем запрос
	query := sq.Select(colID, colUserID, colType, colAmount, colStatus, colSessionID, colCreatedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
		OrderBy(colCreatedAt + " DESC").
		Limit(uint64(limit)).
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

	var txs []model.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return txs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		tx        model.Transaction
		txType    string
		status    string
		sessionID *string
	)
	err := row.Scan(&tx.ID, &tx.UserID, &txType, &tx.Amount, &status, &sessionID, &tx.CreatedAt)
	if err != nil {
		return nil, err
	}

	tx.Type = model.TransactionType(txType)
	tx.Status = model.TransactionStatus(status)
	if sessionID != nil {
		tx.SessionID = *sessionID
	}

	return &tx, nil
}
