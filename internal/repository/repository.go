package repository

import (
	"bingoo_backend/internal/model"
	"context"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, sessionID string) (*model.GameSession, error)
	// UpdateSession - сохраняет состояние, флаги выигрыша, счетчик флипов,
	// раскрытые карты и отметку завершения
	UpdateSession(ctx context.Context, session *model.GameSession) error
}

type FlipRepository interface {
	CreateFlip(ctx context.Context, flip *model.FlipRecord) error
	GetFlips(ctx context.Context, sessionID string) ([]model.FlipRecord, error)
}

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx *model.Transaction) (id int, err error)
	// GetWinBySessionID - возвращает WIN транзакцию сессии, если она уже
	// записана. Используется как защита от повторного начисления приза
	GetWinBySessionID(ctx context.Context, sessionID string) (*model.Transaction, error)
	ListByUser(ctx context.Context, userID int, limit int) ([]model.Transaction, error)
}

type CauseRepository interface {
	GetCause(ctx context.Context, causeID int) (*model.Cause, error)
	// CountPaidCommunities - сколько сообществ оплатило участие в каузе
	CountPaidCommunities(ctx context.Context, causeID int) (int, error)
}

// BalanceCacheRepository - зеркало балансов в памяти.
// Не источник истины: при расхождении побеждает значение из БД
type BalanceCacheRepository interface {
	Get(userID int) (int, bool)
	Set(userID int, balance int)
	Invalidate(userID int)
	UserIDs() []int
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetRefreshTokenBySessionID(ctx context.Context, sessionID string) (refreshToken string, err error)
	DeleteSession(ctx context.Context, sessionID string) error
	GetUserBySessionID(ctx context.Context, sessionID string) (*model.User, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByLogin(ctx context.Context, login string) (*model.User, error)

	GetBalance(ctx context.Context, id int) (int, error)
	UpdateBalance(ctx context.Context, id int, amount int) error
}
