package service

import (
	"bingoo_backend/internal/model"
	"context"
)

type GameService interface {
	Start(ctx context.Context, req model.StartGame) (*model.StartGameResult, error)
	Flip(ctx context.Context, sessionID string, cardIndex int) (*model.FlipResult, error)
	Finish(ctx context.Context, sessionID string) (*model.FinishResult, error)
	Session(ctx context.Context, sessionID string) (*model.GameSession, error)
}

type SettlementService interface {
	// DebitBet - атомарно списывает ставку и пишет BET транзакцию.
	// При нехватке баланса сессия не стартует и следов в леджере не остается
	DebitBet(ctx context.Context, userID int, amount int, sessionID string) (*model.Transaction, error)
	// CreditPrize - начисляет приз ровно один раз на выигравшую сессию
	CreditPrize(ctx context.Context, userID int, sessionID string, amount int) (*model.Transaction, error)
	Deposit(ctx context.Context, userID int, amount int) (*model.Transaction, error)
	// Withdraw - списывает баллы и создает PENDING заявку на вывод
	Withdraw(ctx context.Context, userID int, amount int) (*model.Transaction, error)
	Transactions(ctx context.Context, userID int, limit int) ([]model.Transaction, error)
}

type BalanceService interface {
	// Balance - баланс пользователя через зеркало в памяти
	Balance(ctx context.Context, userID int) (int, error)
	// Run - фоновая сверка зеркала с БД. Блокирует до отмены контекста
	Run(ctx context.Context)
}

type AuthService interface {
	Register(ctx context.Context, user *model.User) (*model.AuthData, error)
	Login(ctx context.Context, user *model.User) (*model.AuthData, error)
	Refresh(ctx context.Context, data *model.AuthData) (newAccessToken string, err error)
	Logout(ctx context.Context, sessionID string) error
}
