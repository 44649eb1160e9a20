package settlement

import (
	"bingoo_backend/internal/model"
	"context"
	"errors"
	"time"
)

// DebitBet - списывает ставку с баланса и пишет BET транзакцию.
// Проверка и декремент баланса идут в одной транзакции БД: при нехватке
// средств не остается ни изменения баланса, ни висящей PENDING записи
func (s *serv) DebitBet(ctx context.Context, userID int, amount int, sessionID string) (*model.Transaction, error) {
	if amount <= 0 {
		return nil, errors.New("debit amount must be positive")
	}

	tx := &model.Transaction{
		UserID:    userID,
		Type:      model.TransactionBet,
		Amount:    amount,
		Status:    model.StatusCompleted,
		SessionID: sessionID,
		CreatedAt: time.Now(),
	}

	var newBalance int

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return err
		}
		if balance < amount {
			return model.ErrInsufficientBalance
		}

		newBalance = balance - amount
		if err := s.userRepo.UpdateBalance(txCtx, userID, newBalance); err != nil {
			return err
		}

		tx.ID, err = s.txRepo.CreateTransaction(txCtx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Оптимистичное обновление зеркала. Если внешняя транзакция
	// откатится, фоновая сверка вернет значение из БД
	s.cacheRepo.Set(userID, newBalance)

	return tx, nil
}

// Deposit - пополнение счета. Пишет DEPOSIT транзакцию и
// увеличивает баланс атомарно
func (s *serv) Deposit(ctx context.Context, userID int, amount int) (*model.Transaction, error) {
	if amount <= 0 {
		return nil, errors.New("deposit amount must be positive")
	}

	tx := &model.Transaction{
		UserID:    userID,
		Type:      model.TransactionDeposit,
		Amount:    amount,
		Status:    model.StatusCompleted,
		CreatedAt: time.Now(),
	}

	var newBalance int

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		balance, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return err
		}

		newBalance = balance + amount
		if err := s.userRepo.UpdateBalance(txCtx, userID, newBalance); err != nil {
			return err
		}

		tx.ID, err = s.txRepo.CreateTransaction(txCtx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cacheRepo.Set(userID, newBalance)

	return tx, nil
}

// Transactions - история леджера пользователя
func (s *serv) Transactions(ctx context.Context, userID int, limit int) ([]model.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.txRepo.ListByUser(ctx, userID, limit)
}
