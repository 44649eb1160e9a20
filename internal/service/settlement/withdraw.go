package settlement

import (
	"bingoo_backend/internal/model"
	"context"
	"errors"
	"time"
)

// Withdraw - заявка на вывод баллов. Баллы списываются сразу,
// транзакция остается в PENDING до обработки выплаты вне сервиса
func (s *serv) Withdraw(ctx context.Context, userID int, amount int) (*model.Transaction, error) {
	if amount <= 0 {
		return nil, errors.New("withdrawal amount must be positive")
	}

	tx := &model.Transaction{
		UserID:    userID,
		Type:      model.TransactionWithdrawal,
		Amount:    amount,
		Status:    model.StatusPending,
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

	s.cacheRepo.Set(userID, newBalance)

	return tx, nil
}
