package settlement

import (
	"bingoo_backend/internal/model"
	"context"
	"errors"
	"log"
	"time"
)

// Исход выигрыша зафиксирован в сессии, поэтому сбой записи кредита
// можно повторять без пересчета случайности
const creditAttempts = 3

// CreditPrize - начисляет приз выигравшей сессии.
// Идемпотентность по ID сессии: если WIN транзакция уже записана,
// повторный вызов возвращает ее без нового начисления
func (s *serv) CreditPrize(ctx context.Context, userID int, sessionID string, amount int) (*model.Transaction, error) {
	if amount <= 0 {
		return nil, errors.New("credit amount must be positive")
	}

	var result *model.Transaction
	var lastErr error

	for attempt := 1; attempt <= creditAttempts; attempt++ {
		result, lastErr = s.creditOnce(ctx, userID, sessionID, amount)
		if lastErr == nil {
			return result, nil
		}
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			break
		}
		log.Printf("credit prize attempt %d for session %s failed: %v", attempt, sessionID, lastErr)
	}

	return nil, lastErr
}

func (s *serv) creditOnce(ctx context.Context, userID int, sessionID string, amount int) (*model.Transaction, error) {
	var result *model.Transaction
	var newBalance int
	cacheDirty := false

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Защита от двойного начисления
		existing, err := s.txRepo.GetWinBySessionID(txCtx, sessionID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Amount != amount {
				return errors.New("recorded win amount does not match session prize")
			}
			result = existing
			return nil
		}

		// Сначала запись в леджер, потом мутация баланса:
		// сумма WIN обязана строго совпадать с призом сессии
		tx := &model.Transaction{
			UserID:    userID,
			Type:      model.TransactionWin,
			Amount:    amount,
			Status:    model.StatusCompleted,
			SessionID: sessionID,
			CreatedAt: time.Now(),
		}
		tx.ID, err = s.txRepo.CreateTransaction(txCtx, tx)
		if err != nil {
			return err
		}

		balance, err := s.userRepo.GetBalance(txCtx, userID)
		if err != nil {
			return err
		}

		newBalance = balance + amount
		if err := s.userRepo.UpdateBalance(txCtx, userID, newBalance); err != nil {
			return err
		}

		result = tx
		cacheDirty = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cacheDirty {
		s.cacheRepo.Set(userID, newBalance)
	}

	return result, nil
}
