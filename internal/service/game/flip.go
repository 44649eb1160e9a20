package game

import (
	"bingoo_backend/internal/middleware"
	"bingoo_backend/internal/model"
	"context"
	"errors"
	"time"
)

// Flip - открывает одну карту сессии.
// Вызовы сериализуются по ID сессии: пока не завершился предыдущий флип
// (включая запись в леджер), следующий не начинается
func (s *serv) Flip(ctx context.Context, sessionID string, cardIndex int) (*model.FlipResult, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, model.ErrSessionNotFound
	}

	variant, ok := s.gameCfg.Variant(session.Variant)
	if !ok {
		return nil, model.ErrUnknownVariant
	}

	// Повторный флип завершенной сессии идемпотентен:
	// возвращаем зафиксированный итог, леджер не трогаем
	if session.State.IsTerminal() {
		return s.terminalResult(ctx, session, cardIndex)
	}

	// Валидация флипа: индекс в границах поля, карта еще закрыта,
	// лимит флипов не исчерпан
	if cardIndex < 0 || cardIndex >= len(session.Board) {
		return nil, model.ErrInvalidFlip
	}
	if session.Board[cardIndex].Revealed {
		return nil, model.ErrInvalidFlip
	}
	if session.FlipsUsed >= variant.MaxFlips {
		return nil, model.ErrInvalidFlip
	}

	card := &session.Board[cardIndex]
	card.Revealed = true
	session.FlipsUsed++

	won := card.IsPrize
	if won {
		now := time.Now()
		session.State = model.StateWon
		session.HasWon = true
		session.Prize = card.Prize
		session.CompletedAt = &now
	} else if session.FlipsUsed >= variant.MaxFlips {
		now := time.Now()
		session.State = model.StateLost
		session.CompletedAt = &now
	}

	var balance int

	// Запись флипа, обновление сессии и начисление приза атомарны.
	// Если леджер не записался, откатывается и флип: клиент повторит
	// запрос, исход не изменится - раскладка зафиксирована на старте
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		err := s.flipRepo.CreateFlip(txCtx, &model.FlipRecord{
			SessionID:  session.ID,
			CardIndex:  cardIndex,
			WasWinning: won,
			Prize:      card.Prize,
			CreatedAt:  time.Now(),
		})
		if err != nil {
			return err
		}

		if err := s.sessRepo.UpdateSession(txCtx, session); err != nil {
			return err
		}

		if won {
			// Ровно один кредит на выигравшую сессию,
			// сумма строго равна призу сессии
			_, err = s.settlement.CreditPrize(txCtx, userID, session.ID, session.Prize)
			if err != nil {
				return err
			}
		}

		balance, err = s.userRepo.GetBalance(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if session.State.IsTerminal() {
		s.releaseLock(session.ID)
	}

	return &model.FlipResult{
		SessionID: session.ID,
		CardIndex: cardIndex,
		IsWinning: won,
		Prize:     card.Prize,
		State:     session.State,
		FlipsLeft: variant.MaxFlips - session.FlipsUsed,
		Balance:   balance,
	}, nil
}

// terminalResult - итог для флипа по уже завершенной сессии
func (s *serv) terminalResult(ctx context.Context, session *model.GameSession, cardIndex int) (*model.FlipResult, error) {
	variant, _ := s.gameCfg.Variant(session.Variant)

	balance, err := s.userRepo.GetBalance(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	res := &model.FlipResult{
		SessionID: session.ID,
		CardIndex: cardIndex,
		State:     session.State,
		Prize:     session.Prize,
		IsWinning: session.HasWon,
		FlipsLeft: variant.MaxFlips - session.FlipsUsed,
		Balance:   balance,
	}
	return res, nil
}
