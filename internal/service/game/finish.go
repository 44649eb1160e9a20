package game

import (
	"bingoo_backend/internal/middleware"
	"bingoo_backend/internal/model"
	"context"
	"errors"
	"time"
)

// Finish - явное завершение сессии клиентом.
// Сервер - источник истины: незавершенная сессия закрывается как
// проигранная без приза, присланные клиентом флаги не учитываются.
// Для уже завершенной сессии возвращается зафиксированный итог
func (s *serv) Finish(ctx context.Context, sessionID string) (*model.FinishResult, error) {
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

	if !session.State.IsTerminal() {
		now := time.Now()
		session.State = model.StateLost
		session.CompletedAt = &now

		if err := s.sessRepo.UpdateSession(ctx, session); err != nil {
			return nil, err
		}
	}

	s.releaseLock(session.ID)

	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &model.FinishResult{
		SessionID: session.ID,
		State:     session.State,
		HasWon:    session.HasWon,
		Prize:     session.Prize,
		Balance:   balance,
	}, nil
}

// Session - снимок сессии для клиента.
// Призовые позиции закрытых карт не раскрываются
func (s *serv) Session(ctx context.Context, sessionID string) (*model.GameSession, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	session, err := s.sessRepo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, model.ErrSessionNotFound
	}

	// Прячем раскладку закрытых карт
	for i := range session.Board {
		if !session.Board[i].Revealed {
			session.Board[i].IsPrize = false
			session.Board[i].Prize = 0
		}
	}

	return session, nil
}
