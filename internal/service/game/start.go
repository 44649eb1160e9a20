package game

import (
	"bingoo_backend/internal/middleware"
	"bingoo_backend/internal/model"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Start - стартует игровую сессию.
// Порядок жесткий: валидация ставки -> призовая политика (здесь же
// отсекается неприемлемый кауз, до каких-либо списаний) -> списание
// ставки и создание сессии в одной транзакции
func (s *serv) Start(ctx context.Context, req model.StartGame) (*model.StartGameResult, error) {
	// Получаем ID пользователя
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user id not found in context")
	}

	// Валидация варианта и ставки
	variant, ok := s.gameCfg.Variant(req.Variant)
	if !ok {
		return nil, model.ErrUnknownVariant
	}
	if req.Bet < variant.MinBet {
		return nil, model.ErrBetTooSmall
	}

	// Призовая политика до дебета: для кауз-варианта тут
	// проверяются предусловия джекпота
	policy, err := s.resolvePolicy(ctx, variant, req.CauseID)
	if err != nil {
		return nil, err
	}

	session := &model.GameSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Variant:   variant.Name,
		Bet:       req.Bet,
		UsePoints: req.UsePoints,
		State:     model.StateCreated,
		CreatedAt: time.Now(),
	}

	var balance int

	// Списание ставки и создание сессии атомарны: если вставка сессии
	// не удалась, дебет откатывается вместе с ней
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		_, err := s.settlement.DebitBet(txCtx, userID, req.Bet, session.ID)
		if err != nil {
			return err
		}

		// Раскладка приза фиксируется при генерации и не
		// пересчитывается ни при флипах, ни при ретраях леджера
		session.Board = GenerateBoard(variant, policy)
		session.State = model.StateInProgress

		if err := s.sessRepo.CreateSession(txCtx, session); err != nil {
			return err
		}

		balance, err = s.userRepo.GetBalance(txCtx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &model.StartGameResult{
		SessionID: session.ID,
		Variant:   variant.Name,
		GridSize:  variant.GridSize,
		MaxFlips:  variant.MaxFlips,
		Balance:   balance,
	}, nil
}
