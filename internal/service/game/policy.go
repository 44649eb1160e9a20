package game

import (
	"bingoo_backend/internal/config"
	"bingoo_backend/internal/model"
	"context"
	"fmt"
	"math/rand"
)

// PrizePolicy - разрешенная призовая политика сессии:
// сколько призовых карт и какой у каждой номинал
type PrizePolicy struct {
	PrizeValues []int
}

// resolvePolicy - определяет призовую политику варианта.
// Для кауз-варианта дополнительно проверяет предусловия джекпота
// до любого списания со счета
func (s *serv) resolvePolicy(ctx context.Context, variant config.GameVariant, causeID int) (PrizePolicy, error) {
	if variant.CausePrize {
		return s.resolveCausePolicy(ctx, causeID)
	}

	// Количество призовых карт случайно в границах варианта
	count := variant.MinWinningSlots
	if variant.MaxWinningSlots > variant.MinWinningSlots {
		count += rand.Intn(variant.MaxWinningSlots - variant.MinWinningSlots + 1)
	}

	// Номиналы случайны, суммарно не превышают максимальный приз варианта
	values := make([]int, count)
	limit := variant.MaxPrize / count
	if limit < 1 {
		limit = 1
	}
	for i := range values {
		values[i] = 1 + rand.Intn(limit)
	}

	return PrizePolicy{PrizeValues: values}, nil
}

// resolveCausePolicy - джекпот кауза: ровно одна призовая карта
// с номиналом из WinningAmount активного кауза.
// Кауз должен быть активен и полностью оплачен всеми сообществами
func (s *serv) resolveCausePolicy(ctx context.Context, causeID int) (PrizePolicy, error) {
	cause, err := s.causeRepo.GetCause(ctx, causeID)
	if err != nil {
		return PrizePolicy{}, fmt.Errorf("failed to get cause: %w", err)
	}

	if cause.Status != model.CauseActive {
		return PrizePolicy{}, model.ErrNotEligible
	}

	paid, err := s.causeRepo.CountPaidCommunities(ctx, causeID)
	if err != nil {
		return PrizePolicy{}, fmt.Errorf("failed to count paid communities: %w", err)
	}
	if paid != cause.MaxCommunities {
		return PrizePolicy{}, model.ErrNotEligible
	}

	if cause.WinningAmount <= 0 {
		return PrizePolicy{}, model.ErrNotEligible
	}

	return PrizePolicy{PrizeValues: []int{cause.WinningAmount}}, nil
}
