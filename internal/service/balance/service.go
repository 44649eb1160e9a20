package balance

import (
	"bingoo_backend/internal/config"
	"bingoo_backend/internal/repository"
	"bingoo_backend/internal/service"
	"context"
	"log"
	"time"
)

type serv struct {
	userRepo  repository.UserRepository
	cacheRepo repository.BalanceCacheRepository
	interval  time.Duration
}

// NewBalanceService - чтение баланса через зеркало в памяти
// с периодической сверкой против БД
func NewBalanceService(
	cfg config.BalanceCacheConfig,
	userRepo repository.UserRepository,
	cacheRepo repository.BalanceCacheRepository,
) service.BalanceService {
	return &serv{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		interval:  cfg.ReconcileInterval(),
	}
}

// Balance - возвращает баланс из зеркала.
// При промахе читает БД и наполняет зеркало
func (s *serv) Balance(ctx context.Context, userID int) (int, error) {
	if balance, ok := s.cacheRepo.Get(userID); ok {
		return balance, nil
	}

	balance, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return 0, err
	}

	s.cacheRepo.Set(userID, balance)
	return balance, nil
}

// Run - цикл сверки зеркала с БД. При расхождении побеждает
// значение из БД. Блокирует до отмены контекста
func (s *serv) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reconcile(ctx)
		}
	}
}

func (s *serv) reconcile(ctx context.Context) {
	for _, userID := range s.cacheRepo.UserIDs() {
		actual, err := s.userRepo.GetBalance(ctx, userID)
		if err != nil {
			log.Printf("balance reconcile for user %d failed: %v", userID, err)
			continue
		}

		cached, ok := s.cacheRepo.Get(userID)
		if ok && cached != actual {
			log.Printf("balance mismatch for user %d: cached %d, actual %d", userID, cached, actual)
		}
		s.cacheRepo.Set(userID, actual)
	}
}
