package balance

import (
	"bingoo_backend/internal/model"
	"bingoo_backend/internal/repository/balance_cache_repo"
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type memUserRepo struct {
	mu       sync.Mutex
	balances map[int]int
	reads    int
}

func (r *memUserRepo) CreateUser(_ context.Context, _ *model.User) (int, error) {
	return 0, errors.New("not implemented")
}

func (r *memUserRepo) GetUserByLogin(_ context.Context, _ string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (r *memUserRepo) GetBalance(_ context.Context, id int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	return r.balances[id], nil
}

func (r *memUserRepo) UpdateBalance(_ context.Context, id int, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[id] = amount
	return nil
}

type staticCacheConfig struct{}

func (staticCacheConfig) ReconcileInterval() time.Duration { return time.Minute }

func TestBalance(t *testing.T) {
	users := &memUserRepo{balances: map[int]int{1: 70}}
	cache := balance_cache_repo.NewBalanceCacheRepository()
	s := NewBalanceService(staticCacheConfig{}, users, cache).(*serv)
	ctx := context.Background()

	// Первый запрос идет в БД и наполняет зеркало
	balance, err := s.Balance(ctx, 1)
	if err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if balance != 70 {
		t.Fatalf("expected 70, got %d", balance)
	}
	if users.reads != 1 {
		t.Fatalf("expected 1 db read, got %d", users.reads)
	}

	// Повторный запрос отдается из зеркала
	if _, err := s.Balance(ctx, 1); err != nil {
		t.Fatalf("balance failed: %v", err)
	}
	if users.reads != 1 {
		t.Errorf("cached read hit the db: %d reads", users.reads)
	}

	// Баланс в БД ушел вперед, зеркало отстало
	if err := users.UpdateBalance(ctx, 1, 120); err != nil {
		t.Fatal(err)
	}
	balance, _ = s.Balance(ctx, 1)
	if balance != 70 {
		t.Fatalf("expected stale mirror value 70, got %d", balance)
	}

	// Сверка: значение из БД побеждает
	s.reconcile(ctx)
	balance, _ = s.Balance(ctx, 1)
	if balance != 120 {
		t.Errorf("expected 120 after reconcile, got %d", balance)
	}
}
