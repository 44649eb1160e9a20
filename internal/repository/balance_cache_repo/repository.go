package balance_cache_repo

import (
	"bingoo_backend/internal/repository"
	"sync"
)

// repo - зеркало балансов в памяти. Обновляется оптимистично после
// дебета/кредита и периодически сверяется с БД. Не источник истины
type repo struct {
	mu       sync.RWMutex
	balances map[int]int
}

func NewBalanceCacheRepository() repository.BalanceCacheRepository {
	return &repo{
		balances: make(map[int]int),
	}
}

func (r *repo) Get(userID int) (int, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	balance, ok := r.balances[userID]
	return balance, ok
}

func (r *repo) Set(userID int, balance int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.balances[userID] = balance
}

func (r *repo) Invalidate(userID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.balances, userID)
}

// UserIDs - пользователи, присутствующие в зеркале.
// Используется фоновой сверкой
func (r *repo) UserIDs() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int, 0, len(r.balances))
	for id := range r.balances {
		ids = append(ids, id)
	}
	return ids
}
