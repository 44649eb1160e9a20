package game

import (
	"bingoo_backend/internal/config"
	"bingoo_backend/internal/repository"
	"bingoo_backend/internal/service"
	"sync"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	gameCfg    config.GameConfig
	sessRepo   repository.SessionRepository
	flipRepo   repository.FlipRepository
	userRepo   repository.UserRepository
	causeRepo  repository.CauseRepository
	settlement service.SettlementService
	txManager  trm.Manager

	// Флипы внутри одной сессии строго последовательны.
	// Блокировка по ID сессии исключает гонку двух флипов,
	// одновременно увидевших in_progress
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewGameService - создать движок карточной игры
func NewGameService(
	gameCfg config.GameConfig,
	sessRepo repository.SessionRepository,
	flipRepo repository.FlipRepository,
	userRepo repository.UserRepository,
	causeRepo repository.CauseRepository,
	settlement service.SettlementService,
	txManager trm.Manager,
) service.GameService {
	return &serv{
		gameCfg:    gameCfg,
		sessRepo:   sessRepo,
		flipRepo:   flipRepo,
		userRepo:   userRepo,
		causeRepo:  causeRepo,
		settlement: settlement,
		txManager:  txManager,
		locks:      make(map[string]*sync.Mutex),
	}
}

// sessionLock - мьютекс конкретной сессии
func (s *serv) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// releaseLock - убирает мьютекс завершенной сессии из карты
func (s *serv) releaseLock(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, sessionID)
}
