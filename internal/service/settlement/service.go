package settlement

import (
	"bingoo_backend/internal/repository"
	"bingoo_backend/internal/service"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	userRepo  repository.UserRepository
	txRepo    repository.TransactionRepository
	cacheRepo repository.BalanceCacheRepository
	txManager trm.Manager
}

// NewSettlementService - единственная точка мутации баланса.
// Игровой движок и хендлеры не пишут в баланс напрямую
func NewSettlementService(
	userRepo repository.UserRepository,
	txRepo repository.TransactionRepository,
	cacheRepo repository.BalanceCacheRepository,
	txManager trm.Manager,
) service.SettlementService {
	return &serv{
		userRepo:  userRepo,
		txRepo:    txRepo,
		cacheRepo: cacheRepo,
		txManager: txManager,
	}
}
