package app

import (
	authAPI "bingoo_backend/internal/api/auth"
	gameAPI "bingoo_backend/internal/api/game"
	walletAPI "bingoo_backend/internal/api/wallet"
	"bingoo_backend/internal/config"
	"bingoo_backend/internal/config/env"
	"bingoo_backend/internal/middleware"
	"bingoo_backend/internal/repository"
	"bingoo_backend/internal/repository/auth_repo"
	"bingoo_backend/internal/repository/balance_cache_repo"
	"bingoo_backend/internal/repository/cause_repo"
	"bingoo_backend/internal/repository/flip_repo"
	"bingoo_backend/internal/repository/session_repo"
	"bingoo_backend/internal/repository/transaction_repo"
	"bingoo_backend/internal/repository/user_repo"
	"bingoo_backend/internal/service"
	"bingoo_backend/internal/service/auth"
	"bingoo_backend/internal/service/balance"
	"bingoo_backend/internal/service/game"
	"bingoo_backend/internal/service/settlement"
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Auth bits
	jwtCfg   config.JWTConfig
	authRepo repository.AuthRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo repository.UserRepository

	// Game bits
	gameCfg   config.GameConfig
	sessRepo  repository.SessionRepository
	flipRepo  repository.FlipRepository
	causeRepo repository.CauseRepository
	gameServ  service.GameService
	gameHand  *gameAPI.Handler

	// Wallet bits
	cacheCfg   config.BalanceCacheConfig
	txRepo     repository.TransactionRepository
	cacheRepo  repository.BalanceCacheRepository
	settleServ service.SettlementService
	balServ    service.BalanceService
	walletHand *walletAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.JWTCfg(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv: sp.AuthService(ctx),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) SessionRepository(ctx context.Context) repository.SessionRepository {
	if sp.sessRepo == nil {
		sp.sessRepo = session_repo.NewSessionRepository(sp.DBClient(ctx))
	}
	return sp.sessRepo
}

func (sp *ServiceProvider) FlipRepository(ctx context.Context) repository.FlipRepository {
	if sp.flipRepo == nil {
		sp.flipRepo = flip_repo.NewFlipRepository(sp.DBClient(ctx))
	}
	return sp.flipRepo
}

func (sp *ServiceProvider) CauseRepository(ctx context.Context) repository.CauseRepository {
	if sp.causeRepo == nil {
		sp.causeRepo = cause_repo.NewCauseRepository(sp.DBClient(ctx))
	}
	return sp.causeRepo
}

func (sp *ServiceProvider) TransactionRepository(ctx context.Context) repository.TransactionRepository {
	if sp.txRepo == nil {
		sp.txRepo = transaction_repo.NewTransactionRepository(sp.DBClient(ctx))
	}
	return sp.txRepo
}

func (sp *ServiceProvider) BalanceCacheRepository() repository.BalanceCacheRepository {
	if sp.cacheRepo == nil {
		sp.cacheRepo = balance_cache_repo.NewBalanceCacheRepository()
	}
	return sp.cacheRepo
}

func (sp *ServiceProvider) BalanceCacheCfg() config.BalanceCacheConfig {
	if sp.cacheCfg == nil {
		cfg, err := env.NewBalanceCacheConfigFromYAML("config.yaml")
		if err != nil {
			panic("failed to get balance cache config: " + err.Error())
		}
		sp.cacheCfg = cfg
	}
	return sp.cacheCfg
}

func (sp *ServiceProvider) SettlementService(ctx context.Context) service.SettlementService {
	if sp.settleServ == nil {
		sp.settleServ = settlement.NewSettlementService(
			sp.UserRepo(ctx),
			sp.TransactionRepository(ctx),
			sp.BalanceCacheRepository(),
			sp.TXManager(ctx),
		)
	}
	return sp.settleServ
}

func (sp *ServiceProvider) BalanceService(ctx context.Context) service.BalanceService {
	if sp.balServ == nil {
		sp.balServ = balance.NewBalanceService(
			sp.BalanceCacheCfg(),
			sp.UserRepo(ctx),
			sp.BalanceCacheRepository(),
		)
	}
	return sp.balServ
}

func (sp *ServiceProvider) GameService(ctx context.Context) service.GameService {
	if sp.gameServ == nil {
		sp.gameServ = game.NewGameService(
			sp.GameCfg(),
			sp.SessionRepository(ctx),
			sp.FlipRepository(ctx),
			sp.UserRepo(ctx),
			sp.CauseRepository(ctx),
			sp.SettlementService(ctx),
			sp.TXManager(ctx),
		)
	}
	return sp.gameServ
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv: sp.GameService(ctx),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) WalletHandler(ctx context.Context) *walletAPI.Handler {
	if sp.walletHand == nil {
		sp.walletHand = walletAPI.NewHandler(walletAPI.HandlerDeps{
			Settlement: sp.SettlementService(ctx),
			Balance:    sp.BalanceService(ctx),
		})
	}
	return sp.walletHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		// Game endpoints
		gameHandler := sp.GameHandler(ctx)
		r.Route("/game", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))
			rr.Post("/start", gameHandler.Start)
			rr.Post("/flip", gameHandler.Flip)
			rr.Post("/end", gameHandler.End)
			rr.Get("/session", gameHandler.Session)
		})

		// Wallet endpoints
		walletHandler := sp.WalletHandler(ctx)
		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))
			rr.Get("/balance", walletHandler.GetBalance)
			rr.Post("/deposit", walletHandler.Deposit)
			rr.Post("/withdraw", walletHandler.Withdraw)
			rr.Get("/transactions", walletHandler.Transactions)
		})

		sp.router = r
	}

	return sp.router
}
