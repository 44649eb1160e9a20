package game

import (
	"bingoo_backend/internal/config"
	"bingoo_backend/internal/middleware"
	"bingoo_backend/internal/model"
	"bingoo_backend/internal/repository/balance_cache_repo"
	"bingoo_backend/internal/service"
	"bingoo_backend/internal/service/settlement"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

const testUserID = 1

// stubTxManager - выполняет функцию под общим мьютексом,
// моделируя сериализуемые транзакции БД.
// Вложенный Do присоединяется к уже открытой транзакции
type stubTxManager struct {
	mu sync.Mutex
}

type txKey struct{}

func (m *stubTxManager) Do(ctx context.Context, fn func(context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

func (m *stubTxManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(context.Context) error) error {
	return fn(ctx)
}

type memUserRepo struct {
	mu       sync.Mutex
	balances map[int]int
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
	return r.balances[id], nil
}

func (r *memUserRepo) UpdateBalance(_ context.Context, id int, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.balances[id] = amount
	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.GameSession
}

func copySession(s *model.GameSession) *model.GameSession {
	cp := *s
	cp.Board = append([]model.CardSlot(nil), s.Board...)
	if s.CompletedAt != nil {
		t := *s.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

func (r *memSessionRepo) CreateSession(_ context.Context, s *model.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = copySession(s)
	return nil
}

func (r *memSessionRepo) GetSession(_ context.Context, id string) (*model.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return copySession(s), nil
}

func (r *memSessionRepo) UpdateSession(_ context.Context, s *model.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; !ok {
		return model.ErrSessionNotFound
	}
	r.sessions[s.ID] = copySession(s)
	return nil
}

// memFlipRepo - хранит флипы и повторяет уникальный констрейнт
// (session_id, card_index) из БД
type memFlipRepo struct {
	mu    sync.Mutex
	flips []model.FlipRecord
	seen  map[string]bool
}

func (r *memFlipRepo) CreateFlip(_ context.Context, f *model.FlipRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fmt.Sprintf("%s/%d", f.SessionID, f.CardIndex)
	if r.seen[key] {
		return errors.New("duplicate card flip")
	}
	r.seen[key] = true
	r.flips = append(r.flips, *f)
	return nil
}

func (r *memFlipRepo) GetFlips(_ context.Context, sessionID string) ([]model.FlipRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.FlipRecord
	for _, f := range r.flips {
		if f.SessionID == sessionID {
			res = append(res, f)
		}
	}
	return res, nil
}

type memTxRepo struct {
	mu   sync.Mutex
	txs  []model.Transaction
	next int
}

func (r *memTxRepo) CreateTransaction(_ context.Context, tx *model.Transaction) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	tx.ID = r.next
	r.txs = append(r.txs, *tx)
	return tx.ID, nil
}

func (r *memTxRepo) GetWinBySessionID(_ context.Context, sessionID string) (*model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.txs {
		if tx.SessionID == sessionID && tx.Type == model.TransactionWin && tx.Status == model.StatusCompleted {
			cp := tx
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTxRepo) ListByUser(_ context.Context, userID int, limit int) ([]model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []model.Transaction
	for i := len(r.txs) - 1; i >= 0 && len(res) < limit; i-- {
		if r.txs[i].UserID == userID {
			res = append(res, r.txs[i])
		}
	}
	return res, nil
}

func (r *memTxRepo) countByType(txType model.TransactionType, sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, tx := range r.txs {
		if tx.Type == txType && tx.SessionID == sessionID {
			count++
		}
	}
	return count
}

type memCauseRepo struct {
	cause *model.Cause
	paid  int
}

func (r *memCauseRepo) GetCause(_ context.Context, _ int) (*model.Cause, error) {
	if r.cause == nil {
		return nil, errors.New("cause not found")
	}
	return r.cause, nil
}

func (r *memCauseRepo) CountPaidCommunities(_ context.Context, _ int) (int, error) {
	return r.paid, nil
}

type staticGameConfig struct {
	variants map[string]config.GameVariant
}

func (c *staticGameConfig) Variant(name string) (config.GameVariant, bool) {
	v, ok := c.variants[name]
	return v, ok
}

func (c *staticGameConfig) Variants() []config.GameVariant {
	var res []config.GameVariant
	for _, v := range c.variants {
		res = append(res, v)
	}
	return res
}

type testEnv struct {
	game     service.GameService
	users    *memUserRepo
	sessions *memSessionRepo
	flips    *memFlipRepo
	txs      *memTxRepo
	causes   *memCauseRepo
}

func newTestEnv(balance int) *testEnv {
	cfg := &staticGameConfig{variants: map[string]config.GameVariant{
		"classic9": testVariant(),
		"cause": {
			Name:            "cause",
			GridSize:        16,
			MinBet:          20,
			MaxFlips:        1,
			MinWinningSlots: 1,
			MaxWinningSlots: 1,
			CausePrize:      true,
		},
	}}

	env := &testEnv{
		users:    &memUserRepo{balances: map[int]int{testUserID: balance}},
		sessions: &memSessionRepo{sessions: map[string]*model.GameSession{}},
		flips:    &memFlipRepo{seen: map[string]bool{}},
		txs:      &memTxRepo{},
		causes:   &memCauseRepo{},
	}

	txManager := &stubTxManager{}
	settle := settlement.NewSettlementService(
		env.users, env.txs, balance_cache_repo.NewBalanceCacheRepository(), txManager)
	env.game = NewGameService(cfg, env.sessions, env.flips, env.users, env.causes, settle, txManager)

	return env
}

func testCtx() context.Context {
	return middleware.WithUserID(context.Background(), testUserID)
}

// findCard - индекс призовой или непризовой закрытой карты сессии
func findCard(t *testing.T, env *testEnv, sessionID string, prize bool) int {
	t.Helper()
	session := env.sessions.sessions[sessionID]
	for _, c := range session.Board {
		if c.IsPrize == prize && !c.Revealed {
			return c.Index
		}
	}
	t.Fatalf("no card with prize=%v on board", prize)
	return -1
}

func TestStartGame(t *testing.T) {
	t.Run("insufficient balance rejects before any mutation", func(t *testing.T) {
		env := newTestEnv(3)

		_, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 5})
		if !errors.Is(err, model.ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}

		if balance, _ := env.users.GetBalance(context.Background(), testUserID); balance != 3 {
			t.Errorf("balance changed on rejected start: %d", balance)
		}
		if len(env.txs.txs) != 0 {
			t.Errorf("ledger has %d entries after rejected start", len(env.txs.txs))
		}
		if len(env.sessions.sessions) != 0 {
			t.Errorf("session created after rejected start")
		}
	})

	t.Run("bet below variant minimum", func(t *testing.T) {
		env := newTestEnv(100)

		_, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 4})
		if !errors.Is(err, model.ErrBetTooSmall) {
			t.Fatalf("expected ErrBetTooSmall, got %v", err)
		}
	})

	t.Run("unknown variant", func(t *testing.T) {
		env := newTestEnv(100)

		_, err := env.game.Start(testCtx(), model.StartGame{Variant: "nope", Bet: 5})
		if !errors.Is(err, model.ErrUnknownVariant) {
			t.Fatalf("expected ErrUnknownVariant, got %v", err)
		}
	})

	t.Run("successful start debits bet and fixes the board", func(t *testing.T) {
		env := newTestEnv(100)

		res, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 5})
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}

		if res.Balance != 95 {
			t.Errorf("expected balance 95 after debit, got %d", res.Balance)
		}
		if res.GridSize != 9 || res.MaxFlips != 3 {
			t.Errorf("unexpected variant params: grid=%d flips=%d", res.GridSize, res.MaxFlips)
		}

		if got := env.txs.countByType(model.TransactionBet, res.SessionID); got != 1 {
			t.Errorf("expected 1 BET transaction, got %d", got)
		}

		session := env.sessions.sessions[res.SessionID]
		if session.State != model.StateInProgress {
			t.Errorf("expected in_progress, got %s", session.State)
		}

		prizeCount, prizeTotal := 0, 0
		for _, c := range session.Board {
			if c.IsPrize {
				prizeCount++
				prizeTotal += c.Prize
			}
		}
		if prizeCount < 1 || prizeCount > 3 {
			t.Errorf("prize card count %d outside [1,3]", prizeCount)
		}
		if prizeTotal > 100 {
			t.Errorf("aggregate prize %d exceeds variant max 100", prizeTotal)
		}
	})
}

func TestFlip(t *testing.T) {
	t.Run("losing flips exhaust the session", func(t *testing.T) {
		env := newTestEnv(100)

		res, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 5})
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}

		var last *model.FlipResult
		for i := 0; i < 3; i++ {
			idx := findCard(t, env, res.SessionID, false)
			last, err = env.game.Flip(testCtx(), res.SessionID, idx)
			if err != nil {
				t.Fatalf("flip %d failed: %v", i, err)
			}
			if last.IsWinning {
				t.Fatalf("non-prize card reported winning")
			}
		}

		if last.State != model.StateLost {
			t.Errorf("expected lost after max flips, got %s", last.State)
		}
		if last.FlipsLeft != 0 {
			t.Errorf("expected 0 flips left, got %d", last.FlipsLeft)
		}
		if got := env.txs.countByType(model.TransactionWin, res.SessionID); got != 0 {
			t.Errorf("lost session has %d WIN transactions", got)
		}
		if balance, _ := env.users.GetBalance(context.Background(), testUserID); balance != 95 {
			t.Errorf("expected balance 95 after loss, got %d", balance)
		}

		// Карты завершенной сессии больше не открываются, итог идемпотентен
		again, err := env.game.Flip(testCtx(), res.SessionID, findCard(t, env, res.SessionID, true))
		if err != nil {
			t.Fatalf("flip on terminal session: %v", err)
		}
		if again.State != model.StateLost || again.Prize != 0 {
			t.Errorf("terminal flip returned %s prize=%d", again.State, again.Prize)
		}
	})

	t.Run("winning flip credits prize exactly once", func(t *testing.T) {
		env := newTestEnv(100)

		res, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 5})
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}

		idx := findCard(t, env, res.SessionID, true)
		session := env.sessions.sessions[res.SessionID]
		wantPrize := session.Board[idx].Prize

		flip, err := env.game.Flip(testCtx(), res.SessionID, idx)
		if err != nil {
			t.Fatalf("flip failed: %v", err)
		}

		if !flip.IsWinning || flip.State != model.StateWon {
			t.Fatalf("expected win, got winning=%v state=%s", flip.IsWinning, flip.State)
		}
		if flip.Prize != wantPrize {
			t.Errorf("expected prize %d, got %d", wantPrize, flip.Prize)
		}
		if flip.Balance != 95+wantPrize {
			t.Errorf("expected balance %d, got %d", 95+wantPrize, flip.Balance)
		}

		if got := env.txs.countByType(model.TransactionWin, res.SessionID); got != 1 {
			t.Fatalf("expected exactly 1 WIN transaction, got %d", got)
		}

		// Повторные флипы завершенной сессии не трогают леджер
		for i := 0; i < 5; i++ {
			again, err := env.game.Flip(testCtx(), res.SessionID, idx)
			if err != nil {
				t.Fatalf("terminal flip failed: %v", err)
			}
			if again.State != model.StateWon || again.Prize != wantPrize {
				t.Errorf("terminal flip returned %s prize=%d", again.State, again.Prize)
			}
		}
		if got := env.txs.countByType(model.TransactionWin, res.SessionID); got != 1 {
			t.Errorf("double credit: %d WIN transactions", got)
		}
		if balance, _ := env.users.GetBalance(context.Background(), testUserID); balance != 95+wantPrize {
			t.Errorf("balance mutated by terminal flips: %d", balance)
		}
	})

	t.Run("no double credit under concurrent terminal flips", func(t *testing.T) {
		env := newTestEnv(100)

		res, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 5})
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}
		idx := findCard(t, env, res.SessionID, true)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = env.game.Flip(testCtx(), res.SessionID, idx)
			}()
		}
		wg.Wait()

		if got := env.txs.countByType(model.TransactionWin, res.SessionID); got != 1 {
			t.Errorf("expected exactly 1 WIN transaction, got %d", got)
		}
	})

	t.Run("invalid flips are rejected locally", func(t *testing.T) {
		env := newTestEnv(100)

		res, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 5})
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}

		if _, err := env.game.Flip(testCtx(), res.SessionID, -1); !errors.Is(err, model.ErrInvalidFlip) {
			t.Errorf("negative index: expected ErrInvalidFlip, got %v", err)
		}
		if _, err := env.game.Flip(testCtx(), res.SessionID, 9); !errors.Is(err, model.ErrInvalidFlip) {
			t.Errorf("index out of range: expected ErrInvalidFlip, got %v", err)
		}

		idx := findCard(t, env, res.SessionID, false)
		if _, err := env.game.Flip(testCtx(), res.SessionID, idx); err != nil {
			t.Fatalf("flip failed: %v", err)
		}
		if _, err := env.game.Flip(testCtx(), res.SessionID, idx); !errors.Is(err, model.ErrInvalidFlip) {
			t.Errorf("repeat index: expected ErrInvalidFlip, got %v", err)
		}

		ledger := env.txs.countByType(model.TransactionWin, res.SessionID) +
			env.txs.countByType(model.TransactionBet, res.SessionID)
		if ledger != 1 {
			t.Errorf("rejected flips touched the ledger: %d entries", ledger)
		}
	})

	t.Run("flip records are unique per card", func(t *testing.T) {
		env := newTestEnv(100)

		res, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 5})
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}

		for i := 0; i < 3; i++ {
			_, err = env.game.Flip(testCtx(), res.SessionID, findCard(t, env, res.SessionID, false))
			if err != nil {
				t.Fatalf("flip failed: %v", err)
			}
		}

		flips, _ := env.flips.GetFlips(context.Background(), res.SessionID)
		seen := map[int]bool{}
		for _, f := range flips {
			if seen[f.CardIndex] {
				t.Errorf("card %d flipped twice", f.CardIndex)
			}
			seen[f.CardIndex] = true
		}
		if len(flips) != 3 {
			t.Errorf("expected 3 flip records, got %d", len(flips))
		}
	})

	t.Run("foreign session is not visible", func(t *testing.T) {
		env := newTestEnv(100)

		res, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 5})
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}

		otherCtx := middleware.WithUserID(context.Background(), 2)
		if _, err := env.game.Flip(otherCtx, res.SessionID, 0); !errors.Is(err, model.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound for foreign user, got %v", err)
		}
	})
}

func TestFinish(t *testing.T) {
	t.Run("running session finalizes as lost with zero prize", func(t *testing.T) {
		env := newTestEnv(100)

		res, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 5})
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}

		fin, err := env.game.Finish(testCtx(), res.SessionID)
		if err != nil {
			t.Fatalf("finish failed: %v", err)
		}
		if fin.State != model.StateLost || fin.HasWon || fin.Prize != 0 {
			t.Errorf("expected lost/0, got %s hasWon=%v prize=%d", fin.State, fin.HasWon, fin.Prize)
		}
	})

	t.Run("finished session keeps its recorded outcome", func(t *testing.T) {
		env := newTestEnv(100)

		res, err := env.game.Start(testCtx(), model.StartGame{Variant: "classic9", Bet: 5})
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}
		flip, err := env.game.Flip(testCtx(), res.SessionID, findCard(t, env, res.SessionID, true))
		if err != nil {
			t.Fatalf("flip failed: %v", err)
		}

		fin, err := env.game.Finish(testCtx(), res.SessionID)
		if err != nil {
			t.Fatalf("finish failed: %v", err)
		}
		if fin.State != model.StateWon || fin.Prize != flip.Prize {
			t.Errorf("finish overwrote outcome: %s prize=%d", fin.State, fin.Prize)
		}
		if got := env.txs.countByType(model.TransactionWin, res.SessionID); got != 1 {
			t.Errorf("expected 1 WIN transaction, got %d", got)
		}
	})
}

func TestCauseVariant(t *testing.T) {
	t.Run("rejects when not all communities paid", func(t *testing.T) {
		env := newTestEnv(100)
		env.causes.cause = &model.Cause{
			ID: 7, Status: model.CauseActive, WinningAmount: 500, MaxCommunities: 2,
		}
		env.causes.paid = 1

		_, err := env.game.Start(testCtx(), model.StartGame{Variant: "cause", Bet: 20, CauseID: 7})
		if !errors.Is(err, model.ErrNotEligible) {
			t.Fatalf("expected ErrNotEligible, got %v", err)
		}

		// Отказ происходит до дебета
		if balance, _ := env.users.GetBalance(context.Background(), testUserID); balance != 100 {
			t.Errorf("balance changed on ineligible cause: %d", balance)
		}
		if len(env.txs.txs) != 0 {
			t.Errorf("ledger touched on ineligible cause")
		}
	})

	t.Run("rejects inactive cause", func(t *testing.T) {
		env := newTestEnv(100)
		env.causes.cause = &model.Cause{
			ID: 7, Status: model.CausePending, WinningAmount: 500, MaxCommunities: 2,
		}
		env.causes.paid = 2

		_, err := env.game.Start(testCtx(), model.StartGame{Variant: "cause", Bet: 20, CauseID: 7})
		if !errors.Is(err, model.ErrNotEligible) {
			t.Fatalf("expected ErrNotEligible, got %v", err)
		}
	})

	t.Run("eligible cause plays a single card for the cause prize", func(t *testing.T) {
		env := newTestEnv(100)
		env.causes.cause = &model.Cause{
			ID: 7, Status: model.CauseActive, WinningAmount: 500, MaxCommunities: 2,
		}
		env.causes.paid = 2

		res, err := env.game.Start(testCtx(), model.StartGame{Variant: "cause", Bet: 20, CauseID: 7})
		if err != nil {
			t.Fatalf("start failed: %v", err)
		}

		session := env.sessions.sessions[res.SessionID]
		prizeCount := 0
		for _, c := range session.Board {
			if c.IsPrize {
				prizeCount++
				if c.Prize != 500 {
					t.Errorf("expected cause prize 500, got %d", c.Prize)
				}
			}
		}
		if prizeCount != 1 {
			t.Errorf("expected exactly 1 prize card, got %d", prizeCount)
		}
	})
}
