package model

import "time"

// Состояния игровой сессии
type SessionState string

const (
	StateCreated    SessionState = "created"
	StateInProgress SessionState = "in_progress"
	StateWon        SessionState = "won"
	StateLost       SessionState = "lost"
	// Терминальное состояние для брошенных сессий.
	// Сейчас никем не выставляется, но схема его допускает
	StateExpired SessionState = "expired"
)

// IsTerminal - завершена ли сессия. После терминального состояния
// флипы не принимаются и леджер больше не трогается
func (s SessionState) IsTerminal() bool {
	return s == StateWon || s == StateLost || s == StateExpired
}

// CardSlot - одна карта на игровом поле.
// Призовая раскладка фиксируется при генерации и не меняется до конца сессии
type CardSlot struct {
	Index    int
	IsPrize  bool
	Prize    int // 0 для непризовой карты
	Revealed bool
}

// GameSession - игровая сессия одного пользователя
type GameSession struct {
	ID          string
	UserID      int
	Variant     string
	Bet         int
	UsePoints   bool
	State       SessionState
	HasWon      bool
	Prize       int // Устанавливается только при выигрыше
	FlipsUsed   int
	Board       []CardSlot
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// FlipRecord - запись об открытии одной карты.
// Индекс карты уникален в рамках сессии
type FlipRecord struct {
	SessionID  string
	CardIndex  int
	WasWinning bool
	Prize      int
	CreatedAt  time.Time
}

// StartGame - запрос на старт игры
type StartGame struct {
	Variant   string
	Bet       int
	UsePoints bool
	CauseID   int // Только для кауз-варианта
}

// StartGameResult - результат старта. Board содержит только количество
// карт, призовые позиции клиенту не раскрываются
type StartGameResult struct {
	SessionID string
	Variant   string
	GridSize  int
	MaxFlips  int
	Balance   int
}

// FlipResult - результат открытия карты
type FlipResult struct {
	SessionID string
	CardIndex int
	IsWinning bool
	Prize     int
	State     SessionState
	FlipsLeft int
	Balance   int
}

// FinishResult - итог явного завершения сессии
type FinishResult struct {
	SessionID string
	State     SessionState
	HasWon    bool
	Prize     int
	Balance   int
}
