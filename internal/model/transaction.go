package model

import "time"

// Типы транзакций леджера
type TransactionType string

const (
	TransactionBet        TransactionType = "BET"
	TransactionWin        TransactionType = "WIN"
	TransactionRefund     TransactionType = "REFUND"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionDeposit    TransactionType = "DEPOSIT"
)

// Статусы транзакций
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "PENDING"
	StatusCompleted TransactionStatus = "COMPLETED"
	StatusFailed    TransactionStatus = "FAILED"
)

// Transaction - запись леджера. Сумма всегда неотрицательная,
// направление определяется типом
type Transaction struct {
	ID        int
	UserID    int
	Type      TransactionType
	Amount    int
	Status    TransactionStatus
	SessionID string // Пустая строка, если транзакция не привязана к сессии
	CreatedAt time.Time
}
