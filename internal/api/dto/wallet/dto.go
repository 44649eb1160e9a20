package wallet

type BalanceResponse struct {
	Points int `json:"points"` // Баланс пользователя
}

type DepositRequest struct {
	Amount int `json:"amount"` // Сумма пополнения
}

type DepositResponse struct {
	TransactionID int `json:"transaction_id"`
	Amount        int `json:"amount"`
}

type WithdrawRequest struct {
	Amount int `json:"amount"` // Сумма вывода
}

type WithdrawResponse struct {
	TransactionID int    `json:"transaction_id"`
	Amount        int    `json:"amount"`
	Status        string `json:"status"` // PENDING до обработки выплаты
}

type TransactionResponse struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`   // BET | WIN | REFUND | WITHDRAWAL | DEPOSIT
	Amount    int    `json:"amount"` // Всегда неотрицательная
	Status    string `json:"status"` // PENDING | COMPLETED | FAILED
	SessionID string `json:"session_id,omitempty"`
	CreatedAt string `json:"created_at"`
}

type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}
