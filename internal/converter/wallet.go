package converter

import (
	"bingoo_backend/internal/api/dto/wallet"
	"bingoo_backend/internal/model"
	"time"
)

func ToBalanceResponse(points int) wallet.BalanceResponse {
	return wallet.BalanceResponse{
		Points: points,
	}
}

func ToDepositResponse(tx model.Transaction) wallet.DepositResponse {
	return wallet.DepositResponse{
		TransactionID: tx.ID,
		Amount:        tx.Amount,
	}
}

func ToWithdrawResponse(tx model.Transaction) wallet.WithdrawResponse {
	return wallet.WithdrawResponse{
		TransactionID: tx.ID,
		Amount:        tx.Amount,
		Status:        string(tx.Status),
	}
}

func ToTransactionsResponse(txs []model.Transaction) wallet.TransactionsResponse {
	result := make([]wallet.TransactionResponse, len(txs))
	for i, tx := range txs {
		result[i] = wallet.TransactionResponse{
			ID:        tx.ID,
			Type:      string(tx.Type),
			Amount:    tx.Amount,
			Status:    string(tx.Status),
			SessionID: tx.SessionID,
			CreatedAt: tx.CreatedAt.Format(time.RFC3339),
		}
	}
	return wallet.TransactionsResponse{Transactions: result}
}
