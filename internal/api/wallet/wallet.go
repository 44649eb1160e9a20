package wallet

import (
	dto "bingoo_backend/internal/api/dto/wallet"
	"bingoo_backend/internal/converter"
	"bingoo_backend/internal/middleware"
	"bingoo_backend/internal/model"
	"bingoo_backend/internal/service"
	"bingoo_backend/pkg/req"
	"bingoo_backend/pkg/resp"
	"net/http"
)

type HandlerDeps struct {
	Settlement service.SettlementService
	Balance    service.BalanceService
}

type Handler struct {
	settlement service.SettlementService
	balance    service.BalanceService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		settlement: deps.Settlement,
		balance:    deps.Balance,
	}
}

// GetBalance - баланс пользователя (через зеркало в памяти)
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user id not found", http.StatusUnauthorized)
		return
	}

	points, err := h.balance.Balance(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToBalanceResponse(points))
}

// Deposit - пополнение счета баллами
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user id not found", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.DepositRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.settlement.Deposit(r.Context(), userID, payload.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToDepositResponse(*tx))
}

// Withdraw - заявка на вывод баллов
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user id not found", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.WithdrawRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.settlement.Withdraw(r.Context(), userID, payload.Amount)
	if err != nil {
		status := http.StatusInternalServerError
		if err == model.ErrInsufficientBalance {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToWithdrawResponse(*tx))
}

// Transactions - история леджера пользователя
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "user id not found", http.StatusUnauthorized)
		return
	}

	txs, err := h.settlement.Transactions(r.Context(), userID, 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToTransactionsResponse(txs))
}
