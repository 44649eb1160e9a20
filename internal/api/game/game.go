package game

import (
	dto "bingoo_backend/internal/api/dto/game"
	"bingoo_backend/internal/converter"
	"bingoo_backend/internal/model"
	"bingoo_backend/internal/service"
	"bingoo_backend/pkg/req"
	"bingoo_backend/pkg/resp"
	"errors"
	"net/http"
)

type HandlerDeps struct {
	Serv service.GameService
}

type Handler struct {
	serv service.GameService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Start - старт игровой сессии. Призовые позиции клиенту не отдаются
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.StartGameRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Start(r.Context(), converter.ToStartGame(payload))
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStartGameResponse(*result))
}

// Flip - открытие одной карты
func (h *Handler) Flip(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.FlipCardRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Flip(r.Context(), payload.SessionID, payload.CardIndex)
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToFlipCardResponse(*result))
}

// End - явное завершение сессии клиентом
func (h *Handler) End(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.EndGameRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Finish(r.Context(), payload.SessionID)
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToEndGameResponse(*result))
}

// Session - снимок сессии (закрытые карты без призовой раскладки)
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	session, err := h.serv.Session(r.Context(), sessionID)
	if err != nil {
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*session))
}

// statusFromError - маппинг доменных ошибок в HTTP статусы
func statusFromError(err error) int {
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInsufficientBalance),
		errors.Is(err, model.ErrNotEligible):
		return http.StatusConflict
	case errors.Is(err, model.ErrInvalidFlip),
		errors.Is(err, model.ErrBetTooSmall),
		errors.Is(err, model.ErrUnknownVariant),
		errors.Is(err, model.ErrSessionFinished):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
