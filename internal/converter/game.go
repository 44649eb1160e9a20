package converter

import (
	"bingoo_backend/internal/api/dto/game"
	"bingoo_backend/internal/model"
)

func ToStartGame(req game.StartGameRequest) model.StartGame {
	return model.StartGame{
		Variant:   req.Variant,
		Bet:       req.Bet,
		UsePoints: req.UsePoints,
		CauseID:   req.CauseID,
	}
}

func ToStartGameResponse(res model.StartGameResult) game.StartGameResponse {
	return game.StartGameResponse{
		SessionID: res.SessionID,
		Variant:   res.Variant,
		GridSize:  res.GridSize,
		MaxFlips:  res.MaxFlips,
		Balance:   res.Balance,
	}
}

func ToFlipCardResponse(res model.FlipResult) game.FlipCardResponse {
	return game.FlipCardResponse{
		SessionID: res.SessionID,
		CardIndex: res.CardIndex,
		IsWinning: res.IsWinning,
		Prize:     res.Prize,
		State:     string(res.State),
		FlipsLeft: res.FlipsLeft,
		Balance:   res.Balance,
	}
}

func ToEndGameResponse(res model.FinishResult) game.EndGameResponse {
	return game.EndGameResponse{
		SessionID: res.SessionID,
		State:     string(res.State),
		HasWon:    res.HasWon,
		Prize:     res.Prize,
		Balance:   res.Balance,
	}
}

func ToSessionResponse(session model.GameSession) game.SessionResponse {
	board := make([]game.CardResponse, len(session.Board))
	for i, c := range session.Board {
		board[i] = game.CardResponse{
			Index:    c.Index,
			Revealed: c.Revealed,
			IsPrize:  c.IsPrize,
			Prize:    c.Prize,
		}
	}

	return game.SessionResponse{
		SessionID: session.ID,
		Variant:   session.Variant,
		Bet:       session.Bet,
		State:     string(session.State),
		HasWon:    session.HasWon,
		Prize:     session.Prize,
		FlipsUsed: session.FlipsUsed,
		Board:     board,
	}
}
