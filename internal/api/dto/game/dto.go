package game

type StartGameRequest struct {
	Variant   string `json:"variant"`    // Имя варианта из таблицы конфигурации
	Bet       int    `json:"bet"`        // Размер ставки (>= минимума варианта)
	UsePoints bool   `json:"use_points"` // Играть на баллы
	CauseID   int    `json:"cause_id"`   // Только для кауз-варианта
}

type StartGameResponse struct {
	SessionID string `json:"session_id"`
	Variant   string `json:"variant"`
	GridSize  int    `json:"grid_size"` // Количество карт на поле
	MaxFlips  int    `json:"max_flips"` // Лимит открытий
	Balance   int    `json:"balance"`   // Баланс после списания ставки
}

type FlipCardRequest struct {
	SessionID string `json:"session_id"`
	CardIndex int    `json:"card_index"` // 0..grid_size-1
}

type FlipCardResponse struct {
	SessionID string `json:"session_id"`
	CardIndex int    `json:"card_index"`
	IsWinning bool   `json:"is_winning"`
	Prize     int    `json:"prize"` // 0, если карта не призовая
	State     string `json:"session_state"`
	FlipsLeft int    `json:"flips_left"`
	Balance   int    `json:"balance"`
}

type EndGameRequest struct {
	SessionID string `json:"session_id"`
}

type EndGameResponse struct {
	SessionID string `json:"session_id"`
	State     string `json:"session_state"`
	HasWon    bool   `json:"has_won"`
	Prize     int    `json:"prize"`
	Balance   int    `json:"balance"`
}

type CardResponse struct {
	Index    int  `json:"index"`
	Revealed bool `json:"revealed"`
	IsPrize  bool `json:"is_prize"` // Только для открытых карт
	Prize    int  `json:"prize"`
}

type SessionResponse struct {
	SessionID string         `json:"session_id"`
	Variant   string         `json:"variant"`
	Bet       int            `json:"bet"`
	State     string         `json:"session_state"`
	HasWon    bool           `json:"has_won"`
	Prize     int            `json:"prize"`
	FlipsUsed int            `json:"flips_used"`
	Board     []CardResponse `json:"board"`
}
