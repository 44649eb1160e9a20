package game

import (
	"bingoo_backend/internal/config"
	"bingoo_backend/internal/model"
	"log"
	"math/rand"
)

// GenerateBoard - строит игровое поле варианта: gridSize карт,
// из которых призовые выбраны равновероятно без повторов.
// Призовая раскладка фиксируется здесь и больше не меняется
func GenerateBoard(variant config.GameVariant, policy PrizePolicy) []model.CardSlot {
	prizes := policy.PrizeValues

	// Призовых карт не может быть столько же, сколько карт на поле
	if len(prizes) >= variant.GridSize {
		log.Printf("variant %s: winning slot count %d clamped to %d",
			variant.Name, len(prizes), variant.GridSize-1)
		prizes = prizes[:variant.GridSize-1]
	}

	board := make([]model.CardSlot, variant.GridSize)
	for i := range board {
		board[i] = model.CardSlot{Index: i}
	}

	// Выбор призовых позиций: частичный Fisher-Yates по перестановке индексов
	perm := make([]int, variant.GridSize)
	for i := range perm {
		perm[i] = i
	}
	for i, prize := range prizes {
		j := i + rand.Intn(len(perm)-i)
		perm[i], perm[j] = perm[j], perm[i]
		board[perm[i]].IsPrize = true
		board[perm[i]].Prize = prize
	}

	// Полная перетасовка поля, чтобы убрать позиционное смещение
	for i := len(board) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		board[i], board[j] = board[j], board[i]
	}

	// После перетасовки индекс карты - это ее позиция на поле
	for i := range board {
		board[i].Index = i
	}

	return board
}
