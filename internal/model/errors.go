package model

import "errors"

// Ошибки доменного уровня. Хендлеры маппят их в HTTP статусы
var (
	// Ставка больше доступного баланса. Сессия не создается
	ErrInsufficientBalance = errors.New("insufficient balance")
	// Карта уже открыта, индекс вне поля или исчерпан лимит флипов
	ErrInvalidFlip = errors.New("invalid flip")
	// Сессия уже в терминальном состоянии
	ErrSessionFinished = errors.New("session already finished")
	// Сессия не найдена или принадлежит другому пользователю
	ErrSessionNotFound = errors.New("session not found")
	// Предусловия кауз-варианта не выполнены (кауз неактивен
	// или не все сообщества оплатили участие)
	ErrNotEligible = errors.New("cause is not eligible for jackpot")
	// Ставка меньше минимальной для варианта
	ErrBetTooSmall = errors.New("bet is below variant minimum")
	// Неизвестный вариант игры
	ErrUnknownVariant = errors.New("unknown game variant")
)
