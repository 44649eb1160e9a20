package model

// Статусы кауза (благотворительного соревнования сообществ)
type CauseStatus string

const (
	CauseActive   CauseStatus = "ACTIVE"
	CausePending  CauseStatus = "PENDING"
	CauseFinished CauseStatus = "FINISHED"
)

// Cause - благотворительное соревнование. Джекпот-вариант игры
// берет размер приза из WinningAmount активного кауза
type Cause struct {
	ID             int
	Name           string
	Status         CauseStatus
	WinningAmount  int
	MaxCommunities int
}
