package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// GameVariant - конфигурация одного варианта игры.
// Числовая таблица (размер поля, ставки, призы) задается в config.yaml
type GameVariant struct {
	Name            string `yaml:"name"`
	GridSize        int    `yaml:"grid_size"`
	MinBet          int    `yaml:"min_bet"`
	MaxPrize        int    `yaml:"max_prize"`
	MaxFlips        int    `yaml:"max_flips"`
	MinWinningSlots int    `yaml:"min_winning_slots"`
	MaxWinningSlots int    `yaml:"max_winning_slots"`
	// Приз берется из активного кауза, а не из таблицы вариантов
	CausePrize bool `yaml:"cause_prize"`
}

type GameConfig interface {
	Variant(name string) (GameVariant, bool)
	Variants() []GameVariant
}

type BalanceCacheConfig interface {
	ReconcileInterval() time.Duration
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}
