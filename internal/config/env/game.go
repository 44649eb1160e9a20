package env

import (
	"bingoo_backend/internal/config"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// yamlFile - структура config.yaml
type yamlFile struct {
	Game struct {
		Variants []config.GameVariant `yaml:"variants"`
	} `yaml:"game"`
	BalanceCache struct {
		ReconcileInterval string `yaml:"reconcile_interval"`
	} `yaml:"balance_cache"`
}

type gameConfig struct {
	variants map[string]config.GameVariant
	order    []string
}

// NewGameConfigFromYAML - загружает таблицу вариантов игры из yaml.
// Каждый вариант проверяется на согласованность до старта сервера
func NewGameConfigFromYAML(path string) (config.GameConfig, error) {
	file, err := parseYAML(path)
	if err != nil {
		return nil, err
	}

	if len(file.Game.Variants) == 0 {
		return nil, errors.New("no game variants in config")
	}

	cfg := &gameConfig{
		variants: make(map[string]config.GameVariant, len(file.Game.Variants)),
	}
	for _, v := range file.Game.Variants {
		if err := validateVariant(v); err != nil {
			return nil, fmt.Errorf("variant %q: %w", v.Name, err)
		}
		if _, ok := cfg.variants[v.Name]; ok {
			return nil, fmt.Errorf("duplicate variant %q", v.Name)
		}
		cfg.variants[v.Name] = v
		cfg.order = append(cfg.order, v.Name)
	}

	return cfg, nil
}

func validateVariant(v config.GameVariant) error {
	if v.Name == "" {
		return errors.New("empty name")
	}
	if v.GridSize <= 0 {
		return errors.New("grid size must be positive")
	}
	if v.MinBet <= 0 {
		return errors.New("min bet must be positive")
	}
	if v.MaxFlips <= 0 || v.MaxFlips > v.GridSize {
		return errors.New("max flips must be in [1, grid size]")
	}
	if v.MinWinningSlots <= 0 || v.MaxWinningSlots < v.MinWinningSlots {
		return errors.New("winning slot bounds are inconsistent")
	}
	if !v.CausePrize && v.MaxPrize < v.MaxWinningSlots {
		return errors.New("max prize must cover at least one point per winning slot")
	}
	return nil
}

func (cfg *gameConfig) Variant(name string) (config.GameVariant, bool) {
	v, ok := cfg.variants[name]
	return v, ok
}

func (cfg *gameConfig) Variants() []config.GameVariant {
	res := make([]config.GameVariant, 0, len(cfg.order))
	for _, name := range cfg.order {
		res = append(res, cfg.variants[name])
	}
	return res
}

type balanceCacheConfig struct {
	reconcileInterval time.Duration
}

func NewBalanceCacheConfigFromYAML(path string) (config.BalanceCacheConfig, error) {
	file, err := parseYAML(path)
	if err != nil {
		return nil, err
	}

	interval := 30 * time.Second
	if len(file.BalanceCache.ReconcileInterval) != 0 {
		interval, err = time.ParseDuration(file.BalanceCache.ReconcileInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid reconcile interval: %w", err)
		}
	}

	return &balanceCacheConfig{reconcileInterval: interval}, nil
}

func (cfg *balanceCacheConfig) ReconcileInterval() time.Duration {
	return cfg.reconcileInterval
}

func parseYAML(path string) (*yamlFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file yamlFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &file, nil
}
