package scoring

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config guarda as constantes de ajuste do modelo de edge.
// Os valores padrão reproduzem o comportamento histórico; um YAML pode sobrescrever qualquer campo.
type Config struct {
	ValueBetThreshold float64 `yaml:"value_bet_threshold"`
	Tiers             Tiers   `yaml:"tiers"`
}

// Tiers são os limites (exclusivos) de cada faixa de bet_strength
type Tiers struct {
	VeryHigh float64 `yaml:"very_high"`
	High     float64 `yaml:"high"`
	Medium   float64 `yaml:"medium"`
}

func DefaultConfig() Config {
	return Config{
		ValueBetThreshold: 10.0,
		Tiers: Tiers{
			VeryHigh: 30.0,
			High:     20.0,
			Medium:   10.0,
		},
	}
}

// LoadConfig lê o YAML em path por cima dos defaults. path vazio retorna os defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read scoring config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse scoring config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid scoring config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ValueBetThreshold < 0 {
		return errors.New("value_bet_threshold must be >= 0")
	}
	if c.Tiers.Medium < 0 || c.Tiers.Medium > c.Tiers.High || c.Tiers.High > c.Tiers.VeryHigh {
		return fmt.Errorf("tiers must satisfy 0 <= medium <= high <= very_high, got %+v", c.Tiers)
	}
	return nil
}
