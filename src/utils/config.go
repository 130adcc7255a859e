package utils

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InstrumentConfig describes one tradable symbol: its pip size and the
// number of digits its rates are quoted with.
type InstrumentConfig struct {
	Symbol    string  `yaml:"symbol"`
	PointSize float64 `yaml:"pointSize"`
	Digits    int     `yaml:"digits"`
}

// AccountConfig seeds one trading account at startup.
type AccountConfig struct {
	Name    string  `yaml:"name"`
	Balance float64 `yaml:"balance"`
	Hedging bool    `yaml:"hedging"`
}

// Config is the terminal's startup configuration.
type Config struct {
	ServerURL   string             `yaml:"serverUrl"`
	HistoryPath string             `yaml:"historyPath"`
	Instruments []InstrumentConfig `yaml:"instruments"`
	Accounts    []AccountConfig    `yaml:"accounts"`
}

// LoadConfig reads and validates the yaml config at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadConfig: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("LoadConfig: failed to parse %s: %w", path, err)
	}

	if len(cfg.Instruments) == 0 {
		return nil, fmt.Errorf("LoadConfig: no instruments configured in %s", path)
	}

	seen := make(map[string]bool, len(cfg.Instruments))
	for _, inst := range cfg.Instruments {
		if inst.Symbol == "" {
			return nil, fmt.Errorf("LoadConfig: instrument with empty symbol in %s", path)
		}
		if seen[inst.Symbol] {
			return nil, fmt.Errorf("LoadConfig: duplicate instrument %s in %s", inst.Symbol, path)
		}
		seen[inst.Symbol] = true

		if inst.PointSize <= 0 {
			return nil, fmt.Errorf("LoadConfig: instrument %s has invalid pointSize %v", inst.Symbol, inst.PointSize)
		}
		if inst.Digits < 0 {
			return nil, fmt.Errorf("LoadConfig: instrument %s has invalid digits %d", inst.Symbol, inst.Digits)
		}
	}

	if cfg.HistoryPath == "" {
		cfg.HistoryPath = ":memory:"
	}

	return &cfg, nil
}

// Instrument returns the configured instrument for symbol, if any.
func (c *Config) Instrument(symbol string) (InstrumentConfig, bool) {
	for _, inst := range c.Instruments {
		if inst.Symbol == symbol {
			return inst, true
		}
	}
	return InstrumentConfig{}, false
}
