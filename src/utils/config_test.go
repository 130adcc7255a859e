package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fxterm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
serverUrl: wss://demo.example.com/trading
instruments:
  - symbol: EUR/USD
    pointSize: 0.0001
    digits: 5
  - symbol: USD/JPY
    pointSize: 0.01
    digits: 3
accounts:
  - name: demo
    balance: 50000
    hedging: true
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "wss://demo.example.com/trading", cfg.ServerURL)
	assert.Equal(t, ":memory:", cfg.HistoryPath)
	require.Len(t, cfg.Accounts, 1)
	assert.True(t, cfg.Accounts[0].Hedging)

	inst, ok := cfg.Instrument("USD/JPY")
	require.True(t, ok)
	assert.Equal(t, 0.01, inst.PointSize)
	assert.Equal(t, 3, inst.Digits)

	_, ok = cfg.Instrument("GBP/USD")
	assert.False(t, ok)
}

func TestLoadConfigRejectsBadInstruments(t *testing.T) {
	cases := map[string]string{
		"no instruments": `serverUrl: wss://demo.example.com`,
		"duplicate symbol": `
instruments:
  - symbol: EUR/USD
    pointSize: 0.0001
    digits: 5
  - symbol: EUR/USD
    pointSize: 0.0001
    digits: 5
`,
		"zero point size": `
instruments:
  - symbol: EUR/USD
    pointSize: 0
    digits: 5
`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
