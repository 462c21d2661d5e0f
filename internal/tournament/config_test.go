package tournament

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigHCL = `
tournament {
  starting_chips          = 2000
  small_blind             = 25
  big_blind               = 50
  blind_increase_interval = 5
  blind_increase_factor   = 2.0
  max_hands               = 500
  action_timeout_seconds  = 3
}

bot "alice" {
  strategy = "chart"
}

bot "bob" {
  strategy = "call"
}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tournament.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	config, err := LoadConfig(writeConfig(t, testConfigHCL))
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	settings := config.Settings()
	assert.Equal(t, 2000, settings.StartingChips)
	assert.Equal(t, 25, settings.SmallBlind)
	assert.Equal(t, 50, settings.BigBlind)
	assert.Equal(t, 5, settings.BlindIncreaseInterval)
	assert.Equal(t, 2.0, settings.BlindIncreaseFactor)
	assert.Equal(t, 500, settings.MaxHands)
	assert.Equal(t, 3*time.Second, settings.ActionTimeout)

	require.Len(t, config.Bots, 2)
	assert.Equal(t, "alice", config.Bots[0].Name)
	assert.Equal(t, "chart", config.Bots[0].Strategy)
}

func TestLoadConfigServerBlock(t *testing.T) {
	t.Parallel()

	config, err := LoadConfig(writeConfig(t, `
server {
  addr                     = ":9000"
  players                  = 4
  decision_timeout_seconds = 30
}

bot "a" {
  strategy = "call"
}

bot "b" {
  strategy = "fold"
}
`))
	require.NoError(t, err)
	assert.Equal(t, ":9000", config.Server.ListenAddr())
	assert.Equal(t, 4, config.Server.PlayerCount())
	assert.Equal(t, 30*time.Second, config.Server.DecisionTimeout())
}

func TestServerConfigDefaults(t *testing.T) {
	t.Parallel()

	var empty *ServerConfig
	assert.Equal(t, ":8080", empty.ListenAddr())
	assert.Equal(t, 2, empty.PlayerCount())
	assert.Equal(t, time.Duration(0), empty.DecisionTimeout())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, DefaultSettings(), config.Settings())
	assert.Len(t, config.Bots, 4)
}

func TestLoadConfigPartialBlockKeepsDefaults(t *testing.T) {
	t.Parallel()

	config, err := LoadConfig(writeConfig(t, `
tournament {
  starting_chips = 5000
}

bot "a" {
  strategy = "fold"
}

bot "b" {
  strategy = "rand"
}
`))
	require.NoError(t, err)

	settings := config.Settings()
	assert.Equal(t, 5000, settings.StartingChips)
	assert.Equal(t, DefaultSettings().SmallBlind, settings.SmallBlind)
	assert.Equal(t, DefaultSettings().BlindIncreaseFactor, settings.BlindIncreaseFactor)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown strategy",
			content: `
bot "a" {
  strategy = "gto-solver"
}

bot "b" {
  strategy = "call"
}
`,
		},
		{
			name: "single bot",
			content: `
bot "lonely" {
  strategy = "call"
}
`,
		},
		{
			name: "duplicate names",
			content: `
bot "twin" {
  strategy = "call"
}

bot "twin" {
  strategy = "fold"
}
`,
		},
		{
			name: "blinds inverted",
			content: `
tournament {
  small_blind = 50
  big_blind   = 20
}

bot "a" {
  strategy = "call"
}

bot "b" {
  strategy = "fold"
}
`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			config, err := LoadConfig(writeConfig(t, tt.content))
			require.NoError(t, err)
			assert.Error(t, config.Validate())
		})
	}
}

func TestLoadConfigRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeConfig(t, `tournament { starting_chips = `))
	assert.Error(t, err)
}
