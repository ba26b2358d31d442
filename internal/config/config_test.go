package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSessionConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadSessionConfig("/nonexistent/session.hcl")
	require.NoError(t, err)
	assert.Equal(t, DefaultSessionConfig(), config)
}

func TestLoadSessionConfig_FullFile(t *testing.T) {
	path := writeConfig(t, `
table {
  decks       = 2
  penetration = 0.5
  payout      = "6:5"
  min_bet     = 10
}

session {
  counting_system     = "Omega II"
  player_name         = "Lucy"
  bankroll            = 2500
  deal_delay_ms       = 250
  snapshot_interval_s = 10
  log_level           = "debug"
}

bot "Frank" {
  bankroll = 800
}

bot "Sally" {}
`)

	config, err := LoadSessionConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, config.Table.Decks)
	assert.Equal(t, 0.5, config.Table.Penetration)
	assert.Equal(t, "6:5", config.Table.Payout)
	assert.Equal(t, 10, config.Table.MinBet)
	assert.Equal(t, "Omega II", config.Session.CountingSystem)
	assert.Equal(t, "Lucy", config.Session.PlayerName)
	assert.Equal(t, 2500, config.Session.Bankroll)
	assert.Equal(t, "debug", config.Session.LogLevel)

	require.Len(t, config.Bots, 2)
	assert.Equal(t, "Frank", config.Bots[0].Name)
	assert.Equal(t, 800, config.Bots[0].Bankroll)
	assert.Equal(t, 500, config.Bots[1].Bankroll, "bot bankroll defaulted")
}

func TestLoadSessionConfig_PartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, `
table {
  decks = 1
}

session {
  player_name = "Solo"
}
`)

	config, err := LoadSessionConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1, config.Table.Decks)
	assert.Equal(t, 0.75, config.Table.Penetration)
	assert.Equal(t, "3:2", config.Table.Payout)
	assert.Equal(t, "Hi-Lo", config.Session.CountingSystem)
	assert.Equal(t, 1000, config.Session.Bankroll)
	assert.Equal(t, 5, config.Session.SnapshotEveryS)
}

func TestLoadSessionConfig_DurationHelpers(t *testing.T) {
	path := writeConfig(t, `
table {}
session {
  deal_delay_ms       = 250
  think_delay_ms      = 100
  snapshot_interval_s = 3
}
`)

	config, err := LoadSessionConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "250ms", config.Session.DealDelay().String())
	assert.Equal(t, "100ms", config.Session.ThinkDelay().String())
	assert.Equal(t, "3s", config.Session.SnapshotInterval().String())
}

func TestLoadSessionConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad hcl",
			content: `table {`,
			wantErr: "failed to parse",
		},
		{
			name: "too many decks",
			content: `
table { decks = 12 }
session {}
`,
			wantErr: "decks must be",
		},
		{
			name: "bad payout",
			content: `
table { payout = "2:1" }
session {}
`,
			wantErr: "unknown payout ratio",
		},
		{
			name: "bad counting system",
			content: `
table {}
session { counting_system = "Zen" }
`,
			wantErr: "unknown counting system",
		},
		{
			name: "penetration out of range",
			content: `
table { penetration = 1.5 }
session {}
`,
			wantErr: "penetration must be",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSessionConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
