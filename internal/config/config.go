// Package config loads session configuration from HCL files.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/blackjacklab/internal/counting"
	"github.com/lox/blackjacklab/internal/deck"
	"github.com/lox/blackjacklab/internal/rules"
)

// SessionConfig is the complete session configuration.
type SessionConfig struct {
	Table   TableSettings   `hcl:"table,block"`
	Session SessionSettings `hcl:"session,block"`
	Bots    []BotConfig     `hcl:"bot,block"`
}

// TableSettings carries the house rules.
type TableSettings struct {
	Decks       int     `hcl:"decks,optional"`
	Penetration float64 `hcl:"penetration,optional"`
	Payout      string  `hcl:"payout,optional"`
	MinBet      int     `hcl:"min_bet,optional"`
}

// SessionSettings carries player-facing preferences.
type SessionSettings struct {
	CountingSystem string `hcl:"counting_system,optional"`
	PlayerName     string `hcl:"player_name,optional"`
	Bankroll       int    `hcl:"bankroll,optional"`
	DealDelayMS    int    `hcl:"deal_delay_ms,optional"`
	ThinkDelayMS   int    `hcl:"think_delay_ms,optional"`
	SnapshotDir    string `hcl:"snapshot_dir,optional"`
	SnapshotEveryS int    `hcl:"snapshot_interval_s,optional"`
	LogLevel       string `hcl:"log_level,optional"`
}

// BotConfig seats one bot at session start.
type BotConfig struct {
	Name     string `hcl:"name,label"`
	Bankroll int    `hcl:"bankroll,optional"`
}

// DealDelay converts the millisecond setting to a duration.
func (s SessionSettings) DealDelay() time.Duration {
	return time.Duration(s.DealDelayMS) * time.Millisecond
}

// ThinkDelay converts the millisecond setting to a duration.
func (s SessionSettings) ThinkDelay() time.Duration {
	return time.Duration(s.ThinkDelayMS) * time.Millisecond
}

// SnapshotInterval converts the seconds setting to a duration.
func (s SessionSettings) SnapshotInterval() time.Duration {
	return time.Duration(s.SnapshotEveryS) * time.Second
}

// DefaultSessionConfig returns the standard six-deck session.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		Table: TableSettings{
			Decks:       6,
			Penetration: deck.DefaultPenetration,
			Payout:      string(rules.PayoutThreeToTwo),
			MinBet:      5,
		},
		Session: SessionSettings{
			CountingSystem: "Hi-Lo",
			PlayerName:     "Player",
			Bankroll:       1000,
			SnapshotDir:    defaultSnapshotDir(),
			SnapshotEveryS: 5,
			LogLevel:       "info",
		},
	}
}

func defaultSnapshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".blackjacklab"
	}
	return home + "/.blackjacklab"
}

// LoadSessionConfig loads configuration from an HCL file, falling back to
// defaults when the file does not exist.
func LoadSessionConfig(filename string) (*SessionConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultSessionConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config SessionConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	applyDefaults(&config)
	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *SessionConfig) {
	def := DefaultSessionConfig()
	if config.Table.Decks == 0 {
		config.Table.Decks = def.Table.Decks
	}
	if config.Table.Penetration == 0 {
		config.Table.Penetration = def.Table.Penetration
	}
	if config.Table.Payout == "" {
		config.Table.Payout = def.Table.Payout
	}
	if config.Table.MinBet == 0 {
		config.Table.MinBet = def.Table.MinBet
	}
	if config.Session.CountingSystem == "" {
		config.Session.CountingSystem = def.Session.CountingSystem
	}
	if config.Session.PlayerName == "" {
		config.Session.PlayerName = def.Session.PlayerName
	}
	if config.Session.Bankroll == 0 {
		config.Session.Bankroll = def.Session.Bankroll
	}
	if config.Session.SnapshotDir == "" {
		config.Session.SnapshotDir = def.Session.SnapshotDir
	}
	if config.Session.SnapshotEveryS == 0 {
		config.Session.SnapshotEveryS = def.Session.SnapshotEveryS
	}
	if config.Session.LogLevel == "" {
		config.Session.LogLevel = def.Session.LogLevel
	}
	for i := range config.Bots {
		if config.Bots[i].Bankroll == 0 {
			config.Bots[i].Bankroll = 500
		}
	}
}

func validate(config *SessionConfig) error {
	if config.Table.Decks < 1 || config.Table.Decks > 8 {
		return fmt.Errorf("decks must be between 1 and 8, got %d", config.Table.Decks)
	}
	if config.Table.Penetration <= 0 || config.Table.Penetration > 1 {
		return fmt.Errorf("penetration must be in (0, 1], got %g", config.Table.Penetration)
	}
	switch rules.PayoutRatio(config.Table.Payout) {
	case rules.PayoutThreeToTwo, rules.PayoutSixToFive, rules.PayoutEvenMoney:
	default:
		return fmt.Errorf("unknown payout ratio %q", config.Table.Payout)
	}
	if _, ok := counting.Systems[config.Session.CountingSystem]; !ok {
		return fmt.Errorf("unknown counting system %q", config.Session.CountingSystem)
	}
	if len(config.Bots) > 6 {
		return fmt.Errorf("at most 6 bots fit at the table, got %d", len(config.Bots))
	}
	return nil
}
