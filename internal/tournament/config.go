package tournament

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/soleohess/poker/internal/bot"
)

// Config is the on-disk tournament configuration.
type Config struct {
	Tournament *StructureConfig `hcl:"tournament,block"`
	Server     *ServerConfig    `hcl:"server,block"`
	Bots       []BotConfig      `hcl:"bot,block"`
}

// StructureConfig is the tournament block of a config file.
type StructureConfig struct {
	StartingChips         int     `hcl:"starting_chips,optional"`
	SmallBlind            int     `hcl:"small_blind,optional"`
	BigBlind              int     `hcl:"big_blind,optional"`
	BlindIncreaseInterval int     `hcl:"blind_increase_interval,optional"`
	BlindIncreaseFactor   float64 `hcl:"blind_increase_factor,optional"`
	MaxHands              int     `hcl:"max_hands,optional"`
	ActionTimeoutSeconds  int     `hcl:"action_timeout_seconds,optional"`
	MaxFaults             int     `hcl:"max_faults,optional"`
}

// ServerConfig is the server block of a config file, used by the serve
// command when hosting remote players.
type ServerConfig struct {
	Addr                   string `hcl:"addr,optional"`
	Players                int    `hcl:"players,optional"`
	DecisionTimeoutSeconds int    `hcl:"decision_timeout_seconds,optional"`
}

// ListenAddr returns the configured listen address, defaulting to :8080.
func (s *ServerConfig) ListenAddr() string {
	if s == nil || s.Addr == "" {
		return ":8080"
	}
	return s.Addr
}

// PlayerCount returns how many remote players to wait for, at least two.
func (s *ServerConfig) PlayerCount() int {
	if s == nil || s.Players < 2 {
		return 2
	}
	return s.Players
}

// DecisionTimeout returns the remote decision deadline, zero meaning use
// the transport default.
func (s *ServerConfig) DecisionTimeout() time.Duration {
	if s == nil || s.DecisionTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.DecisionTimeoutSeconds) * time.Second
}

// BotConfig seats one built-in bot.
type BotConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
}

// DefaultConfig returns the configuration used when no file is present:
// the default structure and a four-strategy table.
func DefaultConfig() *Config {
	return &Config{
		Tournament: &StructureConfig{},
		Bots: []BotConfig{
			{Name: "charlie", Strategy: "chart"},
			{Name: "station", Strategy: "call"},
			{Name: "chaos", Strategy: "rand"},
			{Name: "maniac", Strategy: "maniac"},
		},
	}
}

// LoadConfig loads tournament configuration from an HCL file. A missing
// file yields DefaultConfig.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if config.Tournament == nil {
		config.Tournament = &StructureConfig{}
	}
	if len(config.Bots) == 0 {
		config.Bots = DefaultConfig().Bots
	}
	return &config, nil
}

// Settings converts the configured structure to Settings, filling gaps with
// defaults.
func (c *Config) Settings() Settings {
	s := DefaultSettings()
	t := c.Tournament
	if t == nil {
		return s
	}
	if t.StartingChips > 0 {
		s.StartingChips = t.StartingChips
	}
	if t.SmallBlind > 0 {
		s.SmallBlind = t.SmallBlind
	}
	if t.BigBlind > 0 {
		s.BigBlind = t.BigBlind
	}
	if t.BlindIncreaseInterval > 0 {
		s.BlindIncreaseInterval = t.BlindIncreaseInterval
	}
	if t.BlindIncreaseFactor > 0 {
		s.BlindIncreaseFactor = t.BlindIncreaseFactor
	}
	if t.MaxHands > 0 {
		s.MaxHands = t.MaxHands
	}
	if t.ActionTimeoutSeconds > 0 {
		s.ActionTimeout = time.Duration(t.ActionTimeoutSeconds) * time.Second
	}
	if t.MaxFaults > 0 {
		s.MaxFaults = t.MaxFaults
	}
	return s
}

// Validate checks the configuration for problems a typo would cause.
func (c *Config) Validate() error {
	s := c.Settings()
	if s.BigBlind < s.SmallBlind {
		return fmt.Errorf("big blind %d smaller than small blind %d", s.BigBlind, s.SmallBlind)
	}
	if s.StartingChips < s.BigBlind {
		return fmt.Errorf("starting chips %d cannot cover the big blind %d", s.StartingChips, s.BigBlind)
	}

	if len(c.Bots) < 2 {
		return fmt.Errorf("at least two bots must be configured")
	}
	valid := make(map[string]bool)
	for _, kind := range bot.Kinds() {
		valid[kind] = true
	}
	names := make(map[string]bool)
	for _, b := range c.Bots {
		if b.Name == "" {
			return fmt.Errorf("bot without a name")
		}
		if names[b.Name] {
			return fmt.Errorf("duplicate bot name %q", b.Name)
		}
		names[b.Name] = true
		if !valid[b.Strategy] {
			return fmt.Errorf("bot %s: unknown strategy %q", b.Name, b.Strategy)
		}
	}
	return nil
}
