package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/neurotica01/crackify/internal/schedule"
)

// Config is the root configuration structure.
type Config struct {
	Identity   IdentityConfig  `json:"identity"`
	Timestamps TimestampConfig `json:"timestamps"`
	Push       PushConfig      `json:"push"`
}

// IdentityConfig holds default replacement author fields. CLI flags
// override these; the global git configuration is the fallback.
type IdentityConfig struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TimestampConfig holds the timestamp spread policy.
type TimestampConfig struct {
	WindowDays           int     `json:"windowDays"`           // Default: 365
	EveningBias          float64 `json:"eveningBias"`          // Default: 0.6
	EveningStartHour     int     `json:"eveningStartHour"`     // Default: 18
	EveningEndHour       int     `json:"eveningEndHour"`       // Default: 23
	WeekendShiftMinHours int     `json:"weekendShiftMinHours"` // Default: 12
	WeekendShiftMaxHours int     `json:"weekendShiftMaxHours"` // Default: 23
}

// Policy converts the configured spread into a schedule policy.
func (t TimestampConfig) Policy() schedule.Policy {
	return schedule.Policy{
		WindowDays:           t.WindowDays,
		EveningBias:          t.EveningBias,
		EveningStartHour:     t.EveningStartHour,
		EveningEndHour:       t.EveningEndHour,
		WeekendShiftMinHours: t.WeekendShiftMinHours,
		WeekendShiftMaxHours: t.WeekendShiftMaxHours,
	}
}

// PushConfig holds publish defaults.
type PushConfig struct {
	Remote   string   `json:"remote"`   // Default destination URL; empty disables the push step
	TokenEnv []string `json:"tokenEnv"` // Environment variables probed, in order, for the access token
}

// Token returns the first non-empty access token from the configured
// environment variables.
func (p PushConfig) Token() string {
	for _, key := range p.TokenEnv {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Timestamps: TimestampConfig{
			WindowDays:           365,
			EveningBias:          0.6,
			EveningStartHour:     18,
			EveningEndHour:       23,
			WeekendShiftMinHours: 12,
			WeekendShiftMaxHours: 23,
		},
		Push: PushConfig{
			TokenEnv: []string{"CRACKIFY_TOKEN", "GITHUB_TOKEN"},
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".crackify.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".crackify.json"))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, ".crackify.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
