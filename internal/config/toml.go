// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Sim SimConfig `toml:"sim"`
	Log LogConfig `toml:"log"`
}

// SimConfig maps table and bankroll settings.
type SimConfig struct {
	Chips           *int    `toml:"chips"`
	BaseBet         *int    `toml:"base-bet"`
	Policy          *string `toml:"policy"`
	Shoe            *string `toml:"shoe"`
	ReshuffleBelow  *int    `toml:"reshuffle-below"`
	HitSoft17       *bool   `toml:"hit-soft17"`
	DealerHitSoft17 *bool   `toml:"dealer-hit-soft17"`
	Payout          *int    `toml:"payout"`
	Rounds          *int    `toml:"rounds"`
	Seed            *int64  `toml:"seed"`
	Save            *bool   `toml:"save"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level      *string `toml:"level"`
	File       *string `toml:"file"`
	MaxSizeMB  *int    `toml:"max-size-mb"`
	MaxBackups *int    `toml:"max-backups"`
	MaxAgeDays *int    `toml:"max-age-days"`
	Compress   *bool   `toml:"compress"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
