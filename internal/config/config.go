// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the binaries read from the environment.
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"json"`
	DataFile    string `env:"INVENTORY_FILE" envDefault:"./inventory_data.json"`
	DBPath      string `env:"DB_PATH" envDefault:"./inventory.db"`
	CatalogDir  string `env:"CATALOG_DIR" envDefault:"./data"`

	// LootSeed fixes the random sequence; 0 seeds from crypto/rand.
	LootSeed int64 `env:"LOOT_SEED" envDefault:"0"`

	MaxSimulationDays       int `env:"MAX_SIMULATION_DAYS" envDefault:"365"`
	MagicDescriptionLimit   int `env:"MAGIC_DESCRIPTION_LIMIT" envDefault:"600"`
	ConfirmDescriptionLimit int `env:"CONFIRM_DESCRIPTION_LIMIT" envDefault:"350"`
	MatchThreshold          int `env:"MATCH_THRESHOLD" envDefault:"60"`

	Roster RosterConfig
	Bot    BotConfig
	Backup BackupConfig
}

// RosterConfig names the game master and the players.
type RosterConfig struct {
	MasterID int64 `env:"MASTER_ID"`
	// Players maps player name to chat user id, e.g. "Karla:111,Enzo:558".
	Players map[string]int64 `env:"PLAYERS" envKeyValSeparator:":"`
	// SimulationPlayer is the one player whose inventory may be simulated.
	SimulationPlayer string `env:"SIMULATION_PLAYER"`
}

// BotConfig configures the Telegram transport. An empty token disables it.
type BotConfig struct {
	Token   string `env:"BOT_TOKEN"`
	Debug   bool   `env:"BOT_DEBUG" envDefault:"false"`
	Timeout int    `env:"BOT_POLL_TIMEOUT" envDefault:"60"`
}

// BackupConfig configures the scheduled git backup. An empty Repo disables it.
type BackupConfig struct {
	Schedule string `env:"BACKUP_SCHEDULE" envDefault:"@every 24h"`
	Repo     string `env:"GITHUB_REPO"`
	Token    string `env:"GITHUB_TOKEN"`
	Email    string `env:"GITHUB_EMAIL"`
	Name     string `env:"GITHUB_NAME"`
	Branch   string `env:"GITHUB_BRANCH" envDefault:"main"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the optional .env files, then the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Println("No .env file found, using the process environment")
		} else {
			log.Println("Warning: failed to load .env file:", err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have no safe fallback.
func (c *Config) Validate() error {
	if c.MaxSimulationDays < 1 {
		return fmt.Errorf("MAX_SIMULATION_DAYS must be at least 1, got %d", c.MaxSimulationDays)
	}
	if c.MatchThreshold < 0 || c.MatchThreshold > 100 {
		return fmt.Errorf("MATCH_THRESHOLD must be within 0..100, got %d", c.MatchThreshold)
	}
	switch c.StoreDriver {
	case "json", "sqlite":
	default:
		return fmt.Errorf("STORE_DRIVER must be json or sqlite, got %q", c.StoreDriver)
	}
	if c.Roster.SimulationPlayer != "" {
		if _, ok := c.Roster.Players[c.Roster.SimulationPlayer]; !ok {
			return fmt.Errorf("SIMULATION_PLAYER %q is not in PLAYERS", c.Roster.SimulationPlayer)
		}
	}
	return nil
}

// StorePath returns the path for the configured store driver.
func (c *Config) StorePath() string {
	if c.StoreDriver == "sqlite" {
		return c.DBPath
	}
	return c.DataFile
}
