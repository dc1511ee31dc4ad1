package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	mb "github.com/MarziyaHasanova31/battleship/models/battleship"
)

const (
	StageProd = "prod"
	StageDev  = "dev"

	defaultPort = 8000
)

type Config struct {
	Stage       string
	Port        int
	DatabaseURL string
	Seed        int64
	MaxTurns    int
	Game        mb.GameConfig
}

// Load reads the .env file outside of prod and then the environment.
// Unset variables keep their defaults.
func Load(envFiles ...string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		for _, f := range envFiles {
			if _, err := os.Stat(f); err != nil {
				continue
			}
			if err := godotenv.Load(f); err != nil {
				return Config{}, err
			}
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so it can be tested
// without touching the process environment.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Stage:       StageDev,
		Port:        defaultPort,
		DatabaseURL: getenv("DATABASE_URL"),
		Game:        mb.DefaultGameConfig(),
	}

	if stage := getenv("STAGE"); stage != "" {
		if stage != StageDev && stage != StageProd {
			return Config{}, fmt.Errorf("stage must be either %s or %s, got: %s", StageDev, StageProd, stage)
		}
		cfg.Stage = stage
	}

	var err error
	if cfg.Port, err = intVar(getenv, "PORT", cfg.Port); err != nil {
		return Config{}, err
	}
	if cfg.Game.BoardSize, err = intVar(getenv, "BOARD_SIZE", cfg.Game.BoardSize); err != nil {
		return Config{}, err
	}
	if cfg.MaxTurns, err = intVar(getenv, "MAX_TURNS", 0); err != nil {
		return Config{}, err
	}

	if v := getenv("SEED"); v != "" {
		if cfg.Seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("SEED: %w", err)
		}
	}

	for i, key := range []string{"FLEET_ONE", "FLEET_TWO"} {
		if v := getenv(key); v != "" {
			if cfg.Game.Fleets[i], err = ParseFleet(v); err != nil {
				return Config{}, fmt.Errorf("%s: %w", key, err)
			}
		}
	}

	switch getenv("END_RULE") {
	case "", mb.EndRuleAllFleetsSunk.String():
		cfg.Game.EndRule = mb.EndRuleAllFleetsSunk
	case mb.EndRuleAnyFleetSunk.String():
		cfg.Game.EndRule = mb.EndRuleAnyFleetSunk
	default:
		return Config{}, fmt.Errorf("END_RULE must be all or any, got: %s", getenv("END_RULE"))
	}

	if v := getenv("INVALID_MOVE_CONSUMES_TURN"); v != "" {
		if cfg.Game.InvalidMoveConsumesTurn, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("INVALID_MOVE_CONSUMES_TURN: %w", err)
		}
	}

	if err := cfg.Game.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseFleet parses a comma separated list of ship lengths, e.g. "3,4".
func ParseFleet(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	fleet := make([]int, 0, len(parts))
	for _, p := range parts {
		l, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid ship length %q", p)
		}
		fleet = append(fleet, l)
	}
	return fleet, nil
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
