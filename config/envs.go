package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/mvasko/wraith/model"
)

// Config holds the server's configuration values.
type Config struct {
	Port string // HTTP listen port

	Rows          int // default maze height
	Cols          int // default maze width
	SurvivorCount int // default survivors per round
	GhostSpeed    int // default cells per pursuit step
	GhostManual   bool
	TickRate      int // ticks per second
}

// Load reads the configuration from the environment, with a .env file if
// one is present. Every knob has a default; nothing is required.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	return Config{
		Port:          getEnv("PORT", "8080"),
		Rows:          getEnvAsInt("MAZE_ROWS", 21),
		Cols:          getEnvAsInt("MAZE_COLS", 31),
		SurvivorCount: getEnvAsInt("SURVIVOR_COUNT", 3),
		GhostSpeed:    getEnvAsInt("GHOST_SPEED", 1),
		GhostManual:   getEnv("GHOST_MODE", "ai") == "manual",
		TickRate:      getEnvAsInt("TICK_RATE", 60),
	}
}

// RoundDefaults maps the server configuration onto a round configuration.
func (c Config) RoundDefaults() model.RoundConfig {
	mode := model.AIControlled
	if c.GhostManual {
		mode = model.ManuallyControlled
	}
	return model.RoundConfig{
		Rows:          c.Rows,
		Cols:          c.Cols,
		SurvivorCount: c.SurvivorCount,
		GhostSpeed:    c.GhostSpeed,
		GhostMode:     mode,
	}
}

func getEnv(key, def string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return def
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warnf("environment variable %s must be an integer, using %d: %v", key, def, err)
		return def
	}
	return value
}
