package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvWindowWidth  = "SNAKE_WINDOW_WIDTH"
	EnvWindowHeight = "SNAKE_WINDOW_HEIGHT"
	EnvCellSize     = "SNAKE_CELL_SIZE"
	EnvSpeed        = "SNAKE_SPEED"
	EnvTraceDB      = "SNAKE_TRACE_DB"
)

// DefaultTraceDB is used when no trace database path is configured.
const DefaultTraceDB = "~/.snake/trace.db"

// LoadSnake loads snake configuration and applies environment overrides.
// Search order: customPath -> ~/.snake/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg, err := loadSnakeFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadSnakeFile(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("snake.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/snake.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a config file in the user's config directory.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".snake", "configs", filename)
}

// LoadDotEnv reads KEY=VALUE pairs from the given files (./.env when none
// are named) into the process environment. Variables already set win.
// Missing files are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with values from SNAKE_* environment variables.
func ApplyEnv(cfg *SnakeConfig) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvWindowWidth, &cfg.Window.Width},
		{EnvWindowHeight, &cfg.Window.Height},
		{EnvCellSize, &cfg.CellSize},
		{EnvSpeed, &cfg.Speed},
	}
	for _, v := range ints {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("config: %s=%q is not an integer: %w", v.key, raw, err)
		}
		*v.dst = n
	}
	if db := os.Getenv(EnvTraceDB); db != "" {
		cfg.TraceDB = db
	}
	return nil
}

// TraceDBPath returns the configured trace database path or the default.
func (c SnakeConfig) TraceDBPath() string {
	if c.TraceDB != "" {
		return c.TraceDB
	}
	return DefaultTraceDB
}
