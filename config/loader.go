package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultPort          = 8080
	defaultTimeoutMS     = 15000
	defaultCacheTTLMS    = 30000
	defaultWindowMinutes = 45
)

// Load reads the YAML file at path, applies .env and environment overrides,
// fills defaults and validates the result. A missing file is not an error;
// the process can run entirely on defaults plus environment.
func Load(path string) (*AppConfig, error) {
	// .env is a local development convenience; absence is fine.
	_ = godotenv.Load()

	var cfg AppConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("CLEANRIDE_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("CLEANRIDE_API_KEY"); v != "" {
		cfg.Feeds.APIKey = v
	}
	if v := os.Getenv("CLEANRIDE_FEED_BASE_URL"); v != "" {
		cfg.Feeds.BaseURL = v
	}
	if v := os.Getenv("CLEANRIDE_OFFLINE"); v != "" {
		cfg.Feeds.Offline = isTruthy(v)
	}
	if v := os.Getenv("CLEANRIDE_STATIONS_DB"); v != "" {
		cfg.Storage.StationsDB = v
	}
	if v := os.Getenv("CLEANRIDE_SCHEDULE_DB"); v != "" {
		cfg.Storage.ScheduleDB = v
	}
	if v := os.Getenv("CLEANRIDE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Feeds.TimeoutMS == 0 {
		cfg.Feeds.TimeoutMS = defaultTimeoutMS
	}
	if cfg.Feeds.CacheTTLMS == 0 {
		cfg.Feeds.CacheTTLMS = defaultCacheTTLMS
	}
	if cfg.Schedule.WindowMinutes == 0 {
		cfg.Schedule.WindowMinutes = defaultWindowMinutes
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
