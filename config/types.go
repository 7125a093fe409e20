package config

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port           int      `yaml:"port" validate:"gt=0"`
	AllowedOrigins []string `yaml:"allowedOrigins" validate:"dive,required"`
}

// FeedsConfig configures upstream GTFS-Realtime access.
type FeedsConfig struct {
	BaseURL    string `yaml:"baseURL" validate:"omitempty,url"`
	APIKey     string `yaml:"apiKey"`
	TimeoutMS  int    `yaml:"timeoutMS" validate:"gte=0"`
	CacheTTLMS int    `yaml:"cacheTTLMS" validate:"gte=0"`

	// Offline disables all upstream fetches; every request is served from
	// generated data. Also reachable via CLEANRIDE_OFFLINE=true.
	Offline bool `yaml:"offline"`
}

// StorageConfig points at the SQLite files the import job maintains. Empty
// paths fall back to the built-in demo station registry and no schedule.
type StorageConfig struct {
	StationsDB string `yaml:"stationsDB"`
	ScheduleDB string `yaml:"scheduleDB"`
}

// ScheduleConfig tunes the static-schedule merge.
type ScheduleConfig struct {
	WindowMinutes int `yaml:"windowMinutes" validate:"gte=0"`
}

// LoggingConfig selects the log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Feeds    FeedsConfig    `yaml:"feeds"`
	Storage  StorageConfig  `yaml:"storage"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Logging  LoggingConfig  `yaml:"logging"`
}
