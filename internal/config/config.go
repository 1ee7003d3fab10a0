package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	FormatJSON = "json"
	FormatText = "text"

	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Config struct {
	LogLevel          string      `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat         string      `yaml:"log-format" env:"LOG_FORMAT" env-default:"json"`
	HTTPPort          string      `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Game              Game        `yaml:"game"`
	Preferences       Preferences `yaml:"preferences"`
	Redis             Redis       `yaml:"redis"`
	SQLiteStoragePath string      `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"./data/preferences.db"`
}

type Game struct {
	AIDelay       time.Duration `yaml:"ai-delay" env:"GAME_AI_DELAY" env-default:"300ms"`
	SoundDebounce time.Duration `yaml:"sound-debounce" env:"GAME_SOUND_DEBOUNCE" env-default:"120ms"`
	SessionTTL    time.Duration `yaml:"session-ttl" env:"GAME_SESSION_TTL" env-default:"30m"`
}

type Preferences struct {
	Backend string `yaml:"backend" env:"PREFERENCES_BACKEND" env-default:"memory"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load reads the yml file at path with environment overrides. A missing file falls back to
// the environment and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	default:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
