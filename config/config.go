package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	Mode              string `mapstructure:"MODE"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Runway store.
	MinSeparation int    `mapstructure:"MIN_SEPARATION"`
	StoreBackend  string `mapstructure:"STORE_BACKEND"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisEventsDB        int    `mapstructure:"REDIS_EVENTS_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`
	EventsEnabled        bool   `mapstructure:"EVENTS_ENABLED"`
	RemindersEnabled     bool   `mapstructure:"REMINDERS_ENABLED"`

	// MongoDB audit journal.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`
	AuditEnabled bool   `mapstructure:"AUDIT_ENABLED"`
}

const (
	ModeServer  = "server"
	ModeConsole = "console"
)

// KUnset marks MIN_SEPARATION as not configured; console mode then asks for it.
const KUnset = -1

var AppConfig Config

// LoadConfig fills AppConfig from flags, the environment, config.yaml and defaults.
func LoadConfig() {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load resolves configuration for the given command-line arguments.
// Flags win over environment variables, which win over the config file.
func Load(args []string) (Config, error) {
	v := viper.New()

	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MODE", ModeServer)
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("MIN_SEPARATION", KUnset)
	v.SetDefault("STORE_BACKEND", "bst")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_EVENTS_DB", 0)
	v.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	v.SetDefault("EVENTS_ENABLED", false)
	v.SetDefault("REMINDERS_ENABLED", false)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "runway")
	v.SetDefault("AUDIT_ENABLED", false)

	fs := pflag.NewFlagSet("runway", pflag.ContinueOnError)
	fs.String("mode", ModeServer, "run mode: server or console")
	fs.Int("k", KUnset, "minimum minutes between two reservations")
	fs.String("backend", "bst", "store backend: bst or btree")
	fs.String("port", "8080", "HTTP port in server mode")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	for key, flag := range map[string]string{
		"MODE":           "mode",
		"MIN_SEPARATION": "k",
		"STORE_BACKEND":  "backend",
		"APP_PORT":       "port",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Mode = strings.ToLower(cfg.Mode)

	if cfg.Mode != ModeServer && cfg.Mode != ModeConsole {
		return Config{}, fmt.Errorf("unknown mode %q", cfg.Mode)
	}
	if cfg.MinSeparation < KUnset {
		return Config{}, fmt.Errorf("MIN_SEPARATION must not be negative, got %d", cfg.MinSeparation)
	}
	return cfg, nil
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
