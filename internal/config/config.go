package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"supportbot/internal/validation"
)

type Config struct {
	// Client
	BackendURL       string        `mapstructure:"BACKEND_URL" validate:"required,url"`
	RequestTimeout   time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	HistoryLimit     int           `mapstructure:"HISTORY_LIMIT" validate:"min=1"`
	NoticeDuration   time.Duration `mapstructure:"NOTICE_DURATION"`
	RefreshDebounce  time.Duration `mapstructure:"REFRESH_DEBOUNCE"`
	SequencedRefresh bool          `mapstructure:"SEQUENCED_REFRESH"`
	SerializeSends   bool          `mapstructure:"SERIALIZE_SENDS"`

	// Dev backend
	ServerPort   int    `mapstructure:"SERVER_PORT" validate:"min=1,max=65535"`
	DatabasePath string `mapstructure:"DATABASE_PATH" validate:"required"`
	OllamaURL    string `mapstructure:"OLLAMA_URL" validate:"omitempty,url"`
	OllamaModel  string `mapstructure:"OLLAMA_MODEL"`

	LogLevel string `mapstructure:"LOG_LEVEL"`

	// ConfigFile is the .env file that was read, empty when none was found.
	ConfigFile string `mapstructure:"-"`
}

// LoadConfig reads defaults, an optional .env file and the environment, in
// that order of increasing precedence. Flags set on the command line override
// everything; a flag named "backend-url" maps to the BACKEND_URL key.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("BACKEND_URL", "http://localhost:8000")
	v.SetDefault("REQUEST_TIMEOUT", 0)
	v.SetDefault("HISTORY_LIMIT", 10)
	v.SetDefault("NOTICE_DURATION", "5s")
	v.SetDefault("REFRESH_DEBOUNCE", 0)
	v.SetDefault("SEQUENCED_REFRESH", true)
	v.SetDefault("SERIALIZE_SENDS", false)
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("DATABASE_PATH", "./data/supportbot.db")
	v.SetDefault("OLLAMA_URL", "")
	v.SetDefault("OLLAMA_MODEL", "llama3.2")
	v.SetDefault("LOG_LEVEL", "INFO")

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = fmt.Errorf("could not bind flag %q: %w", f.Name, err)
			}
		})
		if bindErr != nil {
			return nil, bindErr
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	if err := validation.Struct(cfg); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout < 0 || cfg.RefreshDebounce < 0 || cfg.NoticeDuration < 0 {
		return nil, errors.New("durations must not be negative")
	}

	return &cfg, nil
}
