// Package config loads bot settings from config.toml and the environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	KeyBotToken    = "telegram.bot_token"
	KeyLogLevel    = "bot.log_level"
	KeyLogFile     = "bot.log_file"
	KeyTimeout     = "handler.timeout"
	KeyMetricsAddr = "metrics.listen_addr"

	// TokenEnv is the environment variable holding the Telegram bot token.
	TokenEnv = "TELEGRAM_BOT_TOKEN"
)

type Config struct {
	BotToken       string
	LogLevel       string
	LogFile        string
	HandlerTimeout time.Duration
	MetricsAddr    string
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTimeout, "30s")
	v.SetDefault(KeyMetricsAddr, "")

	_ = v.BindEnv(KeyBotToken, TokenEnv)
	_ = v.BindEnv(KeyLogLevel, "GSBOT_LOG_LEVEL")
	_ = v.BindEnv(KeyLogFile, "GSBOT_LOG_FILE")
	_ = v.BindEnv(KeyMetricsAddr, "GSBOT_METRICS_ADDR")
}

// Load reads the TOML file at path, or config.toml from the working
// directory when path is empty. Only a missing default file is tolerated.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	log.Info().Msg("reading config file...")
	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Info().Msg("no config file found, using environment")
	} else {
		log.Info().Str("file", filepath.Base(v.ConfigFileUsed())).Msg("loaded config file")
	}

	timeout, err := time.ParseDuration(v.GetString(KeyTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid timeout for handler in config: %w", err)
	}

	return &Config{
		BotToken:       v.GetString(KeyBotToken),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFile:        v.GetString(KeyLogFile),
		HandlerTimeout: timeout,
		MetricsAddr:    v.GetString(KeyMetricsAddr),
	}, nil
}
