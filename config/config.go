package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds all configuration for the provisioning service.
// Tags use mapstructure for Viper unmarshalling.
type ServerConfig struct {
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogPretty   bool   `mapstructure:"LOG_PRETTY"`

	// BcryptCost is the adaptive cost factor for credential hashing.
	BcryptCost int `mapstructure:"BCRYPT_COST"`

	// Default client bootstrap. When DefaultClientCreate is set and no
	// client with DefaultClientID exists, one is created at startup.
	DefaultClientCreate      bool   `mapstructure:"DEFAULT_CLIENT_CREATE"`
	DefaultClientID          string `mapstructure:"DEFAULT_CLIENT_ID"`
	DefaultClientSecret      string `mapstructure:"DEFAULT_CLIENT_SECRET"`
	DefaultClientScope       string `mapstructure:"DEFAULT_CLIENT_SCOPE"`
	DefaultClientTokenTTLSec int    `mapstructure:"DEFAULT_CLIENT_TOKEN_TTL_SEC"`
}

// LoadConfig reads configuration from file, environment variables, and
// defaults.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/ssoadmin/")
	v.AddConfigPath("$HOME/.ssoadmin")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/ssoadmin_dev")
	v.SetDefault("MONGO_DB_NAME", "ssoadmin_dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("DEFAULT_CLIENT_CREATE", false)
	v.SetDefault("DEFAULT_CLIENT_ID", "maintainer")
	v.SetDefault("DEFAULT_CLIENT_SECRET", "")
	v.SetDefault("DEFAULT_CLIENT_SCOPE", "maintainer")
	v.SetDefault("DEFAULT_CLIENT_TOKEN_TTL_SEC", 300)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
