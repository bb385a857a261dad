package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the planner service.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Remote  RemoteConfig  `mapstructure:"remote"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Planner PlannerConfig `mapstructure:"planner"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// RemoteConfig points at the CRM persistence service the engine synchronizes
// day records with.
type RemoteConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Token         string        `mapstructure:"token"` // service token; per-request bearer tokens override it
	Timeout       time.Duration `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"` // day loads only, never meal creation
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

// JWTConfig defines validation settings for trainer tokens issued by the CRM.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// PlannerConfig drives the calendar navigator: which week numbers of the plan
// cycle are selectable and the Monday-first day names to display.
type PlannerConfig struct {
	WeekNumbers []int    `mapstructure:"week_numbers"`
	DayNames    []string `mapstructure:"day_names"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	// Nested keys via env, e.g. remote.base_url -> REMOTE_BASE_URL
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("remote.base_url", "http://localhost:9000/api/v1")
	viper.SetDefault("remote.timeout", "10s")
	viper.SetDefault("remote.retry_attempts", 3)
	viper.SetDefault("remote.retry_delay", "250ms")
	viper.SetDefault("planner.week_numbers", []int{1, 2, 3, 4})
	viper.SetDefault("planner.day_names", []string{
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	})

	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults cover everything.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
