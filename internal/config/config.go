// Package config provides configuration management for blockcraft using
// Viper for loading from files, environment variables and command-line flags.
//
// Values come from .blockcraft.yml, a .env file and BLOCKCRAFT_ prefixed
// environment variables (BLOCKCRAFT_SERVER_PORT, BLOCKCRAFT_DEPLOY_SUCCESS_RATE).
// The assistant API key may also be given as GEMINI_API_KEY.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/conneroisu/blockcraft/internal/errors"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "BLOCKCRAFT"
	// DefaultConfigFile is looked up in the working directory.
	DefaultConfigFile = ".blockcraft.yml"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Project   ProjectConfig   `mapstructure:"project" yaml:"project"`
	Assistant AssistantConfig `mapstructure:"assistant" yaml:"assistant"`
	Deploy    DeployConfig    `mapstructure:"deploy" yaml:"deploy"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Export    ExportConfig    `mapstructure:"export" yaml:"export"`
}

type ServerConfig struct {
	Host           string          `mapstructure:"host" yaml:"host"`
	Port           int             `mapstructure:"port" yaml:"port"`
	AllowedOrigins []string        `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	Environment    string          `mapstructure:"environment" yaml:"environment"`
	RateLimit      RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// RateLimitConfig bounds requests per client to the assistant endpoints.
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled" yaml:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
	Burst             int  `mapstructure:"burst" yaml:"burst"`
}

type ProjectConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

type AssistantConfig struct {
	APIKey        string        `mapstructure:"api_key" yaml:"-"`
	BaseURL       string        `mapstructure:"base_url" yaml:"base_url"`
	Model         string        `mapstructure:"model" yaml:"model"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
	HistoryWindow int           `mapstructure:"history_window" yaml:"history_window"`
	History       HistoryConfig `mapstructure:"history" yaml:"history"`
	Upload        UploadConfig  `mapstructure:"upload" yaml:"upload"`
}

type HistoryConfig struct {
	Backend   string        `mapstructure:"backend" yaml:"backend"`
	RedisAddr string        `mapstructure:"redis_addr" yaml:"redis_addr"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

type UploadConfig struct {
	MaxBytes     int64    `mapstructure:"max_bytes" yaml:"max_bytes"`
	AllowedTypes []string `mapstructure:"allowed_types" yaml:"allowed_types"`
}

type DeployConfig struct {
	SuccessRate float64 `mapstructure:"success_rate" yaml:"success_rate"`
	TimeScale   float64 `mapstructure:"time_scale" yaml:"time_scale"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type ExportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// History backends.
const (
	HistoryMemory = "memory"
	HistoryRedis  = "redis"
)

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "localhost",
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:8080", "http://127.0.0.1:8080"},
			Environment:    "development",
			RateLimit:      RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 10},
		},
		Project: ProjectConfig{Name: "My Website"},
		Assistant: AssistantConfig{
			BaseURL:       "https://generativelanguage.googleapis.com/v1beta",
			Model:         "gemini-1.5-flash",
			Timeout:       60 * time.Second,
			HistoryWindow: 5,
			History: HistoryConfig{
				Backend:   HistoryMemory,
				RedisAddr: "localhost:6379",
				TTL:       24 * time.Hour,
			},
			Upload: UploadConfig{
				MaxBytes:     10 << 20,
				AllowedTypes: []string{"jpeg", "jpg", "png", "gif", "webp"},
			},
		},
		Deploy: DeployConfig{SuccessRate: 0.9, TimeScale: 1},
		Log:    LogConfig{Level: "info", Format: "text"},
		Export: ExportConfig{Dir: "dist"},
	}
}

// SetDefaults registers every key with viper so environment overrides are
// picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.allowed_origins", d.Server.AllowedOrigins)
	v.SetDefault("server.environment", d.Server.Environment)
	v.SetDefault("server.rate_limit.enabled", d.Server.RateLimit.Enabled)
	v.SetDefault("server.rate_limit.requests_per_minute", d.Server.RateLimit.RequestsPerMinute)
	v.SetDefault("server.rate_limit.burst", d.Server.RateLimit.Burst)
	v.SetDefault("project.name", d.Project.Name)
	v.SetDefault("assistant.api_key", "")
	v.SetDefault("assistant.base_url", d.Assistant.BaseURL)
	v.SetDefault("assistant.model", d.Assistant.Model)
	v.SetDefault("assistant.timeout", d.Assistant.Timeout)
	v.SetDefault("assistant.history_window", d.Assistant.HistoryWindow)
	v.SetDefault("assistant.history.backend", d.Assistant.History.Backend)
	v.SetDefault("assistant.history.redis_addr", d.Assistant.History.RedisAddr)
	v.SetDefault("assistant.history.ttl", d.Assistant.History.TTL)
	v.SetDefault("assistant.upload.max_bytes", d.Assistant.Upload.MaxBytes)
	v.SetDefault("assistant.upload.allowed_types", d.Assistant.Upload.AllowedTypes)
	v.SetDefault("deploy.success_rate", d.Deploy.SuccessRate)
	v.SetDefault("deploy.time_scale", d.Deploy.TimeScale)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("export.dir", d.Export.Dir)
}

// Init points the global viper at the config file and the environment.
// cfgFile wins over BLOCKCRAFT_CONFIG_FILE, which wins over .blockcraft.yml in
// the working directory. A missing file is not an error.
func Init(cfgFile string) (string, error) {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile == "" {
		cfgFile = os.Getenv(EnvPrefix + "_CONFIG_FILE")
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".blockcraft")
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return "", nil
		}
		if cfgFile != "" && os.IsNotExist(err) {
			return "", errors.Config(errors.CodeConfigLoad, "config file not found: "+cfgFile, err)
		}
		return "", errors.Config(errors.CodeConfigLoad, "failed to read config", err)
	}
	return viper.ConfigFileUsed(), nil
}

// Load unmarshals the global viper into a Config, fills zero values with
// defaults and validates the result.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom is Load over an explicit viper instance.
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Config(errors.CodeConfigLoad, "failed to decode config", err)
	}

	if config.Assistant.APIKey == "" {
		config.Assistant.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	d := Defaults()

	if config.Server.Host == "" {
		config.Server.Host = d.Server.Host
	}
	if len(config.Server.AllowedOrigins) == 0 {
		config.Server.AllowedOrigins = d.Server.AllowedOrigins
	}
	if config.Server.Environment == "" {
		config.Server.Environment = d.Server.Environment
	}
	if strings.TrimSpace(config.Project.Name) == "" {
		config.Project.Name = d.Project.Name
	}
	if config.Assistant.BaseURL == "" {
		config.Assistant.BaseURL = d.Assistant.BaseURL
	}
	if config.Assistant.Model == "" {
		config.Assistant.Model = d.Assistant.Model
	}
	if config.Assistant.Timeout == 0 {
		config.Assistant.Timeout = d.Assistant.Timeout
	}
	if config.Assistant.HistoryWindow == 0 {
		config.Assistant.HistoryWindow = d.Assistant.HistoryWindow
	}
	if config.Assistant.History.Backend == "" {
		config.Assistant.History.Backend = d.Assistant.History.Backend
	}
	if config.Assistant.History.TTL == 0 {
		config.Assistant.History.TTL = d.Assistant.History.TTL
	}
	if config.Assistant.Upload.MaxBytes == 0 {
		config.Assistant.Upload.MaxBytes = d.Assistant.Upload.MaxBytes
	}
	if len(config.Assistant.Upload.AllowedTypes) == 0 {
		config.Assistant.Upload.AllowedTypes = d.Assistant.Upload.AllowedTypes
	}
	if config.Log.Level == "" {
		config.Log.Level = d.Log.Level
	}
	if config.Log.Format == "" {
		config.Log.Format = d.Log.Format
	}
	if config.Export.Dir == "" {
		config.Export.Dir = d.Export.Dir
	}
}
