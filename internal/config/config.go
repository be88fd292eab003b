package config

import (
	"errors"
	"fmt"
	"os"

	"daybook/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig            `yaml:"app"`
	API        APIConfig            `yaml:"api"`
	Storage    StorageConfig        `yaml:"storage"`
	Redis      RedisConfig          `yaml:"redis"`
	Backup     BackupConfig         `yaml:"backup"`
	Monitoring MonitoringConfig     `yaml:"monitoring"`
	Logging    LoggingConfig        `yaml:"logging"`
	Currency   CurrencyConfig       `yaml:"currency"`
	Labels     models.MessageLabels `yaml:"labels"`
	Plans      PlanConfig           `yaml:"plans"`
	Exports    ExportConfig         `yaml:"exports"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type APIConfig struct {
	Port      int                `yaml:"port"`
	Auth      APIAuthConfig      `yaml:"auth"`
	RateLimit APIRateLimitConfig `yaml:"rate_limit"`
}

type APIAuthConfig struct {
	Enabled      bool           `yaml:"enabled"`
	HeaderAPIKey string         `yaml:"header_api_key"`
	APIKeys      []APIClientKey `yaml:"api_keys"`
}

type APIClientKey struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

type APIRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"` // sqlite or file
	Path    string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type BackupConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Schedule      string `yaml:"schedule"`
	RetentionDays int    `yaml:"retention_days"`
	StoragePath   string `yaml:"storage_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type CurrencyConfig struct {
	Code string `yaml:"code"`
}

type PlanConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; environment variables referenced from the YAML
	// still expand without it.
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return errors.New("storage path is required")
	}

	switch c.Storage.Backend {
	case "sqlite", "file":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.API.Auth.Enabled && len(c.API.Auth.APIKeys) == 0 {
		return errors.New("api auth is enabled but no api keys are configured")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "daybook"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.API.Auth.HeaderAPIKey == "" {
		c.API.Auth.HeaderAPIKey = "x-api-key"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = "sqlite"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/daybook.db"
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Currency.Code == "" {
		c.Currency.Code = "IQD"
	}
	if c.Plans.TTLSeconds == 0 {
		c.Plans.TTLSeconds = 300
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}

	defaults := models.DefaultMessageLabels()
	fillLabels(&c.Labels, defaults)
}

func fillLabels(l *models.MessageLabels, d models.MessageLabels) {
	if l.Title == "" {
		l.Title = d.Title
	}
	if l.DateLabel == "" {
		l.DateLabel = d.DateLabel
	}
	if l.PeriodLabel == "" {
		l.PeriodLabel = d.PeriodLabel
	}
	if l.MorningText == "" {
		l.MorningText = d.MorningText
	}
	if l.EveningText == "" {
		l.EveningText = d.EveningText
	}
	if l.FullDayText == "" {
		l.FullDayText = d.FullDayText
	}
	if l.NameLabel == "" {
		l.NameLabel = d.NameLabel
	}
	if l.PhoneLabel == "" {
		l.PhoneLabel = d.PhoneLabel
	}
	if l.AddressLabel == "" {
		l.AddressLabel = d.AddressLabel
	}
	if l.NotesLabel == "" {
		l.NotesLabel = d.NotesLabel
	}
	if l.PaymentHeader == "" {
		l.PaymentHeader = d.PaymentHeader
	}
	if l.TotalLabel == "" {
		l.TotalLabel = d.TotalLabel
	}
	if l.PaidLabel == "" {
		l.PaidLabel = d.PaidLabel
	}
	if l.RemainingLabel == "" {
		l.RemainingLabel = d.RemainingLabel
	}
	if l.Closing == "" {
		l.Closing = d.Closing
	}
}
