package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int              `json:"port"`
	BaseURL     string           `json:"base_url"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	Database    DatabaseConfig   `json:"database"`
	Mail        MailConfig       `json:"mail"`
	Otp         OtpConfig        `json:"otp"`
	Catalog     CatalogConfig    `json:"catalog"`
	FileStore   FileStoreConfig  `json:"file_store"`
	LogConfig   logger.LogConfig `json:"log_config"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type MailConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

type OtpConfig struct {
	ValiditySeconds       int `json:"validity_seconds"`
	ResendCooldownSeconds int `json:"resend_cooldown_seconds"`
	CleanupAgeMinutes     int `json:"cleanup_age_minutes"`
}

type CatalogConfig struct {
	APIKey       string `json:"api_key"`
	BaseURL      string `json:"base_url"`
	CacheSize    int    `json:"cache_size"`
	TimeoutSecs  int    `json:"timeout_secs"`
	DefaultQuery string `json:"default_query"`
}

type FileStoreConfig struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.Mail.From == "" {
		return nil, fmt.Errorf("mail.from is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = fmt.Sprintf("http://127.0.0.1:%d", cfg.Port)
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.Otp.ValiditySeconds == 0 {
		cfg.Otp.ValiditySeconds = 120
	}
	if cfg.Otp.ResendCooldownSeconds == 0 {
		cfg.Otp.ResendCooldownSeconds = 60
	}
	if cfg.Otp.CleanupAgeMinutes == 0 {
		cfg.Otp.CleanupAgeMinutes = 3
	}
	if cfg.Catalog.BaseURL == "" {
		cfg.Catalog.BaseURL = "https://www.googleapis.com/books/v1"
	}
	if cfg.Catalog.CacheSize == 0 {
		cfg.Catalog.CacheSize = 256
	}
	if cfg.Catalog.TimeoutSecs == 0 {
		cfg.Catalog.TimeoutSecs = 10
	}
	if cfg.Catalog.DefaultQuery == "" {
		cfg.Catalog.DefaultQuery = "science fiction"
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.FileStore.Type == "" {
		cfg.FileStore.Type = "local"
		if cfg.FileStore.Data == nil {
			cfg.FileStore.Data = map[string]interface{}{"dir": "./covers"}
		}
	}
	return &cfg, nil
}
