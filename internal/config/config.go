package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	PriceAPI struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"price_api"`
	Chart struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"chart"`
	Mail struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Sender   string `yaml:"sender"`
		Password string `yaml:"password"`
	} `yaml:"mail"`
	Alert struct {
		Ceiling     float64 `yaml:"ceiling"`
		MailingList string  `yaml:"mailing_list"`
	} `yaml:"alert"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PRICE_API_BASE_URL"); v != "" {
		cfg.PriceAPI.BaseURL = v
	}
	if v := os.Getenv("CHART_BASE_URL"); v != "" {
		cfg.Chart.BaseURL = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		cfg.Mail.Host = v
	}
	if v := os.Getenv("SMTP_SENDER"); v != "" {
		cfg.Mail.Sender = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv("MAILING_LIST"); v != "" {
		cfg.Alert.MailingList = v
	}
	if v := os.Getenv("PRICE_CEILING"); v != "" {
		var ceiling float64
		if _, err := fmt.Sscanf(v, "%f", &ceiling); err == nil {
			cfg.Alert.Ceiling = ceiling
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.PriceAPI.BaseURL == "" {
		cfg.PriceAPI.BaseURL = "https://www.hvakosterstrommen.no/api/v1/prices"
	}
	if cfg.Chart.BaseURL == "" {
		cfg.Chart.BaseURL = "https://quickchart.io"
	}
	if cfg.Mail.Host == "" {
		cfg.Mail.Host = "smtp.gmail.com"
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 465
	}
	if cfg.Alert.Ceiling == 0 {
		cfg.Alert.Ceiling = 1.0
	}
	if cfg.Alert.MailingList == "" {
		cfg.Alert.MailingList = "mailing-list.txt"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 19 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stromvarsel.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Mail.Sender == "" {
		return fmt.Errorf("mail.sender is required")
	}
	if c.Mail.Password == "" {
		return fmt.Errorf("mail.password is required")
	}
	if c.Mail.Port <= 0 {
		return fmt.Errorf("mail.port must be positive")
	}
	if c.Alert.Ceiling <= 0 {
		return fmt.Errorf("alert.ceiling must be positive")
	}
	return nil
}
