package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	AI      AIConfig      `yaml:"ai"`
	Sender  SenderConfig  `yaml:"sender"`
	Logging LoggingConfig `yaml:"logging"`
	App     AppConfig     `yaml:"app"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SMTPConfig holds mail transport configuration. Sender credentials are not
// configured here; every send job supplies its own.
type SMTPConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	TLSPolicy   string        `yaml:"tls_policy"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

// AIConfig holds email drafting configuration. The API key is read from the
// GEMINI_API_KEY environment variable, never from the config file.
type AIConfig struct {
	Model string `yaml:"model"`
}

// SenderConfig holds send job execution settings
type SenderConfig struct {
	SendInterval  time.Duration `yaml:"send_interval"`
	AttachmentDir string        `yaml:"attachment_dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// Load reads and parses the configuration file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.SMTP.Host == "" {
		return fmt.Errorf("smtp host is required")
	}

	if c.SMTP.Port < MinPort || c.SMTP.Port > MaxPort {
		return fmt.Errorf("invalid smtp port: %d (must be between %d and %d)", c.SMTP.Port, MinPort, MaxPort)
	}

	switch c.SMTP.TLSPolicy {
	case "", "mandatory", "opportunistic", "none":
	default:
		return fmt.Errorf("invalid smtp tls_policy: %q (must be mandatory, opportunistic or none)", c.SMTP.TLSPolicy)
	}

	if c.Sender.SendInterval < 0 {
		return fmt.Errorf("sender send_interval must not be negative")
	}

	return nil
}
