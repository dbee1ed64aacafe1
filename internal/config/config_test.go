package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				// Verify some key fields are populated
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
				assert.Equal(t, 587, cfg.SMTP.Port)
				assert.Equal(t, "mandatory", cfg.SMTP.TLSPolicy)
				assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
				assert.Equal(t, time.Second, cfg.Sender.SendInterval)
				assert.Equal(t, "automail-api", cfg.App.Name)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			SMTP: SMTPConfig{
				Host:      "smtp.gmail.com",
				Port:      587,
				TLSPolicy: "mandatory",
			},
			Sender: SenderConfig{SendInterval: time.Second},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:      "server port too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "server port too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "empty smtp host",
			mutate:    func(c *Config) { c.SMTP.Host = "" },
			wantErr:   true,
			errString: "smtp host is required",
		},
		{
			name:      "invalid smtp port",
			mutate:    func(c *Config) { c.SMTP.Port = -1 },
			wantErr:   true,
			errString: "invalid smtp port",
		},
		{
			name:      "invalid tls policy",
			mutate:    func(c *Config) { c.SMTP.TLSPolicy = "sometimes" },
			wantErr:   true,
			errString: "invalid smtp tls_policy",
		},
		{
			name:    "empty tls policy allowed",
			mutate:  func(c *Config) { c.SMTP.TLSPolicy = "" },
			wantErr: false,
		},
		{
			name:      "negative send interval",
			mutate:    func(c *Config) { c.Sender.SendInterval = -time.Second },
			wantErr:   true,
			errString: "send_interval must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
