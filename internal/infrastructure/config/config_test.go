package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := defaultConfig()

	assert.Equal(t, "claimdesk-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "claimdesk.db", cfg.Database.Path)
	assert.Equal(t, int64(50_000_000), cfg.Export.MaxFileSize)
	assert.Equal(t, "exports", cfg.Export.OutputDir)
	assert.False(t, cfg.Storage.Enabled)
	assert.False(t, cfg.Mail.Enabled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "unknown database driver",
			mutate:  func(c *Config) { c.Database.Driver = "oracle" },
			wantErr: "database.driver",
		},
		{
			name:    "idle conns exceed open conns",
			mutate:  func(c *Config) { c.Database.MaxIdleConns = 100 },
			wantErr: "max_idle_conns",
		},
		{
			name:    "storage enabled without bucket",
			mutate:  func(c *Config) { c.Storage.Enabled = true },
			wantErr: "storage.bucket",
		},
		{
			name: "storage enabled without credentials",
			mutate: func(c *Config) {
				c.Storage.Enabled = true
				c.Storage.Bucket = "claims"
			},
			wantErr: "storage credentials",
		},
		{
			name:    "mail enabled without host",
			mutate:  func(c *Config) { c.Mail.Enabled = true },
			wantErr: "mail.host",
		},
		{
			name: "production postgres requires password",
			mutate: func(c *Config) {
				c.App.Env = "production"
				c.Database.Driver = "postgres"
			},
			wantErr: "database.password",
		},
		{
			name: "production rejects wildcard CORS",
			mutate: func(c *Config) {
				c.App.Env = "production"
				c.HTTP.CORSAllowOrigins = []string{"*"}
			},
			wantErr: "cors_allow_origins",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDSN(t *testing.T) {
	t.Run("sqlite uses the file path", func(t *testing.T) {
		d := DatabaseConfig{Driver: "sqlite", Path: "claims.db"}
		assert.Equal(t, "claims.db", d.DSN())
	})

	t.Run("postgres escapes credentials", func(t *testing.T) {
		d := DatabaseConfig{
			Driver:   "postgres",
			Host:     "db.internal",
			Port:     5432,
			User:     "claims",
			Password: "p@ss/word",
			DBName:   "claimdesk",
			SSLMode:  "require",
		}
		dsn := d.DSN()
		assert.True(t, strings.HasPrefix(dsn, "postgres://"))
		assert.Contains(t, dsn, "db.internal:5432")
		assert.Contains(t, dsn, "sslmode=require")
		assert.NotContains(t, dsn, "p@ss/word", "password must be URL-escaped")
	})
}
