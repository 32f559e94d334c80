package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "3306", cfg.DB.Port)
	assert.Equal(t, "root", cfg.DB.User)
	assert.Equal(t, "user_service", cfg.DB.Name)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
	assert.Equal(t, "3000", cfg.App.HTTPPort)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "user-rest-service", cfg.Logger.ServiceName)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "users_prod")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("REDIS_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "users_prod", cfg.DB.Name)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.True(t, cfg.Redis.Enabled)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     "3306",
		User:     "root",
		Password: "secret",
		Name:     "users_db",
	}

	dsn := db.DSN()
	assert.Contains(t, dsn, "root:secret@tcp(localhost:3306)/users_db")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "clientFoundRows=true")
}

func TestDatabaseConfig_BootstrapDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "localhost",
		Port: "3306",
		User: "root",
		Name: "users_db",
	}

	dsn := db.BootstrapDSN()
	// No database selected before provisioning.
	assert.NotContains(t, dsn, "users_db")
	assert.True(t, strings.Contains(dsn, "tcp(localhost:3306)/"))
}

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			DB: DatabaseConfig{
				Host:         "localhost",
				User:         "root",
				Name:         "users_db",
				MaxOpenConns: 10,
			},
			App: AppConfig{HTTPPort: "3000"},
		}
	}

	assert.NoError(t, base().Validate())

	noHost := base()
	noHost.DB.Host = ""
	assert.Error(t, noHost.Validate())

	noName := base()
	noName.DB.Name = ""
	assert.Error(t, noName.Validate())

	noPort := base()
	noPort.App.HTTPPort = ""
	assert.Error(t, noPort.Validate())

	redisNoHost := base()
	redisNoHost.Redis.Enabled = true
	assert.Error(t, redisNoHost.Validate())
}
