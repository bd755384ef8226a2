package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, DevSessionSecret, cfg.Session.Secret)
	assert.True(t, cfg.Session.UsingDefault)
	assert.Equal(t, 24*time.Hour, cfg.Session.MaxAge)
	assert.Equal(t, 4, cfg.Hashing.MaxConcurrency)
	assert.Equal(t, 15*time.Minute, cfg.Login.AttemptWindow)
}

func TestFromViperProductionRequiresSecret(t *testing.T) {
	_, err := fromViper(newViper(map[string]interface{}{"ENV": EnvProduction}))
	require.ErrorIs(t, err, ErrMissingSecret)

	_, err = fromViper(newViper(map[string]interface{}{"ENV": EnvProduction, "SECRET_KEY": DevSessionSecret}))
	require.ErrorIs(t, err, ErrMissingSecret)

	cfg, err := fromViper(newViper(map[string]interface{}{"ENV": EnvProduction, "SECRET_KEY": "s3cr3t-value"}))
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t-value", cfg.Session.Secret)
	assert.False(t, cfg.Session.UsingDefault)
}

func TestFromViperMySQLSettings(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]interface{}{
		"MYSQL_HOST":     "db.internal",
		"MYSQL_USER":     "portal",
		"MYSQL_PASSWORD": "pw",
		"MYSQL_DB":       "requests",
		"MYSQL_PORT":     3307,
	}))
	require.NoError(t, err)
	assert.Equal(t, DatabaseConfig{Host: "db.internal", Port: 3307, User: "portal", Password: "pw", Name: "requests", MaxOpenConns: 10, MaxIdleConns: 5}, cfg.Database)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("soon", time.Minute))
	assert.Equal(t, 2*time.Hour, parseDuration("2h", time.Minute))
}

func TestFromViperDiagnosticsOrigins(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)
	assert.Empty(t, cfg.CORS.AllowedOrigins)

	cfg, err = fromViper(newViper(map[string]interface{}{
		"DIAGNOSTICS_ALLOWED_ORIGINS": " https://status.example.org, ,https://ops.example.org ",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://status.example.org", "https://ops.example.org"}, cfg.CORS.AllowedOrigins)
}
