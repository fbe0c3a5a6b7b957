package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, "production", cfg.App.Env)
	assert.False(t, cfg.App.IsDevelopment())
	assert.Equal(t, 30*time.Second, cfg.Dashboard.PushInterval)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 10, cfg.DB.MaxConns)
}

func TestFromViper_SobrescribeDesdeEntorno(t *testing.T) {
	v := viper.New()
	v.Set("PORT", "8081")
	v.Set("NODE_ENV", "development")
	v.Set("DASHBOARD_PUSH_INTERVAL", "5s")
	v.Set("REDIS_URL", "redis://localhost:6379/0")
	v.Set("DB_MAX_CONNS", "4")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, 5*time.Second, cfg.Dashboard.PushInterval)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 4, cfg.DB.MaxConns)
}

func TestFromViper_IntervaloEnSegundos(t *testing.T) {
	v := viper.New()
	v.Set("DASHBOARD_PUSH_INTERVAL", "45")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Dashboard.PushInterval)
}

func TestFromViper_IntervaloInvalido(t *testing.T) {
	v := viper.New()
	v.Set("DASHBOARD_PUSH_INTERVAL", "-3s")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_PuertoInvalido(t *testing.T) {
	v := viper.New()
	v.Set("PORT", "70000")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "heraclion", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/heraclion?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://u:p@h:1/d"
	assert.Equal(t, "postgres://u:p@h:1/d", c.ConnectionString())
}
