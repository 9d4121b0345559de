package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory-api/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, "0.0.0.0:8000", cfg.HTTP.Addr())
	assert.Equal(t, config.StoragePostgres, cfg.Storage)
	assert.True(t, cfg.Auth.AllowAdminSignup)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "postgres://postgres:@localhost:5432/smart_inventory?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_ValoresDesdeEnv(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")
	v.Set("HTTP_PORT", "9090")
	v.Set("STORAGE_DRIVER", "Memory")
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092,")
	v.Set("AUTH_ALLOW_ADMIN_SIGNUP", "false")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, config.StorageMemory, cfg.Storage)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Auth.AllowAdminSignup)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
}

func TestFromViper_SinSecret(t *testing.T) {
	_, err := config.FromViper(viper.New())
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("JWT_SECRET", "s3cret")
	v.Set("STORAGE_DRIVER", "mongo")

	_, err := config.FromViper(v)
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss/word", DBName: "d", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@h:5432/d?sslmode=require", c.DSN())
}
