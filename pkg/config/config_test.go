package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ES_INDEX", "")
	t.Setenv("MAX_LATEST_LIMIT", "")
	t.Setenv("STRICT_ORDER_STATUS", "")

	cfg := Load()
	assert.Equal(t, "gallery", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "artworks", cfg.ElasticIndex)
	assert.Equal(t, 50, cfg.MaxLatestLimit)
	assert.False(t, cfg.StrictOrderStatus)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/gallery")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("STRICT_ORDER_STATUS", "true")
	t.Setenv("VERIFY_ORDER_TOTAL", "not-a-bool")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()
	require.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "postgres://u:p@db:5432/gallery", cfg.DatabaseURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.StrictOrderStatus)
	assert.False(t, cfg.VerifyOrderTotal)
	assert.Equal(t, []byte("secret"), cfg.JWTAccessSecret)
}

func TestEnvIntDefault_Invalid(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	assert.Equal(t, 7, EnvIntDefault("SOME_INT", 7))
}
