package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "log", cfg.Audit.Sink)
	assert.Equal(t, "AuditLogDB", cfg.Audit.MongoDatabase)
	assert.Equal(t, "auditLogs", cfg.Audit.MongoCollection)
	assert.Equal(t, 256, cfg.Audit.QueueSize)
	assert.Equal(t, 5*time.Second, cfg.Audit.WriteTimeout)
	assert.Equal(t, 300*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, int32(10), cfg.DB.MaxConns)
	assert.Equal(t, int32(1), cfg.DB.MinConns)
	assert.Equal(t, 15*time.Second, cfg.DB.StatementTimeout)
	assert.False(t, cfg.DB.PreferIPv4)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "MEMORY")
	v.Set("DB_AUTO_MIGRATE", "false")
	v.Set("AUDIT_SINK", "kafka")
	v.Set("AUDIT_KAFKA_BROKERS", "k1:9092, k2:9092,")
	v.Set("HTTP_PORT", "9090")
	v.Set("CACHE_TTL_SECONDS", "60")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Audit.KafkaBrokers)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, time.Minute, cfg.Redis.TTL)
}

func TestFromViper_ValoresInvalidos(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", "mysql")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("AUDIT_SINK", "s3")
	_, err = fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("DB_MIN_CONNS", "20")
	v.Set("DB_MAX_CONNS", "5")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "bodegas", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/bodegas?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
