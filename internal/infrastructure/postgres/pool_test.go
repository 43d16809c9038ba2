package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodegas-api/pkg/config"
)

func testDBConfig() config.DBConfig {
	return config.DBConfig{
		Host: "127.0.0.1", Port: 5432, User: "postgres", Password: "secret", DBName: "bodegas", SSLMode: "disable",
		MaxConns: 8, MinConns: 2,
		MaxConnLifetime:  time.Hour,
		MaxConnIdleTime:  5 * time.Minute,
		StatementTimeout: 15 * time.Second,
	}
}

func TestPoolConfigFrom_AplicaPoolYSesion(t *testing.T) {
	pc, err := poolConfigFrom(testDBConfig())
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, pc.MaxConnIdleTime)
	assert.NotNil(t, pc.AfterConnect)

	params := pc.ConnConfig.RuntimeParams
	assert.Equal(t, "read committed", params["default_transaction_isolation"])
	assert.Equal(t, "15000", params["statement_timeout"])
	assert.Equal(t, "bodegas-api", params["application_name"])
	assert.Equal(t, "bodegas", pc.ConnConfig.Database)
}

func TestPoolConfigFrom_SinStatementTimeout(t *testing.T) {
	cfg := testDBConfig()
	cfg.StatementTimeout = 0
	pc, err := poolConfigFrom(cfg)
	require.NoError(t, err)
	_, ok := pc.ConnConfig.RuntimeParams["statement_timeout"]
	assert.False(t, ok)
}

func TestPoolConfigFrom_DSNInvalido(t *testing.T) {
	cfg := testDBConfig()
	cfg.DatabaseURL = "postgres://%zz"
	_, err := poolConfigFrom(cfg)
	assert.Error(t, err)
}

func TestWithIPv4Host_IPLiteralSinCambios(t *testing.T) {
	dsn := "postgres://u:p@10.0.0.5:5432/bodegas?sslmode=disable"
	assert.Equal(t, dsn, withIPv4Host(dsn))
	assert.Equal(t, "::not a url", withIPv4Host("::not a url"))
}
