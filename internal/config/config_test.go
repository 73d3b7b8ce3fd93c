package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.Database.Driver)
	assert.False(t, cfg.UsesDatabase())
	assert.Equal(t, 60, cfg.JWT.AccessTokenMins)
	assert.Equal(t, 300*time.Millisecond, cfg.Mock.Delay)
	assert.True(t, cfg.Mock.AcceptAnyPassword)
	assert.Equal(t, int64(42), cfg.Mock.Seed)
	assert.True(t, cfg.Mock.SeedOnStart)
	assert.Equal(t, SeedStatic, cfg.Mock.SeedMode)
	assert.Equal(t, "@every 1h", cfg.Cron.Retention)
	assert.Empty(t, cfg.Cron.Snapshot)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoad_ProdPostgres(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_JWT_SECRET", "prod-secret")
	t.Setenv("MOCK_DELAY", "0s")
	t.Setenv("SEED_MODE", "generated")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "prod-secret", cfg.JWT.Secret)
	assert.Zero(t, cfg.Mock.Delay)
	assert.Equal(t, SeedGenerated, cfg.Mock.SeedMode)
	assert.Contains(t, buildPostgresDSN(cfg.Database), "host=db.internal port=5432")
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"mode":    {"APP_MODE", "staging"},
		"driver":  {"STORAGE_DRIVER", "sqlite"},
		"delay":   {"MOCK_DELAY", "soon"},
		"seed":    {"MOCK_SEED", "abc"},
		"seedset": {"SEED_MODE", "random"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestBuildMySQLDSN(t *testing.T) {
	dsn := buildMySQLDSN(DatabaseConfig{User: "root", Password: "pw", Host: "localhost", Port: "3306", DBName: "procurehub"})
	assert.Equal(t, "root:pw@tcp(localhost:3306)/procurehub?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}

func TestNewBackend_Memory(t *testing.T) {
	b, err := NewBackend(&Config{Database: DatabaseConfig{Driver: DriverMemory}})
	require.NoError(t, err)
	assert.NotNil(t, b)
}
