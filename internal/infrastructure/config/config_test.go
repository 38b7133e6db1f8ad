package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"FARM_APP_NAME":                os.Getenv("FARM_APP_NAME"),
		"FARM_APP_ENV":                 os.Getenv("FARM_APP_ENV"),
		"FARM_APP_PORT":                os.Getenv("FARM_APP_PORT"),
		"FARM_DATABASE_HOST":           os.Getenv("FARM_DATABASE_HOST"),
		"FARM_DATABASE_PORT":           os.Getenv("FARM_DATABASE_PORT"),
		"FARM_DATABASE_USER":           os.Getenv("FARM_DATABASE_USER"),
		"FARM_DATABASE_PASSWORD":       os.Getenv("FARM_DATABASE_PASSWORD"),
		"FARM_DATABASE_DBNAME":         os.Getenv("FARM_DATABASE_DBNAME"),
		"FARM_DATABASE_SSLMODE":        os.Getenv("FARM_DATABASE_SSLMODE"),
		"FARM_DATABASE_MAX_OPEN_CONNS": os.Getenv("FARM_DATABASE_MAX_OPEN_CONNS"),
		"FARM_DATABASE_MAX_IDLE_CONNS": os.Getenv("FARM_DATABASE_MAX_IDLE_CONNS"),
		"FARM_JWT_SECRET":              os.Getenv("FARM_JWT_SECRET"),
		"FARM_CART_BACKEND":            os.Getenv("FARM_CART_BACKEND"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "farmmarket-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "farmmarket", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "memory", cfg.Cart.Backend)
	})

	t.Run("loads values from environment variables with FARM prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("FARM_APP_NAME", "test-app")
		os.Setenv("FARM_APP_ENV", "testing")
		os.Setenv("FARM_APP_PORT", "9000")
		os.Setenv("FARM_DATABASE_HOST", "testdb.local")
		os.Setenv("FARM_DATABASE_PORT", "5433")
		os.Setenv("FARM_DATABASE_USER", "testuser")
		os.Setenv("FARM_DATABASE_PASSWORD", "testpass")
		os.Setenv("FARM_DATABASE_DBNAME", "testdb")
		os.Setenv("FARM_DATABASE_SSLMODE", "require")
		os.Setenv("FARM_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("FARM_DATABASE_MAX_IDLE_CONNS", "10")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("FARM_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("FARM_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("FARM_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("rejects unknown cart backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("FARM_CART_BACKEND", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cart.backend")
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("FARM_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("production rejects in-memory carts", func(t *testing.T) {
		clearEnv()
		os.Setenv("FARM_APP_ENV", "production")
		os.Setenv("FARM_JWT_SECRET", "0123456789abcdef0123456789abcdef")
		os.Setenv("FARM_DATABASE_PASSWORD", "secret")
		os.Setenv("FARM_DATABASE_SSLMODE", "require")
		os.Setenv("FARM_CART_BACKEND", "memory")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cart.backend")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "farm",
		Password: "p@ss/word",
		DBName:   "farmmarket",
		SSLMode:  "require",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisConfig_Addr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}
