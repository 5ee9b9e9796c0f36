package database

import (
	"os"
	"testing"
	"time"

	"github.com/tracknest/tracknest/config"

	"github.com/stretchr/testify/assert"
)

func TestGetPostgresDSN(t *testing.T) {
	testCases := []struct {
		name     string
		config   *config.DatabaseConfig
		expected string
	}{
		{
			name: "standard config",
			config: &config.DatabaseConfig{
				Host:     "localhost",
				Port:     5432,
				User:     "postgres",
				Password: "password",
				SSLMode:  "disable",
			},
			expected: "host=localhost port=5432 user=postgres password=password dbname=postgres sslmode=disable",
		},
		{
			name: "remote host",
			config: &config.DatabaseConfig{
				Host:     "db.example.com",
				Port:     5433,
				User:     "app_user",
				Password: "secure_password",
				SSLMode:  "require",
			},
			expected: "host=db.example.com port=5433 user=app_user password=secure_password dbname=postgres sslmode=require",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := GetPostgresDSN(tc.config)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestGetConnectionPoolSettings(t *testing.T) {
	t.Run("test environment uses small pools", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "test")

		maxOpen, maxIdle, maxLifetime := GetConnectionPoolSettings()
		assert.Equal(t, 10, maxOpen)
		assert.Equal(t, 5, maxIdle)
		assert.Equal(t, 2*time.Minute, maxLifetime)
	})

	t.Run("integration tests use small pools", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "")
		t.Setenv("INTEGRATION_TESTS", "true")

		maxOpen, maxIdle, _ := GetConnectionPoolSettings()
		assert.Equal(t, 10, maxOpen)
		assert.Equal(t, 5, maxIdle)
	})

	t.Run("production settings", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		os.Unsetenv("INTEGRATION_TESTS")

		maxOpen, maxIdle, maxLifetime := GetConnectionPoolSettings()
		assert.Equal(t, 25, maxOpen)
		assert.Equal(t, 25, maxIdle)
		assert.Equal(t, 20*time.Minute, maxLifetime)
	})
}
