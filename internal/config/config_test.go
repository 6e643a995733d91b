package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("DB_USER", "testuser")
		t.Setenv("DB_PASSWORD", "testpass")
		t.Setenv("DB_NAME", "testdb")
		t.Setenv("DB_PORT", "5432")
		t.Setenv("APP_PORT", "9090")
		t.Setenv("APP_ENV", "test")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("COMPANY_NAME", "Acme Traders")
		t.Setenv("APP_TIMEZONE", "UTC")
		t.Setenv("APP_USERNAME", "admin")
		t.Setenv("APP_PASSWORD", "admin-pass")

		cfg := LoadConfig()

		assert.NotNil(t, cfg)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "testuser", cfg.DBUser)
		assert.Equal(t, "testpass", cfg.DBPassword)
		assert.Equal(t, "testdb", cfg.DBName)
		assert.Equal(t, "5432", cfg.DBPort)
		assert.Equal(t, "9090", cfg.AppPort)
		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, "secret", cfg.JWTSecret)
		assert.Equal(t, "Acme Traders", cfg.CompanyName)
		assert.Equal(t, "UTC", cfg.Timezone)
		assert.Contains(t, cfg.Credentials, Credential{Username: "admin", Password: "admin-pass"})
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("DB_HOST", "localhost")
		t.Setenv("JWT_SECRET", "secret")
		t.Setenv("APP_PORT", "")
		t.Setenv("CORS_ORIGIN", "")
		t.Setenv("COMPANY_NAME", "")
		t.Setenv("APP_TIMEZONE", "")

		cfg := LoadConfig()

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "http://localhost:3000", cfg.CORSOrigin)
		assert.Equal(t, "Invoice Desk", cfg.CompanyName)
		assert.Equal(t, "Asia/Kolkata", cfg.Timezone)
	})
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("APP_USERNAME", "owner")
	t.Setenv("APP_PASSWORD", "p0")
	t.Setenv("APP_USERNAME1", "")
	t.Setenv("APP_PASSWORD1", "ignored")
	t.Setenv("APP_USERNAME2", "clerk")
	t.Setenv("APP_PASSWORD2", "p2")
	t.Setenv("APP_USERNAME3", "")
	t.Setenv("APP_USERNAME4", "")

	creds := loadCredentials()

	assert.Equal(t, []Credential{
		{Username: "owner", Password: "p0"},
		{Username: "clerk", Password: "p2"},
	}, creds)
}
