package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"AUDIT_CONFIG", "PORT", "USE_HTTPS", "DATABASE_PATH",
		"AUTH_PROVIDER", "AUTH_DOMAIN", "AUTH_CLIENT_ID", "AUTH_CLIENT_SECRET", "AUTH_CALLBACK_URL",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	// keep godotenv away from any .env next to the package
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "audit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
database:
  path: /var/lib/audit.db
log:
  level: debug
  format: text
`), 0o644))

	t.Setenv("AUDIT_CONFIG", path)
	t.Setenv("PORT", "9100")
	t.Setenv("USE_HTTPS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Server.Port)
	assert.True(t, cfg.Server.UseHTTPS)
	assert.Equal(t, "/var/lib/audit.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)

	logger := cfg.NewLogger()
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that is already set, even to ""
	require.NoError(t, os.Unsetenv("DATABASE_PATH"))
	require.NoError(t, os.WriteFile(".env", []byte("DATABASE_PATH=from-dotenv.db\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.Database.Path)
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUDIT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"missing database", func(c *Config) { c.Database.Path = "" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"auth without secrets", func(c *Config) { c.Auth.Domain = "example.auth0.com" }, true},
		{"unknown provider", func(c *Config) {
			c.Auth = AuthConfig{Provider: "saml", Domain: "d", ClientID: "id", ClientSecret: "s", CallbackURL: "cb"}
		}, true},
		{"complete auth", func(c *Config) {
			c.Auth = AuthConfig{Provider: "oidc", Domain: "d", ClientID: "id", ClientSecret: "s", CallbackURL: "cb"}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
