package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  port: 9000
database:
  host: localhost
  user: dronehub
  database: dronehub
jwt:
  secret: "0123456789abcdef0123456789abcdef"
cart:
  base_url: "http://cart.local"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Server.ReadTimeoutSeconds)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Redis.CacheTTLMinutes)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL())
	assert.Equal(t, "", cfg.GetRedisAddress())
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL())
	assert.Equal(t, 10, cfg.Cart.TimeoutSeconds)
	assert.Equal(t, "UTC", cfg.Store.TimeZone)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, 12, cfg.Store.PageSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "0 */5 * * * *", cfg.Scheduler.WarmProductCache)
	assert.Equal(t, "0 0 3 * * *", cfg.Scheduler.AuditDroneConfig)
	assert.Equal(t, "postgres://dronehub:@localhost:0/dronehub?sslmode=disable", cfg.GetDatabaseConnectionString())
	assert.Equal(t, ":9000", cfg.GetServerAddress())
}

func TestParse_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("CART_BASE_URL", "https://cart.example.com")
	t.Setenv("STORE_TZ", "Europe/Paris")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Parse([]byte(minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "cache.internal:6379", cfg.GetRedisAddress())
	assert.Equal(t, "https://cart.example.com", cfg.Cart.BaseURL)
	assert.Equal(t, "json", cfg.Log.Format)
	if _, err := time.LoadLocation("Europe/Paris"); err == nil {
		assert.Equal(t, "Europe/Paris", cfg.Location().String())
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing port", "database: {host: h, user: u, database: d}\njwt: {secret: 0123456789abcdef0123456789abcdef}\ncart: {base_url: x}"},
		{"short secret", "server: {port: 1}\ndatabase: {host: h, user: u, database: d}\njwt: {secret: short}\ncart: {base_url: x}"},
		{"missing cart", "server: {port: 1}\ndatabase: {host: h, user: u, database: d}\njwt: {secret: 0123456789abcdef0123456789abcdef}"},
		{"bad time zone", minimalYAML + "store:\n  time_zone: Mars/Olympus\n"},
		{"not yaml", "server: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetSecurityLevel(t *testing.T) {
	assert.Equal(t, SecurityPublic, GetSecurityLevel(RouteGetProduct))
	assert.Equal(t, SecurityAdmin, GetSecurityLevel(RouteCreateDrone))
	assert.Equal(t, SecurityAdmin, GetSecurityLevel("unknown.route"))
}
