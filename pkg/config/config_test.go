package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("ADMIN_UIDS", " a , ,b ")
	t.Setenv("JWT_EXPIRY", "not-a-number")
	t.Setenv("CLIENT_BASE_URL", "https://hairconnect.test/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, cfg.AdminUIDs)
	assert.Empty(t, cfg.CORSOrigins)
	assert.Equal(t, int64(30*60), cfg.JWTExpiry)
	assert.Equal(t, "https://hairconnect.test", cfg.ClientBaseURL)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
