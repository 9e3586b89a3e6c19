package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/browsersession/pkg/config"
	"github.com/dmitrymomot/browsersession/pkg/session"
	"github.com/dmitrymomot/browsersession/pkg/signer"
)

func TestConfig_EnvDefaults(t *testing.T) {
	var cfg session.Config
	require.NoError(t, config.ForceReload(&cfg))

	want := session.DefaultConfig()
	assert.Equal(t, want, cfg)
	assert.Nil(t, cfg.CookieDomain)
}

func TestConfig_FromEnv(t *testing.T) {
	t.Setenv("BROWSER_SESSION_SECRET_KEY", "s3cret")
	t.Setenv("BROWSER_SESSION_FALLBACK_SECRET_KEYS", "old1,old2")
	t.Setenv("BROWSER_SESSION_COOKIE_DOMAIN", "false")
	t.Setenv("BROWSER_SESSION_COOKIE_SECURE", "false")
	t.Setenv("BROWSER_SESSION_PERMANENT_LIFETIME", "24h")
	t.Setenv("BROWSER_SESSION_KEY_DERIVATION", "hkdf")
	t.Setenv("SERVER_NAME", "example.com:8080")

	var cfg session.Config
	require.NoError(t, config.ForceReload(&cfg))

	assert.Equal(t, "s3cret", cfg.SecretKey)
	assert.Equal(t, []string{"old1", "old2"}, cfg.FallbackSecretKeys)
	require.NotNil(t, cfg.CookieDomain)
	assert.Equal(t, "false", *cfg.CookieDomain)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 24*time.Hour, cfg.PermanentLifetime)
	assert.Equal(t, signer.KeyDerivationHKDF, cfg.KeyDerivation)

	m, err := session.NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Empty(t, m.Policy().CookieDomain())
}

func TestConfig_FromYAML(t *testing.T) {
	t.Setenv("SERVER_NAME", "example.com")

	var cfg session.Config
	require.NoError(t, config.LoadYAML("testdata/session.yaml", &cfg))

	assert.Equal(t, "from-yaml", cfg.SecretKey)
	assert.Equal(t, "app_session", cfg.CookieName)
	require.NotNil(t, cfg.CookieDomain)
	assert.Empty(t, *cfg.CookieDomain)
	assert.Equal(t, 30*time.Minute, cfg.PermanentLifetime)
	assert.Equal(t, signer.DigestSHA256, cfg.DigestMethod)
	assert.True(t, cfg.RefreshEachRequest)
	assert.Equal(t, "example.com", cfg.ServerName)
	assert.Equal(t, "/", cfg.CookiePath)
}
