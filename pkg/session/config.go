package session

import (
	"time"

	"github.com/dmitrymomot/browsersession/pkg/signer"
)

// Config holds session cookie settings. It can be filled from the
// environment with config.Load or from a YAML file with config.LoadYAML.
type Config struct {
	// SecretKey signs the cookie. Without it every request gets a null session.
	SecretKey string `env:"BROWSER_SESSION_SECRET_KEY" yaml:"secret_key"`
	// FallbackSecretKeys are still accepted when verifying, for key rotation.
	FallbackSecretKeys []string `env:"BROWSER_SESSION_FALLBACK_SECRET_KEYS" envSeparator:"," yaml:"fallback_secret_keys"`

	CookieName string `env:"BROWSER_SESSION_COOKIE_NAME" envDefault:"session" yaml:"cookie_name"`
	// CookieDomain overrides domain detection when set. "" and "false"
	// mean the cookie carries no Domain attribute.
	CookieDomain   *string `env:"BROWSER_SESSION_COOKIE_DOMAIN" yaml:"cookie_domain"`
	CookiePath     string  `env:"BROWSER_SESSION_COOKIE_PATH" envDefault:"/" yaml:"cookie_path"`
	CookieSecure   bool    `env:"BROWSER_SESSION_COOKIE_SECURE" envDefault:"true" yaml:"cookie_secure"`
	CookieHTTPOnly bool    `env:"BROWSER_SESSION_COOKIE_HTTPONLY" envDefault:"true" yaml:"cookie_httponly"`

	// RefreshEachRequest rewrites permanent sessions on every request,
	// sliding their expiry forward.
	RefreshEachRequest bool          `env:"BROWSER_SESSION_REFRESH_EACH_REQUEST" envDefault:"false" yaml:"refresh_each_request"`
	PermanentLifetime  time.Duration `env:"BROWSER_SESSION_PERMANENT_LIFETIME" envDefault:"1h" yaml:"permanent_lifetime"`

	Salt          string               `env:"BROWSER_SESSION_SALT" envDefault:"cookie-session" yaml:"salt"`
	DigestMethod  signer.Digest        `env:"BROWSER_SESSION_DIGEST" envDefault:"sha1" yaml:"digest_method"`
	KeyDerivation signer.KeyDerivation `env:"BROWSER_SESSION_KEY_DERIVATION" envDefault:"hmac" yaml:"key_derivation"`

	// ServerName and AppRoot feed cookie domain and path detection.
	ServerName string `env:"SERVER_NAME" yaml:"server_name"`
	AppRoot    string `env:"APP_ROOT" envDefault:"/" yaml:"app_root"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		CookieName:        "session",
		CookiePath:        "/",
		CookieSecure:      true,
		CookieHTTPOnly:    true,
		PermanentLifetime: time.Hour,
		Salt:              signer.DefaultSalt,
		DigestMethod:      signer.DefaultDigest,
		KeyDerivation:     signer.DefaultKeyDerivation,
		AppRoot:           "/",
	}
}

// signerOptions translates the signing settings. Empty values keep the
// signer defaults.
func (c Config) signerOptions() []signer.Option {
	return []signer.Option{
		signer.WithSalt(c.Salt),
		signer.WithDigest(c.DigestMethod),
		signer.WithKeyDerivation(c.KeyDerivation),
		signer.WithFallbackSecrets(c.FallbackSecretKeys...),
	}
}

// NewFromConfig creates a Manager from cfg. Options are applied after the
// config, so they can override its values.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
