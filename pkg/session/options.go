package session

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/browsersession/pkg/cookie"
	"github.com/dmitrymomot/browsersession/pkg/signer"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

// WithSecretKey sets the signing secret.
func WithSecretKey(secret string) Option {
	return func(m *Manager) {
		m.config.SecretKey = secret
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithPermanentLifetime sets how long permanent sessions and all tokens stay valid.
func WithPermanentLifetime(d time.Duration) Option {
	return func(m *Manager) {
		m.config.PermanentLifetime = d
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithCookieManager replaces the cookie writer, e.g. to add SameSite or
// change the size limit.
func WithCookieManager(c *cookie.Manager) Option {
	return func(m *Manager) {
		if c != nil {
			m.cookies = c
		}
	}
}

// WithSigner uses a prebuilt signer instead of one built from the config.
func WithSigner(s *signer.Signer) Option {
	return func(m *Manager) {
		m.signer = s
	}
}

// WithClock overrides the time source for expiry and token timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithMetrics registers session counters with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(m *Manager) {
		m.metricsRegisterer = reg
	}
}
