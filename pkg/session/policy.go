package session

import (
	"log/slog"
	"sync"
	"time"
)

// ActionKind is what Save has to do with the response.
type ActionKind int

const (
	// ActionNone leaves the cookie alone.
	ActionNone ActionKind = iota
	// ActionSet writes a fresh signed cookie.
	ActionSet
	// ActionDelete expires the cookie on the client.
	ActionDelete
)

func (k ActionKind) String() string {
	switch k {
	case ActionSet:
		return "set"
	case ActionDelete:
		return "delete"
	default:
		return "none"
	}
}

// Action is the outcome of Policy.Decide. Domain and Path are filled for
// every kind so a deletion matches the cookie that was set. Secure,
// HTTPOnly and Expires only matter for ActionSet.
type Action struct {
	Kind     ActionKind
	Domain   string
	Path     string
	Secure   bool
	HTTPOnly bool
	// Expires is zero for a browser-session cookie.
	Expires time.Time
	// Vary asks for a "Vary: Cookie" response header.
	Vary bool
}

// Policy turns a Config and a session's state into cookie attributes and a
// write decision. It is immutable and safe for concurrent use.
type Policy struct {
	cfg    Config
	logger *slog.Logger

	domainOnce sync.Once
	domain     string
}

// NewPolicy returns a Policy for cfg. Domain warnings go to logger, or to
// slog.Default when logger is nil.
func NewPolicy(cfg Config, logger *slog.Logger) *Policy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Policy{cfg: cfg, logger: logger}
}

// CookieName is the name of the session cookie.
func (p *Policy) CookieName() string { return p.cfg.CookieName }

// CookiePath prefers the configured path, then the application root.
func (p *Policy) CookiePath() string {
	if p.cfg.CookiePath != "" {
		return p.cfg.CookiePath
	}
	if p.cfg.AppRoot != "" {
		return p.cfg.AppRoot
	}
	return "/"
}

// CookieDomain returns the Domain attribute, or "" for none. It is worked
// out on first use and warnings are logged only then.
func (p *Policy) CookieDomain() string {
	p.domainOnce.Do(func() {
		p.domain = resolveDomain(p.cfg.CookieDomain, p.cfg.ServerName, p.CookiePath(), p.logger)
	})
	return p.domain
}

// CookieSecure reports whether the cookie is sent over HTTPS only.
func (p *Policy) CookieSecure() bool { return p.cfg.CookieSecure }

// CookieHTTPOnly reports whether the cookie is hidden from scripts.
func (p *Policy) CookieHTTPOnly() bool { return p.cfg.CookieHTTPOnly }

// MaxAge is the oldest token Open accepts.
func (p *Policy) MaxAge() time.Duration { return p.cfg.PermanentLifetime }

// ExpirationTime returns now plus the permanent lifetime for permanent
// sessions and the zero time otherwise.
func (p *Policy) ExpirationTime(s Session, now time.Time) time.Time {
	if !s.Permanent() {
		return time.Time{}
	}
	return now.Add(p.cfg.PermanentLifetime)
}

// ShouldSetCookie reports whether a non-empty session needs a new cookie.
func (p *Policy) ShouldSetCookie(s Session) bool {
	return s.Modified() || (s.Permanent() && p.cfg.RefreshEachRequest)
}

// Decide works out what Save must write for s.
//
// An emptied session deletes the cookie. An untouched empty one is left
// alone. A non-empty session gets Vary whenever it was read and a new
// cookie only when ShouldSetCookie says so.
func (p *Policy) Decide(s Session, now time.Time) Action {
	action := Action{
		Kind:   ActionNone,
		Domain: p.CookieDomain(),
		Path:   p.CookiePath(),
	}

	if s.Len() == 0 {
		if s.Modified() {
			action.Kind = ActionDelete
		}
		return action
	}

	// Sampled first: reading the permanent flag marks the session accessed.
	action.Vary = s.Accessed()

	if !p.ShouldSetCookie(s) {
		return action
	}

	action.Kind = ActionSet
	action.Secure = p.CookieSecure()
	action.HTTPOnly = p.CookieHTTPOnly()
	action.Expires = p.ExpirationTime(s, now)
	return action
}
