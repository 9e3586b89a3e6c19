package hostguard

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"github.com/dmitrymomot/browsersession/pkg/logger"
)

// validHost accepts a DNS-ish name or bracketed IPv6 literal with an
// optional port. Input is lowercased first.
var validHost = regexp.MustCompile(`^([a-z0-9.-]+|\[[a-f0-9]*:[a-f0-9:]+\])(:\d+)?$`)

// Guard rejects requests whose Host header is malformed or not allowed.
type Guard struct {
	allowed map[string]struct{}
	logger  *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithAllowedHosts restricts requests to the given host names. Ports are
// ignored when matching. An empty list allows any well-formed host.
func WithAllowedHosts(hosts ...string) Option {
	return func(g *Guard) {
		for _, h := range hosts {
			if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
				g.allowed[stripPort(h)] = struct{}{}
			}
		}
	}
}

// WithLogger sets the logger for rejected requests.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

func New(opts ...Option) *Guard {
	g := &Guard{
		allowed: make(map[string]struct{}),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Valid reports whether host may be served.
func (g *Guard) Valid(host string) bool {
	host = strings.ToLower(host)
	if !validHost.MatchString(host) {
		return false
	}
	if len(g.allowed) == 0 {
		return true
	}
	_, ok := g.allowed[stripPort(host)]
	return ok
}

// Middleware answers 400 Bad Request for invalid hosts.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.Valid(r.Host) {
			g.logger.WarnContext(r.Context(), "rejected request with invalid host header",
				logger.Component("hostguard"),
				slog.String("host", r.Host),
			)
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func stripPort(host string) string {
	if strings.HasPrefix(host, "[") {
		if i := strings.IndexByte(host, ']'); i >= 0 {
			return host[:i+1]
		}
		return host
	}
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		return host[:i]
	}
	return host
}
