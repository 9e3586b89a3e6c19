package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/browsersession/pkg/cookie"
	"github.com/dmitrymomot/browsersession/pkg/logger"
	"github.com/dmitrymomot/browsersession/pkg/requestid"
	"github.com/dmitrymomot/browsersession/pkg/signer"
)

// Load results, used for logs, metrics and span events.
const (
	resultNull         = "null"
	resultEmpty        = "empty"
	resultOK           = "ok"
	resultBadPayload   = "bad_payload"
	resultBadSignature = "bad_signature"
	resultExpired      = "expired"
)

// Manager loads sessions from request cookies and writes them back to
// responses. It is immutable after New and safe for concurrent use.
type Manager struct {
	config            Config
	policy            *Policy
	signer            *signer.Signer
	cookies           *cookie.Manager
	logger            *slog.Logger
	now               func() time.Time
	metricsRegisterer prometheus.Registerer
	metrics           *metrics
}

// New creates a Manager. A missing secret key is not an error: the Manager
// then hands out null sessions. Other signer settings are validated here.
func New(opts ...Option) (*Manager, error) {
	m := &Manager{
		config: DefaultConfig(),
		logger: slog.Default(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.cookies == nil {
		m.cookies = cookie.New()
	}
	if m.metricsRegisterer != nil {
		m.metrics = newMetrics(m.metricsRegisterer)
	}
	m.policy = NewPolicy(m.config, m.logger)

	if m.signer == nil {
		s, err := signer.New(m.config.SecretKey, append(m.config.signerOptions(), signer.WithClock(m.now))...)
		switch {
		case errors.Is(err, signer.ErrMissingSecretKey):
			m.logger.Warn("no secret key configured, sessions are unavailable",
				logger.Component("session"),
			)
		case err != nil:
			return nil, errors.Join(ErrInvalidConfig, err)
		default:
			m.signer = s
		}
	}

	return m, nil
}

// Policy exposes the cookie policy in use.
func (m *Manager) Policy() *Policy { return m.policy }

// Open loads the session carried by r. It never fails: unusable cookies
// produce an empty session and a log record, and a Manager without a
// secret key produces a null session.
func (m *Manager) Open(r *http.Request) Session {
	ctx := r.Context()

	if m.signer == nil {
		m.loaded(ctx, resultNull)
		return NullSession()
	}

	value, err := m.cookies.Get(r, m.policy.CookieName())
	if err != nil || value == "" {
		m.loaded(ctx, resultEmpty)
		return NewSession(nil)
	}

	data, err := m.signer.Decode(value, m.policy.MaxAge())
	switch {
	case err == nil:
		m.loaded(ctx, resultOK)
		return NewSession(data)
	case errors.Is(err, signer.ErrBadPayload):
		m.logger.InfoContext(ctx, "bad session cookie payload from client, ignoring",
			logger.Component("session"),
			logger.CookieName(m.policy.CookieName()),
			logger.Error(err),
		)
		m.loaded(ctx, resultBadPayload)
	default:
		result := resultBadSignature
		if errors.Is(err, signer.ErrSignatureExpired) {
			result = resultExpired
		}
		m.logger.WarnContext(ctx, "bad session cookie signature, possible tampering",
			logger.Component("session"),
			logger.CookieName(m.policy.CookieName()),
			logger.Result(result),
			logger.Error(err),
		)
		m.loaded(ctx, result)
	}

	return NewSession(nil)
}

// Save applies the policy decision for s to w. Null sessions are never
// written. Headers must not have been sent yet.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s Session) error {
	if s == nil || s.IsNull() || m.signer == nil {
		return nil
	}

	action := m.policy.Decide(s, m.now())
	name := m.policy.CookieName()

	if action.Vary {
		addVary(w.Header(), "Cookie")
	}

	size := 0
	switch action.Kind {
	case ActionDelete:
		m.cookies.Delete(w, name,
			cookie.WithDomain(action.Domain),
			cookie.WithPath(action.Path),
		)

	case ActionSet:
		token, err := m.signer.Encode(sessionData(s))
		if err != nil {
			m.metrics.saveError()
			return errors.Join(ErrEncodeSession, err)
		}
		err = m.cookies.Set(w, name, token,
			cookie.WithDomain(action.Domain),
			cookie.WithPath(action.Path),
			cookie.WithSecure(action.Secure),
			cookie.WithHTTPOnly(action.HTTPOnly),
			cookie.WithExpires(action.Expires),
		)
		if err != nil {
			m.metrics.saveError()
			return errors.Join(ErrWriteCookie, err)
		}
		size = len(token)
	}

	m.metrics.save(action.Kind, size)
	trace.SpanFromContext(ctx).AddEvent("session.save", eventAttributes(ctx,
		attribute.String("session.action", action.Kind.String()),
		attribute.Bool("session.vary", action.Vary),
		attribute.Int("session.cookie_size", size),
	))
	if action.Kind != ActionNone {
		m.logger.DebugContext(ctx, "session cookie written",
			logger.Component("session"),
			logger.CookieName(name),
			logger.Action(action.Kind.String()),
			logger.Size(size),
		)
	}

	return nil
}

func (m *Manager) loaded(ctx context.Context, result string) {
	m.metrics.load(result)
	trace.SpanFromContext(ctx).AddEvent("session.load", eventAttributes(ctx,
		attribute.String("session.result", result),
	))
}

// eventAttributes tags a span event with the request id when the request
// carries one, so events line up with the log records of the same request.
func eventAttributes(ctx context.Context, attrs ...attribute.KeyValue) trace.EventOption {
	if id := requestid.FromContext(ctx); id != "" {
		attrs = append(attrs, attribute.String("request.id", id))
	}
	return trace.WithAttributes(attrs...)
}

// sessionData returns what gets signed, reading through the interface
// only for foreign implementations.
func sessionData(s Session) map[string]any {
	if cs, ok := s.(*CookieSession); ok {
		return cs.snapshot()
	}
	return s.Values()
}

func addVary(h http.Header, value string) {
	for _, v := range h.Values("Vary") {
		for _, part := range strings.Split(v, ",") {
			if strings.EqualFold(strings.TrimSpace(part), value) {
				return
			}
		}
	}
	h.Add("Vary", value)
}
