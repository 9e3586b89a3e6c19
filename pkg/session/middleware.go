package session

import (
	"net/http"

	"github.com/dmitrymomot/browsersession/pkg/hostguard"
	"github.com/dmitrymomot/browsersession/pkg/logger"
)

// Middleware opens the session, stores it in the request context and saves
// it before the response is committed.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := m.Open(r)
		ctx := WithSession(r.Context(), sess)

		rw := &responseWriter{ResponseWriter: w}
		rw.finalize = func() {
			if err := m.Save(ctx, w, sess); err != nil {
				m.logger.ErrorContext(ctx, "failed to save session",
					logger.Component("session"),
					logger.CookieName(m.policy.CookieName()),
					logger.Error(err),
				)
			}
		}

		next.ServeHTTP(rw, r.WithContext(ctx))
		rw.commit()
	})
}

// Protect wraps next with host header validation followed by Middleware,
// so sessions are never loaded for requests with a forged Host.
func (m *Manager) Protect(next http.Handler, opts ...hostguard.Option) http.Handler {
	opts = append([]hostguard.Option{hostguard.WithLogger(m.logger)}, opts...)
	return hostguard.New(opts...).Middleware(m.Middleware(next))
}
