// Package session keeps per-user state in a signed cookie instead of a
// server-side store.
//
// Session data is a JSON map. On every request the Manager decodes the
// cookie with a signer.Signer, exposes the result to handlers through the
// request context and, before the response is committed, asks the Policy
// whether to rewrite the cookie, delete it or leave it alone. The payload
// is signed, not encrypted: clients can read it but cannot change it.
//
// # Usage
//
//	import (
//	    "github.com/dmitrymomot/browsersession/pkg/config"
//	    "github.com/dmitrymomot/browsersession/pkg/session"
//	)
//
//	var cfg session.Config
//	config.MustLoad(&cfg)
//	mgr, err := session.NewFromConfig(cfg, session.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context())
//	    n, _ := sess.GetInt("visits")
//	    if err := sess.Set("visits", n+1); err != nil {
//	        // session.ErrSessionUnavailable: no secret key configured
//	    }
//	    fmt.Fprintf(w, "visit %d", n+1)
//	})
//
//	http.ListenAndServe(":8080", mgr.Protect(mux))
//
// # Change tracking
//
// Reads mark a session accessed and writes mark it modified. A modified
// session is written back; an emptied one has its cookie deleted. Any
// non-empty session that was read gets "Vary: Cookie" so shared caches do
// not mix users. Permanent sessions (SetPermanent(true)) carry an Expires
// attribute of now plus Config.PermanentLifetime and, with
// RefreshEachRequest, are rewritten on every request.
//
// The session is saved when the handler first writes headers or body.
// Changes made after that point are lost. A handler that hijacks the
// connection (WebSocket upgrades, for example) takes over the response, and
// its session is not saved at all.
//
// # Tracing
//
// Open and Save add "session.load" and "session.save" events to the span
// found in the request context, tagged with the request id set by
// requestid.Middleware.
//
// # Null sessions
//
// Without Config.SecretKey the Manager hands out NullSession values. They
// read as empty and every write returns ErrSessionUnavailable, so handlers
// can detect the misconfiguration instead of silently losing data.
//
// # Errors
//
// Unusable cookies never fail a request. A payload that does not decode is
// logged at info level, a bad or expired signature at warning level, and
// the handler gets an empty session in both cases. Errors from Save (for
// example cookie.ErrCookieTooLarge) are logged by Middleware.
package session
