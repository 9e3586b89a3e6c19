package cookie

import (
	"errors"
	"net/http"
	"time"
)

// MaxCookieSize is the largest Set-Cookie value browsers are required to keep.
const MaxCookieSize = 4096

// Manager writes, reads and deletes cookies sharing a set of default
// attributes. It holds no per-request state and is safe for concurrent use.
type Manager struct {
	defaults Options
	maxSize  int
}

// New creates a Manager. Defaults are Path "/" and HttpOnly; opts override them.
func New(opts ...Option) *Manager {
	defaults := applyOptions(Options{
		Path:     "/",
		HttpOnly: true,
	}, opts)

	return &Manager{
		defaults: defaults,
		maxSize:  MaxCookieSize,
	}
}

// WithMaxSize returns a copy of m enforcing a different size limit.
// Non-positive values disable the check.
func (m *Manager) WithMaxSize(size int) *Manager {
	cp := *m
	cp.maxSize = size
	return &cp
}

// Defaults returns the attributes applied to every cookie.
func (m *Manager) Defaults() Options {
	return m.defaults
}

// Set adds a Set-Cookie header. It fails without touching the response when
// the serialized cookie would exceed the size limit.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	if name == "" {
		return ErrInvalidName
	}

	options := applyOptions(m.defaults, opts)
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		Expires:  options.Expires,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}

	header := c.String()
	if header == "" {
		return ErrInvalidName
	}
	if m.maxSize > 0 && len(header) > m.maxSize {
		return ErrCookieTooLarge{Name: name, Size: len(header), Max: m.maxSize}
	}

	w.Header().Add("Set-Cookie", header)
	return nil
}

// Get returns the value of the named request cookie.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete instructs the client to drop the named cookie. Path and domain must
// match the ones the cookie was set with, so they can be overridden via opts.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	options := applyOptions(m.defaults, opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}
