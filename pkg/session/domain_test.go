package session_test

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/browsersession/pkg/logger"
	"github.com/dmitrymomot/browsersession/pkg/session"
)

func strPtr(s string) *string { return &s }

func TestPolicy_CookieDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		explicit   *string
		serverName string
		path       string
		want       string
		warning    string
	}{
		{name: "explicit domain wins", explicit: strPtr("cookies.example.org"), serverName: "example.com", want: "cookies.example.org"},
		{name: "explicit empty disables", explicit: strPtr(""), serverName: "example.com", want: ""},
		{name: "explicit false disables", explicit: strPtr("false"), serverName: "example.com", want: ""},
		{name: "no server name", want: ""},
		{name: "port stripped and dot added", serverName: "example.com:8080", want: ".example.com"},
		{name: "leading dots stripped", serverName: "..example.com", want: ".example.com"},
		{name: "non-root path keeps bare domain", serverName: "example.com", path: "/app", want: "example.com"},
		{name: "localhost rejected", serverName: "localhost", want: "", warning: "localhost.localdomain"},
		{name: "localhost with port rejected", serverName: "localhost:5000", want: "", warning: "not a valid cookie domain"},
		{name: "ipv4 kept without dot", serverName: "192.168.1.5", want: "192.168.1.5", warning: "IP address"},
		{name: "ipv4 with port", serverName: "10.0.0.1:8000", want: "10.0.0.1", warning: "IP address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			cfg := session.DefaultConfig()
			cfg.CookieDomain = tt.explicit
			cfg.ServerName = tt.serverName
			if tt.path != "" {
				cfg.CookiePath = tt.path
			}

			p := session.NewPolicy(cfg, logger.New(logger.WithOutput(buf), logger.WithTextFormatter()))
			assert.Equal(t, tt.want, p.CookieDomain())

			if tt.warning == "" {
				assert.Empty(t, buf.String())
			} else {
				assert.Contains(t, buf.String(), "level=WARN")
				assert.Contains(t, buf.String(), tt.warning)
			}
		})
	}
}

func TestPolicy_CookieDomainWarnsOnce(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	cfg := session.DefaultConfig()
	cfg.ServerName = "localhost"
	p := session.NewPolicy(cfg, logger.New(logger.WithOutput(&lockedWriter{w: buf}), logger.WithTextFormatter()))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.CookieDomain()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, strings.Count(buf.String(), "level=WARN"))
}

type lockedWriter struct {
	mu sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
