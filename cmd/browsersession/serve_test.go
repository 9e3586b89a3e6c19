package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dmitrymomot/browsersession/pkg/logger"
	"github.com/dmitrymomot/browsersession/pkg/requestid"
	"github.com/dmitrymomot/browsersession/pkg/session"
)

func newTestRouter(t *testing.T, secret string, allowed ...string) http.Handler {
	t.Helper()
	cfg := session.DefaultConfig()
	cfg.SecretKey = secret
	cfg.CookieSecure = false

	h, err := newRouter(cfg, logger.Discard(), prometheus.NewRegistry(), noop.NewTracerProvider(), allowed...)
	require.NoError(t, err)
	return h
}

func do(h http.Handler, method, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDemoRouter_SessionFlow(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, "demo-secret")

	rec := do(h, http.MethodPost, "/login", url.Values{"user": {"alice"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	rec = do(h, http.MethodGet, "/", nil, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user":"alice"`)
	assert.Equal(t, "Cookie", rec.Header().Get("Vary"))

	rec = do(h, http.MethodPost, "/visit", url.Values{}, cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"visits":1}`, rec.Body.String())

	rec = do(h, http.MethodPost, "/logout", url.Values{}, cookies...)
	require.Equal(t, http.StatusNoContent, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestDemoRouter_NoSecret(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, "")

	rec := do(h, http.MethodPost, "/visit", url.Values{})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestDemoRouter_HostGuard(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, "demo-secret", "example.com")

	rec := do(h, http.MethodGet, "http://other.com/", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(h, http.MethodGet, "http://example.com/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "http://other.com/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDemoRouter_Metrics(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, "demo-secret")
	do(h, http.MethodGet, "/", nil)

	rec := do(h, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `browsersession_loads_total{result="empty"} 1`)
}

func TestDemoRouter_Tracing(t *testing.T) {
	t.Parallel()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	cfg := session.DefaultConfig()
	cfg.SecretKey = "demo-secret"
	cfg.CookieSecure = false
	h, err := newRouter(cfg, logger.Discard(), prometheus.NewRegistry(), tp)
	require.NoError(t, err)

	rec := do(h, http.MethodPost, "/login", url.Values{"user": {"alice"}})
	require.Equal(t, http.StatusOK, rec.Code)
	requestID := rec.Header().Get(requestid.Header)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	assert.Equal(t, "POST /login", span.Name())
	assert.Equal(t, trace.SpanKindServer, span.SpanKind())
	assert.Contains(t, span.Attributes(), attribute.String("request.id", requestID))
	assert.Contains(t, span.Attributes(), attribute.Int("http.response.status_code", http.StatusOK))

	events := span.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "session.load", events[0].Name)
	assert.Contains(t, events[0].Attributes, attribute.String("session.result", "empty"))
	assert.Equal(t, "session.save", events[1].Name)
	assert.Contains(t, events[1].Attributes, attribute.String("session.action", "set"))
	assert.Contains(t, events[1].Attributes, attribute.String("request.id", requestID))
}
