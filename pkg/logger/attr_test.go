package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/browsersession/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "id", g[0].Key)
	assert.Equal(t, "n", g[1].Key)
}

func TestErrors(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	attr := logger.Errors(err1, nil, err2)
	require.Equal(t, "errors", attr.Key)
	g := attr.Value.Group()
	require.Len(t, g, 2)
	assert.Equal(t, "0", g[0].Key)
	assert.Equal(t, "2", g[1].Key)

	assert.True(t, logger.Errors(nil, nil).Equal(slog.Attr{}))
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestEmptyValueHelpers(t *testing.T) {
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
	assert.True(t, logger.Host("").Equal(slog.Attr{}))

	assert.Equal(t, "req-1", logger.RequestID("req-1").Value.String())
	assert.Equal(t, "example.com", logger.Host("example.com").Value.String())
}

func TestSimpleHelpers(t *testing.T) {
	cases := []struct {
		attr slog.Attr
		key  string
	}{
		{logger.CookieName("session"), "cookie"},
		{logger.Result("ok"), "result"},
		{logger.Action("set_cookie"), "action"},
		{logger.Size(12), "size"},
		{logger.Duration(time.Second), "duration"},
		{logger.Component("browser_session"), "component"},
		{logger.Event("load"), "event"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.key, tc.attr.Key)
	}
}
