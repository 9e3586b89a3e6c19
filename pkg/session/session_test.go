package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/browsersession/pkg/session"
	"github.com/dmitrymomot/browsersession/pkg/signer"
)

func TestNewSession(t *testing.T) {
	t.Parallel()

	initial := map[string]any{"a": "b"}
	s := session.NewSession(initial)

	assert.False(t, s.Modified())
	assert.False(t, s.Accessed())
	assert.False(t, s.IsNew())
	assert.False(t, s.IsNull())
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Set("a", "changed"))
	assert.Equal(t, "b", initial["a"], "input map must be copied")
}

func TestSession_ReadsMarkAccessed(t *testing.T) {
	t.Parallel()

	reads := map[string]func(s *session.CookieSession){
		"Get":       func(s *session.CookieSession) { s.Get("x") },
		"GetString": func(s *session.CookieSession) { s.GetString("x") },
		"GetInt":    func(s *session.CookieSession) { s.GetInt("x") },
		"GetBool":   func(s *session.CookieSession) { s.GetBool("x") },
		"Has":       func(s *session.CookieSession) { s.Has("x") },
		"Keys":      func(s *session.CookieSession) { s.Keys() },
		"Values":    func(s *session.CookieSession) { s.Values() },
		"Permanent": func(s *session.CookieSession) { s.Permanent() },
	}

	for name, read := range reads {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := session.NewSession(map[string]any{"x": 1})
			read(s)
			assert.True(t, s.Accessed())
			assert.False(t, s.Modified())
		})
	}
}

func TestSession_WritesMarkModified(t *testing.T) {
	t.Parallel()

	writes := []struct {
		name  string
		write func(s *session.CookieSession) error
	}{
		{"Set", func(s *session.CookieSession) error { return s.Set("y", 2) }},
		{"Delete", func(s *session.CookieSession) error { return s.Delete("x") }},
		{"Clear", func(s *session.CookieSession) error { return s.Clear() }},
		{"SetDefault", func(s *session.CookieSession) error {
			_, err := s.SetDefault("x", 5)
			return err
		}},
		{"Pop", func(s *session.CookieSession) error {
			_, _, err := s.Pop("x")
			return err
		}},
		{"Update", func(s *session.CookieSession) error { return s.Update(map[string]any{"z": 3}) }},
		{"SetPermanent", func(s *session.CookieSession) error { return s.SetPermanent(true) }},
		{"MarkModified", func(s *session.CookieSession) error {
			s.MarkModified()
			return nil
		}},
	}

	for _, tt := range writes {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := session.NewSession(map[string]any{"x": 1})
			require.NoError(t, tt.write(s))
			assert.True(t, s.Accessed())
			assert.True(t, s.Modified())
		})
	}
}

func TestSession_LenDoesNotTouchFlags(t *testing.T) {
	t.Parallel()

	s := session.NewSession(map[string]any{"x": 1})
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Accessed())
	assert.False(t, s.Modified())
}

func TestSession_Operations(t *testing.T) {
	t.Parallel()

	s := session.NewSession(nil)

	require.NoError(t, s.Set("name", "alice"))
	require.NoError(t, s.Set("count", float64(3)))
	require.NoError(t, s.Set("admin", true))

	name, ok := s.GetString("name")
	assert.True(t, ok)
	assert.Equal(t, "alice", name)

	count, ok := s.GetInt("count")
	assert.True(t, ok)
	assert.Equal(t, 3, count)

	_, ok = s.GetInt("name")
	assert.False(t, ok)

	admin, ok := s.GetBool("admin")
	assert.True(t, ok)
	assert.True(t, admin)

	assert.Equal(t, []string{"admin", "count", "name"}, s.Keys())

	v, err := s.SetDefault("name", "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", v)

	v, err = s.SetDefault("lang", "en")
	require.NoError(t, err)
	assert.Equal(t, "en", v)

	v, found, err := s.Pop("lang")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "en", v)
	assert.False(t, s.Has("lang"))

	_, found, err = s.Pop("missing")
	require.NoError(t, err)
	assert.False(t, found)

	values := s.Values()
	values["name"] = "mallory"
	name, _ = s.GetString("name")
	assert.Equal(t, "alice", name, "Values must return a copy")

	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Len())
}

func TestSession_GetIntFractional(t *testing.T) {
	t.Parallel()

	s := session.NewSession(map[string]any{"f": 1.5, "i": int64(7)})
	_, ok := s.GetInt("f")
	assert.False(t, ok)

	i, ok := s.GetInt("i")
	assert.True(t, ok)
	assert.Equal(t, 7, i)
}

func TestSession_GetIntAfterDecode(t *testing.T) {
	t.Parallel()

	sg, err := signer.New("test-secret-key")
	require.NoError(t, err)

	token, err := sg.Encode(map[string]any{
		"big":   int64(9007199254740993),
		"small": 3,
		"frac":  2.5,
	})
	require.NoError(t, err)

	data, err := sg.Decode(token, time.Hour)
	require.NoError(t, err)
	s := session.NewSession(data)

	big, ok := s.GetInt("big")
	assert.True(t, ok)
	assert.Equal(t, 9007199254740993, big)

	small, ok := s.GetInt("small")
	assert.True(t, ok)
	assert.Equal(t, 3, small)

	_, ok = s.GetInt("frac")
	assert.False(t, ok)
}

func TestSession_Permanent(t *testing.T) {
	t.Parallel()

	s := session.NewSession(nil)
	assert.False(t, s.Permanent())

	require.NoError(t, s.SetPermanent(true))
	assert.True(t, s.Permanent())
	assert.Equal(t, true, s.Values()[session.PermanentKey])

	require.NoError(t, s.SetPermanent(false))
	assert.False(t, s.Permanent())
}
