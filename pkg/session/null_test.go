package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/browsersession/pkg/session"
)

func TestNullSession(t *testing.T) {
	t.Parallel()

	s := session.NullSession()
	assert.True(t, s.IsNull())
	assert.False(t, s.IsNew())

	t.Run("reads behave as empty", func(t *testing.T) {
		_, ok := s.Get("k")
		assert.False(t, ok)
		_, ok = s.GetString("k")
		assert.False(t, ok)
		_, ok = s.GetInt("k")
		assert.False(t, ok)
		_, ok = s.GetBool("k")
		assert.False(t, ok)
		assert.False(t, s.Has("k"))
		assert.Empty(t, s.Keys())
		assert.Empty(t, s.Values())
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Permanent())
	})

	t.Run("writes fail", func(t *testing.T) {
		assert.ErrorIs(t, s.Set("k", "v"), session.ErrSessionUnavailable)
		assert.ErrorIs(t, s.Delete("k"), session.ErrSessionUnavailable)
		assert.ErrorIs(t, s.Clear(), session.ErrSessionUnavailable)
		assert.ErrorIs(t, s.Update(map[string]any{"k": 1}), session.ErrSessionUnavailable)
		assert.ErrorIs(t, s.SetPermanent(true), session.ErrSessionUnavailable)

		_, err := s.SetDefault("k", "v")
		assert.ErrorIs(t, err, session.ErrSessionUnavailable)

		_, _, err = s.Pop("k")
		assert.ErrorIs(t, err, session.ErrSessionUnavailable)

		s.MarkModified()
		assert.False(t, s.Modified())
		assert.Equal(t, 0, s.Len())
	})

	t.Run("error names the missing secret", func(t *testing.T) {
		assert.Contains(t, session.ErrSessionUnavailable.Error(), "no secret key")
	})
}
