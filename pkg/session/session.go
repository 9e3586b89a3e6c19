package session

import (
	"encoding/json"
	"maps"
	"slices"
)

// PermanentKey is the reserved entry backing Permanent and SetPermanent.
// It is signed and sent to the client with the rest of the data.
const PermanentKey = "_permanent"

// Session is the per-request view of the data carried in the session cookie.
//
// Reads mark the session accessed. Writes mark it accessed and modified.
// Both flags only ever go from false to true.
type Session interface {
	Get(key string) (any, bool)
	GetString(key string) (string, bool)
	GetInt(key string) (int, bool)
	GetBool(key string) (bool, bool)
	Has(key string) bool
	// Keys returns the keys in sorted order.
	Keys() []string
	// Values returns a shallow copy of the data.
	Values() map[string]any
	// Len reports the number of entries without marking the session accessed.
	Len() int

	Set(key string, value any) error
	Delete(key string) error
	Clear() error
	// SetDefault stores value under key unless present and returns the stored value.
	SetDefault(key string, value any) (any, error)
	Pop(key string) (any, bool, error)
	Update(values map[string]any) error

	Permanent() bool
	SetPermanent(permanent bool) error
	// MarkModified forces the cookie to be rewritten, for example after
	// mutating a nested map in place.
	MarkModified()

	Modified() bool
	Accessed() bool
	// IsNew is always false: an empty cookie and a missing one look the same.
	IsNew() bool
	IsNull() bool
}

// CookieSession is the Session decoded from, and written back to, a signed cookie.
// It is not safe for concurrent use.
type CookieSession struct {
	data     map[string]any
	modified bool
	accessed bool
}

var _ Session = (*CookieSession)(nil)

// NewSession returns a session holding a copy of initial with both flags cleared.
func NewSession(initial map[string]any) *CookieSession {
	data := make(map[string]any, len(initial))
	maps.Copy(data, initial)
	return &CookieSession{data: data}
}

func (s *CookieSession) Get(key string) (any, bool) {
	s.accessed = true
	v, ok := s.data[key]
	return v, ok
}

func (s *CookieSession) GetString(key string) (string, bool) {
	v, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// GetInt accepts the numeric shapes a value can take before and after a
// JSON round trip.
func (s *CookieSession) GetInt(key string) (int, bool) {
	v, ok := s.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func (s *CookieSession) GetBool(key string) (bool, bool) {
	v, ok := s.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (s *CookieSession) Has(key string) bool {
	s.accessed = true
	_, ok := s.data[key]
	return ok
}

func (s *CookieSession) Keys() []string {
	s.accessed = true
	return slices.Sorted(maps.Keys(s.data))
}

func (s *CookieSession) Values() map[string]any {
	s.accessed = true
	return maps.Clone(s.data)
}

func (s *CookieSession) Len() int {
	return len(s.data)
}

func (s *CookieSession) Set(key string, value any) error {
	s.touch()
	s.data[key] = value
	return nil
}

func (s *CookieSession) Delete(key string) error {
	s.touch()
	delete(s.data, key)
	return nil
}

func (s *CookieSession) Clear() error {
	s.touch()
	clear(s.data)
	return nil
}

func (s *CookieSession) SetDefault(key string, value any) (any, error) {
	s.touch()
	if v, ok := s.data[key]; ok {
		return v, nil
	}
	s.data[key] = value
	return value, nil
}

func (s *CookieSession) Pop(key string) (any, bool, error) {
	s.touch()
	v, ok := s.data[key]
	delete(s.data, key)
	return v, ok, nil
}

func (s *CookieSession) Update(values map[string]any) error {
	s.touch()
	maps.Copy(s.data, values)
	return nil
}

// Permanent reads PermanentKey and, like any read, marks the session accessed.
func (s *CookieSession) Permanent() bool {
	p, _ := s.GetBool(PermanentKey)
	return p
}

func (s *CookieSession) SetPermanent(permanent bool) error {
	return s.Set(PermanentKey, permanent)
}

func (s *CookieSession) MarkModified() { s.touch() }

func (s *CookieSession) Modified() bool { return s.modified }
func (s *CookieSession) Accessed() bool { return s.accessed }
func (s *CookieSession) IsNew() bool    { return false }
func (s *CookieSession) IsNull() bool   { return false }

// snapshot returns the data for encoding without touching the flags.
func (s *CookieSession) snapshot() map[string]any {
	return s.data
}

func (s *CookieSession) touch() {
	s.accessed = true
	s.modified = true
}
