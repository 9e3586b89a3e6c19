package session

// nullSession stands in when no secret key is configured. It reads as an
// empty map and refuses every write.
type nullSession struct{}

// NullSession returns the session used when cookies cannot be signed.
func NullSession() Session { return nullSession{} }

var _ Session = nullSession{}

func (nullSession) Get(string) (any, bool)          { return nil, false }
func (nullSession) GetString(string) (string, bool) { return "", false }
func (nullSession) GetInt(string) (int, bool)       { return 0, false }
func (nullSession) GetBool(string) (bool, bool)     { return false, false }
func (nullSession) Has(string) bool                 { return false }
func (nullSession) Keys() []string                  { return []string{} }
func (nullSession) Values() map[string]any          { return map[string]any{} }
func (nullSession) Len() int                        { return 0 }

func (nullSession) Set(string, any) error               { return ErrSessionUnavailable }
func (nullSession) Delete(string) error                 { return ErrSessionUnavailable }
func (nullSession) Clear() error                        { return ErrSessionUnavailable }
func (nullSession) SetDefault(string, any) (any, error) { return nil, ErrSessionUnavailable }
func (nullSession) Pop(string) (any, bool, error)       { return nil, false, ErrSessionUnavailable }
func (nullSession) Update(map[string]any) error         { return ErrSessionUnavailable }
func (nullSession) SetPermanent(bool) error             { return ErrSessionUnavailable }

func (nullSession) MarkModified() {}

func (nullSession) Permanent() bool { return false }
func (nullSession) Modified() bool  { return false }
func (nullSession) Accessed() bool  { return false }
func (nullSession) IsNew() bool     { return false }
func (nullSession) IsNull() bool    { return true }
