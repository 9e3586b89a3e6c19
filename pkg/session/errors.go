package session

import "errors"

var (
	// ErrSessionUnavailable is returned by every mutation of a null session.
	ErrSessionUnavailable = errors.New("session.unavailable: no secret key configured")

	// ErrNotInContext indicates the request passed through no session middleware.
	ErrNotInContext = errors.New("session.not_in_context")

	// ErrEncodeSession wraps failures turning session data into a token.
	ErrEncodeSession = errors.New("session.encode_failed")

	// ErrWriteCookie wraps failures writing the session cookie.
	ErrWriteCookie = errors.New("session.write_cookie_failed")

	// ErrInvalidConfig wraps signer construction errors other than a missing key.
	ErrInvalidConfig = errors.New("session.invalid_config")
)
