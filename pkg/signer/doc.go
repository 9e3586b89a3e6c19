// Package signer turns session mappings into tamper-evident, time-stamped
// tokens suitable for cookie values, and back.
//
// A token has three base64url segments joined by dots:
//
//	payload.timestamp.signature
//
// The payload is compact JSON, zlib-compressed (and prefixed with an extra
// dot) when compression makes it shorter. The timestamp is the Unix time of
// signing as big-endian bytes. The signature is an HMAC over the first two
// segments, keyed with a key derived from the secret and salt.
//
// With the defaults (salt "cookie-session", sha1, hmac key derivation) the
// format is the one produced by itsdangerous' URLSafeTimedSerializer.
//
// # Usage
//
//	s, err := signer.New(secret, signer.WithDigest(signer.DigestSHA256))
//	if err != nil {
//		return err
//	}
//
//	token, err := s.Encode(map[string]any{"user": "ada"})
//	data, err := s.Decode(token, time.Hour)
//	switch {
//	case errors.Is(err, signer.ErrSignatureExpired):
//		// signed too long ago
//	case errors.Is(err, signer.ErrBadSignature):
//		// tampered or signed with another key
//	case errors.Is(err, signer.ErrBadPayload):
//		// signature valid, payload unreadable
//	}
//
// The payload is signed, not encrypted: clients can read it.
package signer
