package signer

import (
	"crypto/hmac"
	"errors"
	"fmt"
	"hash"
	"strings"
	"time"
)

// separator delimits payload, timestamp and signature segments.
const separator = "."

// Signer serializes session mappings into URL-safe, timestamped, HMAC-signed
// tokens and verifies them on the way back. It is immutable after New and
// safe for concurrent use.
type Signer struct {
	secrets    [][]byte
	salt       []byte
	digest     Digest
	derivation KeyDerivation
	now        func() time.Time

	hash func() hash.Hash
	keys [][]byte // derived from secrets, primary first
}

// New creates a Signer for the given secret. Options may add fallback
// secrets or change salt, digest and key derivation.
func New(secret string, opts ...Option) (*Signer, error) {
	if secret == "" {
		return nil, ErrMissingSecretKey
	}

	s := &Signer{
		secrets:    [][]byte{[]byte(secret)},
		salt:       []byte(DefaultSalt),
		digest:     DefaultDigest,
		derivation: DefaultKeyDerivation,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	h, err := digestFunc(s.digest)
	if err != nil {
		return nil, err
	}
	s.hash = h

	s.keys = make([][]byte, 0, len(s.secrets))
	for _, secret := range s.secrets {
		key, err := deriveKey(s.derivation, h, secret, s.salt)
		if err != nil {
			return nil, err
		}
		s.keys = append(s.keys, key)
	}

	return s, nil
}

// Encode serializes data and returns a signed token stamped with the current time.
func (s *Signer) Encode(data map[string]any) (string, error) {
	payload, err := encodePayload(data)
	if err != nil {
		return "", errors.Join(ErrEncodePayload, err)
	}

	value := payload + separator + encodeTimestamp(s.now().Unix())
	return value + separator + encodeSegment(s.sign(s.keys[0], value)), nil
}

// Decode verifies token and returns the mapping it carries.
// A token older than maxAge fails with ErrSignatureExpired; maxAge <= 0
// disables the age check.
func (s *Signer) Decode(token string, maxAge time.Duration) (map[string]any, error) {
	data, _, err := s.DecodeWithTimestamp(token, maxAge)
	return data, err
}

// DecodeWithTimestamp is Decode that also reports when the token was signed.
func (s *Signer) DecodeWithTimestamp(token string, maxAge time.Duration) (map[string]any, time.Time, error) {
	value, sig, ok := cutLast(token)
	if !ok {
		return nil, time.Time{}, fmt.Errorf("%w: no %q found in value", ErrBadSignature, separator)
	}

	sigBytes, err := decodeSegment(sig)
	if err != nil || !s.verify(value, sigBytes) {
		return nil, time.Time{}, fmt.Errorf("%w: signature does not match", ErrBadSignature)
	}

	payload, ts, ok := cutLast(value)
	if !ok {
		return nil, time.Time{}, errors.Join(ErrBadSignature, ErrBadTimeSignature, errors.New("timestamp missing"))
	}

	unix, err := decodeTimestamp(ts)
	if err != nil {
		return nil, time.Time{}, errors.Join(ErrBadSignature, ErrBadTimeSignature, err)
	}
	signedAt := time.Unix(unix, 0)

	if maxAge > 0 {
		age := time.Duration(s.now().Unix()-unix) * time.Second
		if age > maxAge {
			return nil, signedAt, errors.Join(ErrBadSignature, ErrSignatureExpired,
				fmt.Errorf("signature age %s > %s", age, maxAge))
		}
		if age < 0 {
			return nil, signedAt, errors.Join(ErrBadSignature, ErrSignatureExpired,
				fmt.Errorf("signature age %s < 0", age))
		}
	}

	data, err := decodePayload(payload)
	if err != nil {
		return nil, signedAt, err
	}
	return data, signedAt, nil
}

func (s *Signer) sign(key []byte, value string) []byte {
	mac := hmac.New(s.hash, key)
	mac.Write([]byte(value))
	return mac.Sum(nil)
}

// verify checks sig against every known key so retired secrets keep
// validating during rotation.
func (s *Signer) verify(value string, sig []byte) bool {
	for _, key := range s.keys {
		if hmac.Equal(sig, s.sign(key, value)) {
			return true
		}
	}
	return false
}

func cutLast(s string) (before, after string, ok bool) {
	i := strings.LastIndex(s, separator)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(separator):], true
}
