package signer

import (
	"strings"
	"time"
)

// Digest names the hash function used for key derivation and signatures.
type Digest string

const (
	DigestSHA1   Digest = "sha1"
	DigestSHA256 Digest = "sha256"
	DigestSHA512 Digest = "sha512"
)

// KeyDerivation names the way the signing key is derived from secret and salt.
type KeyDerivation string

const (
	// KeyDerivationHMAC uses HMAC(secret, salt).
	KeyDerivationHMAC KeyDerivation = "hmac"
	// KeyDerivationConcat uses digest(salt + secret).
	KeyDerivationConcat KeyDerivation = "concat"
	// KeyDerivationDjangoConcat uses digest(salt + "signer" + secret).
	KeyDerivationDjangoConcat KeyDerivation = "django-concat"
	// KeyDerivationNone signs with the raw secret.
	KeyDerivationNone KeyDerivation = "none"
	// KeyDerivationHKDF expands the secret with HKDF keyed by the salt.
	KeyDerivationHKDF KeyDerivation = "hkdf"
)

const (
	// DefaultSalt namespaces session signatures from other uses of the same secret.
	DefaultSalt = "cookie-session"
	// DefaultDigest keeps tokens verifiable by itsdangerous-based deployments.
	DefaultDigest = DigestSHA1
	// DefaultKeyDerivation matches DefaultDigest's compatibility target.
	DefaultKeyDerivation = KeyDerivationHMAC
)

// Option configures a Signer.
type Option func(*Signer)

// WithSalt sets the salt mixed into the derived key. Empty values are ignored.
func WithSalt(salt string) Option {
	return func(s *Signer) {
		if salt != "" {
			s.salt = []byte(salt)
		}
	}
}

// WithDigest sets the digest algorithm. Empty values are ignored.
func WithDigest(d Digest) Option {
	return func(s *Signer) {
		if d != "" {
			s.digest = Digest(strings.ToLower(string(d)))
		}
	}
}

// WithKeyDerivation sets the key derivation scheme. Empty values are ignored.
func WithKeyDerivation(kd KeyDerivation) Option {
	return func(s *Signer) {
		if kd != "" {
			s.derivation = KeyDerivation(strings.ToLower(string(kd)))
		}
	}
}

// WithFallbackSecrets registers retired secrets that are still accepted
// when verifying. Tokens are always signed with the primary secret.
func WithFallbackSecrets(secrets ...string) Option {
	return func(s *Signer) {
		for _, secret := range secrets {
			if secret != "" {
				s.secrets = append(s.secrets, []byte(secret))
			}
		}
	}
}

// WithClock overrides the time source used for timestamps and age checks.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}
