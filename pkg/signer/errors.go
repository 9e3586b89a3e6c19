package signer

import "errors"

// Expired and time-signature errors are always joined with ErrBadSignature,
// so errors.Is(err, ErrBadSignature) holds for every verification failure.
var (
	ErrMissingSecretKey         = errors.New("signer.missing_secret_key")
	ErrBadSignature             = errors.New("signer.bad_signature")
	ErrBadTimeSignature         = errors.New("signer.bad_time_signature")
	ErrSignatureExpired         = errors.New("signer.signature_expired")
	ErrBadPayload               = errors.New("signer.bad_payload")
	ErrEncodePayload            = errors.New("signer.encode_payload_failed")
	ErrUnsupportedDigest        = errors.New("signer.unsupported_digest")
	ErrUnsupportedKeyDerivation = errors.New("signer.unsupported_key_derivation")
)
