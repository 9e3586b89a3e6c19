package signer

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"
)

// hkdfInfo binds HKDF-derived keys to this token format.
const hkdfInfo = "browsersession-signer-v1"

func digestFunc(d Digest) (func() hash.Hash, error) {
	switch d {
	case DigestSHA1:
		return sha1.New, nil
	case DigestSHA256:
		return sha256.New, nil
	case DigestSHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDigest, d)
	}
}

// deriveKey turns a secret into the key used for HMAC signatures.
func deriveKey(kd KeyDerivation, h func() hash.Hash, secret, salt []byte) ([]byte, error) {
	switch kd {
	case KeyDerivationHMAC:
		mac := hmac.New(h, secret)
		mac.Write(salt)
		return mac.Sum(nil), nil
	case KeyDerivationConcat:
		d := h()
		d.Write(salt)
		d.Write(secret)
		return d.Sum(nil), nil
	case KeyDerivationDjangoConcat:
		d := h()
		d.Write(salt)
		d.Write([]byte("signer"))
		d.Write(secret)
		return d.Sum(nil), nil
	case KeyDerivationNone:
		return append([]byte(nil), secret...), nil
	case KeyDerivationHKDF:
		key := make([]byte, h().Size())
		if _, err := io.ReadFull(hkdf.New(h, secret, salt, []byte(hkdfInfo)), key); err != nil {
			return nil, errors.Join(ErrUnsupportedKeyDerivation, err)
		}
		return key, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKeyDerivation, kd)
	}
}
