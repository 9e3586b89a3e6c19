package signer

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"
)

const (
	// compressedMarker prefixes payload segments holding zlib data.
	compressedMarker = "."
	// maxPayloadSize caps decompressed payloads; a cookie never legitimately
	// expands beyond this.
	maxPayloadSize = 1 << 20
)

var b64 = base64.RawURLEncoding.Strict()

func encodeSegment(b []byte) string {
	return b64.EncodeToString(b)
}

func decodeSegment(s string) ([]byte, error) {
	return b64.DecodeString(strings.TrimRight(s, "="))
}

// encodePayload serializes data as compact JSON, zlib-compressing it when
// that saves at least two bytes.
func encodePayload(data map[string]any) (string, error) {
	if data == nil {
		data = map[string]any{}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}

	if buf.Len() < len(raw)-1 {
		return compressedMarker + encodeSegment(buf.Bytes()), nil
	}
	return encodeSegment(raw), nil
}

func decodePayload(segment string) (map[string]any, error) {
	compressed := strings.HasPrefix(segment, compressedMarker)
	if compressed {
		segment = segment[len(compressedMarker):]
	}

	raw, err := decodeSegment(segment)
	if err != nil {
		return nil, errors.Join(ErrBadPayload, err)
	}

	if compressed {
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, errors.Join(ErrBadPayload, err)
		}
		defer zr.Close()

		raw, err = io.ReadAll(io.LimitReader(zr, maxPayloadSize+1))
		if err != nil {
			return nil, errors.Join(ErrBadPayload, err)
		}
		if len(raw) > maxPayloadSize {
			return nil, fmt.Errorf("%w: decompressed payload exceeds %d bytes", ErrBadPayload, maxPayloadSize)
		}
	}

	// Numbers stay json.Number so integers above 2^53 survive the round trip.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, errors.Join(ErrBadPayload, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after payload", ErrBadPayload)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrBadPayload)
	}
	return data, nil
}

// encodeTimestamp writes ts as big-endian bytes without leading zeros.
func encodeTimestamp(ts int64) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(ts))
	return encodeSegment(bytes.TrimLeft(b[:], "\x00"))
}

func decodeTimestamp(segment string) (int64, error) {
	raw, err := decodeSegment(segment)
	if err != nil {
		return 0, err
	}
	if len(raw) > 8 {
		return 0, fmt.Errorf("timestamp is %d bytes long", len(raw))
	}

	var b [8]byte
	copy(b[8-len(raw):], raw)
	return int64(binary.BigEndian.Uint64(b[:])), nil
}
