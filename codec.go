package keyshift

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Encoding identifies a text codec: a bijective mapping between byte
// sequences and their textual representation.
type Encoding string

const (
	Base64    Encoding = "base64"
	Base64URL Encoding = "base64url"
	Hex       Encoding = "hex"
	UTF8      Encoding = "utf8"
)

// textCodec is one registry entry. Both directions must satisfy
// decode(encode(b)) == b for all byte sequences b.
type textCodec struct {
	encode func([]byte) (string, error)
	decode func(string) ([]byte, error)
}

// codecRegistry maps every Encoding to its implementation. Adding an
// encoding means adding one entry here; call sites dispatch through
// EncodeText/DecodeText and never change.
var codecRegistry = map[Encoding]textCodec{
	Base64: {
		encode: func(b []byte) (string, error) {
			return base64.StdEncoding.EncodeToString(b), nil
		},
		decode: func(s string) ([]byte, error) {
			return base64.StdEncoding.Strict().DecodeString(s)
		},
	},
	Base64URL: {
		encode: func(b []byte) (string, error) {
			return base64.RawURLEncoding.EncodeToString(b), nil
		},
		decode: func(s string) ([]byte, error) {
			return base64.RawURLEncoding.Strict().DecodeString(s)
		},
	},
	Hex: {
		encode: func(b []byte) (string, error) {
			return hex.EncodeToString(b), nil
		},
		decode: hex.DecodeString,
	},
	UTF8: {
		encode: func(b []byte) (string, error) {
			if !utf8.Valid(b) {
				return "", errors.New("bytes are not valid UTF-8")
			}
			return string(b), nil
		},
		decode: func(s string) ([]byte, error) {
			if !utf8.ValidString(s) {
				return nil, errors.New("text is not valid UTF-8")
			}
			return []byte(s), nil
		},
	},
}

// Encodings returns the identifiers of all registered encodings, for
// display layers that enumerate codec choices.
func Encodings() []Encoding {
	return []Encoding{Base64, Base64URL, Hex, UTF8}
}

// ParseEncoding parses an encoding name such as "base64".
func ParseEncoding(s string) (Encoding, error) {
	if _, ok := codecRegistry[Encoding(s)]; !ok {
		return "", fmt.Errorf("unknown encoding %q", s)
	}
	return Encoding(s), nil
}

// EncodeText renders bytes as text under the given encoding.
func EncodeText(b []byte, e Encoding) (string, error) {
	codec, ok := codecRegistry[e]
	if !ok {
		return "", fmt.Errorf("unknown encoding %q", e)
	}
	s, err := codec.encode(b)
	if err != nil {
		return "", fmt.Errorf("encoding %s text: %w", e, err)
	}
	return s, nil
}

// DecodeText recovers bytes from text under the given encoding. Malformed
// input fails with DecodeError; no partial bytes are returned.
func DecodeText(s string, e Encoding) ([]byte, error) {
	codec, ok := codecRegistry[e]
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", e)
	}
	b, err := codec.decode(s)
	if err != nil {
		return nil, &DecodeError{Encoding: e, Err: err}
	}
	return b, nil
}
