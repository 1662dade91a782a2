package multikey

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multibase"
)

// multibase prefix character for base58btc
const multibasePrefix = 'z'

// JWK numeric fields are base64url, no padding. Strict mode rejects non-zero trailing bits, so that every text form has exactly one byte form.
var b64url = base64.RawURLEncoding.Strict()

// Encodes bytes using the base58 "bitcoin" alphabet. Leading zero bytes become leading '1' characters.
func EncodeBase58(data []byte) string {
	return base58.Encode(data)
}

// Decodes base58 "bitcoin" alphabet text. Leading '1' characters become leading zero bytes. Any character outside the alphabet results in [ErrEncoding].
func DecodeBase58(text string) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}
	buf, err := base58.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: base58: %v", ErrEncoding, err)
	}
	return buf, nil
}

// Encodes bytes as base64url without padding, as used for JWK coordinate and scalar fields.
func EncodeBase64URL(data []byte) string {
	return b64url.EncodeToString(data)
}

// Decodes base64url text without padding. Padding characters, invalid lengths and out-of-alphabet characters result in [ErrEncoding].
func DecodeBase64URL(text string) ([]byte, error) {
	// the stdlib decoder silently skips newlines
	if strings.ContainsAny(text, "\r\n") {
		return nil, fmt.Errorf("%w: base64url: unexpected line break", ErrEncoding)
	}
	buf, err := b64url.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("%w: base64url: %v", ErrEncoding, err)
	}
	return buf, nil
}

// Wraps bytes in base58btc multibase: the "z" prefix character, then base58.
func EncodeMultibase(data []byte) string {
	s, err := multibase.Encode(multibase.Base58BTC, data)
	if err != nil {
		// only fails for unknown encodings
		panic(err)
	}
	return s
}

// Unwraps base58btc multibase text. Other multibase encodings are rejected, even if they are otherwise valid.
func DecodeMultibase(text string) ([]byte, error) {
	if len(text) == 0 || text[0] != multibasePrefix {
		return nil, fmt.Errorf("%w: %q is not base58btc multibase (first character should be 'z')", ErrEncoding, text)
	}
	if len(text) == 1 {
		return []byte{}, nil
	}
	enc, buf, err := multibase.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: multibase: %v", ErrEncoding, err)
	}
	if enc != multibase.Base58BTC {
		return nil, fmt.Errorf("%w: unexpected multibase encoding: %c", ErrEncoding, enc)
	}
	return buf, nil
}
