package multikey

import (
	"errors"
)

// Malformed base58 or base64url text, or a Multikey string missing the "z" prefix.
var ErrEncoding = errors.New("invalid key encoding")

// Wrong byte length, missing JWK field, or unrecognized compressed-point prefix.
var ErrMalformedKey = errors.New("malformed key")

// Multicodec preamble, JWK key type or curve name not supported by this package.
var ErrUnsupportedAlgorithm = errors.New("unsupported key algorithm")

// A public key was expected and a secret key was found, or the opposite.
var ErrRoleMismatch = errors.New("key role mismatch")

// The public and secret halves of a key pair use different algorithms.
var ErrAlgorithmMismatch = errors.New("key pair algorithm mismatch")

// Compressed public key bytes do not correspond to a point on the curve.
var ErrInvalidPoint = errors.New("invalid curve point")
