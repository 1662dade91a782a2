// Package webcrypto imports Multikey and JWK keys in to a crypto engine, and exports them back.
//
// The [Engine] interface follows the shape of the WebCrypto importKey / exportKey operations. [JWXEngine] is the default implementation, backed by github.com/lestrrat-go/jwx and the golang stdlib key types.
package webcrypto

import (
	"context"
	"errors"
	"fmt"

	"github.com/credkit/keyconv/multikey"
)

var ErrUnsupportedFormat = errors.New("unsupported key format")

// Key export was requested for a key imported as non-extractable.
var ErrNotExtractable = errors.New("key is not extractable")

// Requested key usages are not valid for the key type, or not permitted by the JWK "key_ops" field.
var ErrInvalidUsage = errors.New("invalid key usage")

type KeyFormat string

const (
	// JSON Web Key. Key data is a [multikey.JWK], *[multikey.JWK], or JSON bytes.
	FormatJWK KeyFormat = "jwk"
	// Uncompressed SEC1 point for ECDSA, or 32 raw bytes for Ed25519. Public keys only.
	FormatRaw KeyFormat = "raw"
)

type KeyUsage string

const (
	UsageSign   KeyUsage = multikey.KeyOpSign
	UsageVerify KeyUsage = multikey.KeyOpVerify
)

type KeyType string

const (
	KeyTypePublic  KeyType = "public"
	KeyTypePrivate KeyType = "private"
)

// WebCrypto algorithm parameters, eg {Name: "ECDSA", NamedCurve: "P-384"} or {Name: "Ed25519"}.
type Algorithm struct {
	Name       string `json:"name"`
	NamedCurve string `json:"namedCurve,omitempty"`
}

// Returns the import parameters for keys of the given algorithm.
func AlgorithmFor(alg multikey.KeyAlgorithm) Algorithm {
	switch alg {
	case multikey.ECDSAP256, multikey.ECDSAP384:
		return Algorithm{Name: "ECDSA", NamedCurve: multikey.AlgorithmToJWKCurveName(alg)}
	case multikey.EdDSA:
		return Algorithm{Name: "Ed25519"}
	default:
		panic(fmt.Sprintf("unexpected key algorithm: %s", alg))
	}
}

func (a Algorithm) keyAlgorithm() (multikey.KeyAlgorithm, error) {
	switch a.Name {
	case "ECDSA":
		alg, err := multikey.JWKCurveNameToAlgorithm(a.NamedCurve)
		if err != nil {
			return 0, err
		}
		if !alg.IsECDSA() {
			return 0, fmt.Errorf("%w: ECDSA with curve %q", multikey.ErrUnsupportedAlgorithm, a.NamedCurve)
		}
		return alg, nil
	case "Ed25519", "EdDSA":
		return multikey.EdDSA, nil
	default:
		return 0, fmt.Errorf("%w: algorithm %q", multikey.ErrUnsupportedAlgorithm, a.Name)
	}
}

// Handle to a key held by an [Engine].
type CryptoKey struct {
	Type        KeyType
	Extractable bool
	Algorithm   Algorithm
	Usages      []KeyUsage

	// *ecdsa.PublicKey, *ecdsa.PrivateKey, ed25519.PublicKey or ed25519.PrivateKey
	raw any
}

// The underlying golang stdlib key.
func (k *CryptoKey) Raw() any {
	return k.raw
}

type CryptoKeyPair struct {
	PublicKey  *CryptoKey
	PrivateKey *CryptoKey
}

// Platform crypto engine, as used by the conversion adapters in this package.
type Engine interface {
	ImportKey(ctx context.Context, format KeyFormat, keyData any, alg Algorithm, extractable bool, usages []KeyUsage) (*CryptoKey, error)
	// For [FormatJWK] the result is a *[multikey.JWK]; for [FormatRaw] it is []byte.
	ExportKey(ctx context.Context, format KeyFormat, key *CryptoKey) (any, error)
}
