package multikey

import (
	"encoding/json"
	"fmt"
)

// Operations recorded in the "key_ops" field of generated JWKs. Values match WebCrypto key usages.
const (
	KeyOpVerify = "verify"
	KeyOpSign   = "sign"
)

// Representation of a JSON Web Key (JWK), as relevant to the keys supported by this package.
//
// Y is only set for ECDSA keys, and D only for secret keys. Empty strings mean the field is absent.
//
// Ext is only serialized when true: an input of "ext": false parses to false, and marshals with no "ext" field at all. Both forms mean the same thing to WebCrypto.
//
// Expected to be marshalled/unmarshalled as JSON.
type JWK struct {
	KeyType string   `json:"kty"`
	Curve   string   `json:"crv,omitempty"`
	X       string   `json:"x,omitempty"` // base64url, no padding
	Y       string   `json:"y,omitempty"` // base64url, no padding
	D       string   `json:"d,omitempty"` // base64url, no padding
	KeyOps  []string `json:"key_ops,omitempty"`
	Ext     bool     `json:"ext,omitempty"`
}

// A public JWK, with an optional private JWK for the same key.
type JWKPair struct {
	PublicKey  JWK  `json:"publicKey"`
	PrivateKey *JWK `json:"privateKey,omitempty"`
}

// Resolves the key algorithm from the "kty" and "crv" fields.
func (j *JWK) Algorithm() (KeyAlgorithm, error) {
	if j.KeyType == "" {
		return 0, fmt.Errorf("%w: JWK has no kty value", ErrUnsupportedAlgorithm)
	}
	alg, err := JWKCurveNameToAlgorithm(j.Curve)
	if err != nil {
		return 0, err
	}
	if AlgorithmToJWKKeyType(alg) != j.KeyType {
		return 0, fmt.Errorf("%w: JWK kty %q with crv %q", ErrUnsupportedAlgorithm, j.KeyType, j.Curve)
	}
	return alg, nil
}

// Loads a [JWK] from JSON bytes.
func ParseJWK(data []byte) (*JWK, error) {
	var jwk JWK
	if err := json.Unmarshal(data, &jwk); err != nil {
		return nil, fmt.Errorf("%w: parsing JWK JSON: %v", ErrMalformedKey, err)
	}
	return &jwk, nil
}

// Loads a [JWKPair] from JSON bytes, as an object with "publicKey" and optional "privateKey" fields.
func ParseJWKPair(data []byte) (*JWKPair, error) {
	var in struct {
		PublicKey  *JWK `json:"publicKey"`
		PrivateKey *JWK `json:"privateKey"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("%w: parsing JWK pair JSON: %v", ErrMalformedKey, err)
	}
	if in.PublicKey == nil {
		return nil, fmt.Errorf("%w: JWK pair has no publicKey", ErrMalformedKey)
	}
	return &JWKPair{PublicKey: *in.PublicKey, PrivateKey: in.PrivateKey}, nil
}

func decodeJWKField(jwk *JWK, name, val string) ([]byte, error) {
	if val == "" {
		return nil, fmt.Errorf("%w: %s value is missing from %s JWK", ErrMalformedKey, name, jwk.Curve)
	}
	return DecodeBase64URL(val)
}
