package webcrypto

import (
	"context"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"encoding/json"
	"fmt"
	"math/big"
	"slices"

	"github.com/credkit/keyconv/multikey"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// Implements [Engine] with jwx JWK parsing and serialization, holding golang stdlib key types. Stateless and safe for concurrent use.
type JWXEngine struct{}

var _ Engine = (*JWXEngine)(nil)

func NewJWXEngine() *JWXEngine {
	return &JWXEngine{}
}

// Imports a public or private key.
//
// Usages must match the key type: public keys may only have [UsageVerify], and private keys need at least one usage, all [UsageSign]. If a JWK includes "key_ops", every requested usage must be listed there.
//
// Public keys are checked to be valid curve points. Private keys are not checked to correspond to their public coordinates.
func (e *JWXEngine) ImportKey(ctx context.Context, format KeyFormat, keyData any, alg Algorithm, extractable bool, usages []KeyUsage) (*CryptoKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	keyAlg, err := alg.keyAlgorithm()
	if err != nil {
		return nil, err
	}

	var raw any
	switch format {
	case FormatJWK:
		raw, err = importJWK(keyData, keyAlg, usages)
	case FormatRaw:
		raw, err = importRaw(keyData, keyAlg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	key := &CryptoKey{
		Type:        KeyTypePublic,
		Extractable: extractable,
		Algorithm:   AlgorithmFor(keyAlg),
		raw:         raw,
	}
	switch raw.(type) {
	case *ecdsa.PrivateKey, ed25519.PrivateKey:
		key.Type = KeyTypePrivate
	}
	if err := checkUsages(key.Type, usages); err != nil {
		return nil, err
	}
	key.Usages = slices.Clone(usages)
	return key, nil
}

func checkUsages(kt KeyType, usages []KeyUsage) error {
	allowed := UsageVerify
	if kt == KeyTypePrivate {
		allowed = UsageSign
		if len(usages) == 0 {
			return fmt.Errorf("%w: private keys require at least one usage", ErrInvalidUsage)
		}
	}
	for _, u := range usages {
		if u != allowed {
			return fmt.Errorf("%w: %q not allowed for %s key", ErrInvalidUsage, u, kt)
		}
	}
	return nil
}

func importJWK(keyData any, alg multikey.KeyAlgorithm, usages []KeyUsage) (any, error) {
	var in multikey.JWK
	switch v := keyData.(type) {
	case multikey.JWK:
		in = v
	case *multikey.JWK:
		if v == nil {
			return nil, fmt.Errorf("%w: nil JWK", multikey.ErrMalformedKey)
		}
		in = *v
	case []byte:
		parsed, err := multikey.ParseJWK(v)
		if err != nil {
			return nil, err
		}
		in = *parsed
	default:
		return nil, fmt.Errorf("%w: unexpected JWK key data type %T", ErrUnsupportedFormat, keyData)
	}

	got, err := in.Algorithm()
	if err != nil {
		return nil, err
	}
	if got != alg {
		return nil, fmt.Errorf("%w: JWK is %s, import requested %s", multikey.ErrAlgorithmMismatch, got, alg)
	}
	if len(in.KeyOps) > 0 {
		for _, u := range usages {
			if !slices.Contains(in.KeyOps, string(u)) {
				return nil, fmt.Errorf("%w: %q not in JWK key_ops %v", ErrInvalidUsage, u, in.KeyOps)
			}
		}
	}

	buf, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: serializing JWK: %v", multikey.ErrMalformedKey, err)
	}
	key, err := jwk.ParseKey(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing JWK: %v", multikey.ErrMalformedKey, err)
	}
	var raw any
	if err := key.Raw(&raw); err != nil {
		return nil, fmt.Errorf("%w: loading %s JWK: %v", multikey.ErrMalformedKey, alg, err)
	}
	if err := checkRaw(raw, alg); err != nil {
		return nil, err
	}
	return raw, nil
}

func importRaw(keyData any, alg multikey.KeyAlgorithm) (any, error) {
	data, ok := keyData.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: raw key data must be bytes, got %T", ErrUnsupportedFormat, keyData)
	}

	if alg == multikey.EdDSA {
		if len(data) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("%w: Ed25519 public key must be %d bytes, got %d", multikey.ErrMalformedKey, ed25519.PublicKeySize, len(data))
		}
		return ed25519.PublicKey(slices.Clone(data)), nil
	}

	curve := ellipticCurve(alg)
	var pub *ecdsa.PublicKey
	if len(data) > 0 && (data[0] == 0x02 || data[0] == 0x03) {
		xb, yb, err := multikey.DecompressPoint(alg, data)
		if err != nil {
			return nil, err
		}
		pub = &ecdsa.PublicKey{Curve: curve, X: new(big.Int).SetBytes(xb), Y: new(big.Int).SetBytes(yb)}
	} else {
		x, y := elliptic.Unmarshal(curve, data)
		if x == nil {
			return nil, fmt.Errorf("%w: invalid uncompressed %s public key", multikey.ErrInvalidPoint, alg)
		}
		pub = &ecdsa.PublicKey{Curve: curve, X: x, Y: y}
	}
	if err := checkRaw(pub, alg); err != nil {
		return nil, err
	}
	return pub, nil
}

func ellipticCurve(alg multikey.KeyAlgorithm) elliptic.Curve {
	if alg == multikey.ECDSAP384 {
		return elliptic.P384()
	}
	return elliptic.P256()
}

// Checks that a stdlib key matches the algorithm and holds valid key material.
func checkRaw(raw any, alg multikey.KeyAlgorithm) error {
	switch k := raw.(type) {
	case *ecdsa.PublicKey:
		if err := checkCurve(k.Curve, alg); err != nil {
			return err
		}
		if _, err := k.ECDH(); err != nil {
			return fmt.Errorf("%w: %s public key: %v", multikey.ErrInvalidPoint, alg, err)
		}
	case *ecdsa.PrivateKey:
		if err := checkCurve(k.Curve, alg); err != nil {
			return err
		}
		if _, err := k.ECDH(); err != nil {
			return fmt.Errorf("%w: %s private key: %v", multikey.ErrMalformedKey, alg, err)
		}
		if _, err := k.PublicKey.ECDH(); err != nil {
			return fmt.Errorf("%w: %s public key: %v", multikey.ErrInvalidPoint, alg, err)
		}
	case ed25519.PublicKey:
		if alg != multikey.EdDSA || len(k) != ed25519.PublicKeySize {
			return fmt.Errorf("%w: unexpected Ed25519 public key for %s", multikey.ErrMalformedKey, alg)
		}
	case ed25519.PrivateKey:
		if alg != multikey.EdDSA || len(k) != ed25519.PrivateKeySize {
			return fmt.Errorf("%w: unexpected Ed25519 private key for %s", multikey.ErrMalformedKey, alg)
		}
	default:
		return fmt.Errorf("%w: unexpected key type %T", multikey.ErrUnsupportedAlgorithm, raw)
	}
	return nil
}

func checkCurve(curve elliptic.Curve, alg multikey.KeyAlgorithm) error {
	if !alg.IsECDSA() || curve.Params().Name != multikey.AlgorithmToJWKCurveName(alg) {
		return fmt.Errorf("%w: %s key on curve %s", multikey.ErrAlgorithmMismatch, alg, curve.Params().Name)
	}
	return nil
}

// Exports an extractable key. JWK export records the key usages as "key_ops", and sets "ext".
func (e *JWXEngine) ExportKey(ctx context.Context, format KeyFormat, key *CryptoKey) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if key == nil || key.raw == nil {
		return nil, fmt.Errorf("%w: empty crypto key", multikey.ErrMalformedKey)
	}
	if !key.Extractable {
		return nil, ErrNotExtractable
	}

	switch format {
	case FormatJWK:
		return exportJWK(key)
	case FormatRaw:
		return exportRaw(key)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func exportJWK(key *CryptoKey) (*multikey.JWK, error) {
	k, err := jwk.FromRaw(key.raw)
	if err != nil {
		return nil, fmt.Errorf("exporting %s key as JWK: %w", key.Algorithm.Name, err)
	}
	if err := setECFields(k, key.raw); err != nil {
		return nil, err
	}
	if len(key.Usages) > 0 {
		ops := make([]string, len(key.Usages))
		for i, u := range key.Usages {
			ops[i] = string(u)
		}
		if err := k.Set(jwk.KeyOpsKey, ops); err != nil {
			return nil, fmt.Errorf("setting JWK key_ops: %w", err)
		}
	}
	if err := k.Set("ext", key.Extractable); err != nil {
		return nil, fmt.Errorf("setting JWK ext: %w", err)
	}

	buf, err := json.Marshal(k)
	if err != nil {
		return nil, fmt.Errorf("serializing JWK: %w", err)
	}
	return multikey.ParseJWK(buf)
}

// JWK coordinates and scalars are always the full curve length; big.Int serialization drops leading zeros.
func setECFields(k jwk.Key, raw any) error {
	var pub *ecdsa.PublicKey
	var d *big.Int
	switch v := raw.(type) {
	case *ecdsa.PublicKey:
		pub = v
	case *ecdsa.PrivateKey:
		pub = &v.PublicKey
		d = v.D
	default:
		return nil
	}

	size := (pub.Curve.Params().BitSize + 7) / 8
	fields := map[string]*big.Int{
		jwk.ECDSAXKey: pub.X,
		jwk.ECDSAYKey: pub.Y,
	}
	if d != nil {
		fields[jwk.ECDSADKey] = d
	}
	for name, val := range fields {
		if err := k.Set(name, val.FillBytes(make([]byte, size))); err != nil {
			return fmt.Errorf("setting JWK %s: %w", name, err)
		}
	}
	return nil
}

func exportRaw(key *CryptoKey) ([]byte, error) {
	switch k := key.raw.(type) {
	case *ecdsa.PublicKey:
		return elliptic.Marshal(k.Curve, k.X, k.Y), nil
	case ed25519.PublicKey:
		return slices.Clone([]byte(k)), nil
	default:
		return nil, fmt.Errorf("%w: raw export is only supported for public keys", ErrUnsupportedFormat)
	}
}
