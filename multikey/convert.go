package multikey

import (
	"fmt"
)

// Converts a Multikey pair to a JWK pair.
//
// The public key is required, and the secret key is optional. Both halves must decode to the same algorithm, and each must carry the preamble for its role. For ECDSA, the y coordinate is recovered from the compressed public key.
//
// Generated JWKs are marked extractable, with "verify" operations on the public key and "sign" on the private key. The private JWK repeats the public coordinates.
func MultikeyToJWK(pair MultikeyPair) (*JWKPair, error) {
	pub, err := decodeMultikey(pair.PublicKeyMultibase)
	if err != nil {
		return nil, err
	}
	if pub.role != RolePublic {
		return nil, fmt.Errorf("%w: %q has the wrong preamble (should refer to a public key)", ErrRoleMismatch, pair.PublicKeyMultibase)
	}

	var sec *decodedKey
	if pair.SecretKeyMultibase != "" {
		sec, err = decodeMultikey(pair.SecretKeyMultibase)
		if err != nil {
			return nil, err
		}
		if sec.alg != pub.alg {
			return nil, fmt.Errorf("%w: public key is %s, secret key is %s", ErrAlgorithmMismatch, pub.alg, sec.alg)
		}
		if sec.role != RoleSecret {
			return nil, fmt.Errorf("%w: %q has the wrong preamble (should refer to a secret key)", ErrRoleMismatch, pair.SecretKeyMultibase)
		}
		if err := checkSecret(sec.alg, sec.raw); err != nil {
			return nil, err
		}
	}

	x, y, err := codecFor(pub.alg).decompress(pub.raw)
	if err != nil {
		return nil, err
	}

	out := &JWKPair{
		PublicKey: newJWK(pub.alg, x, y, nil),
	}
	if sec != nil {
		priv := newJWK(sec.alg, x, y, sec.raw)
		out.PrivateKey = &priv
	}
	return out, nil
}

// Converts a single public Multikey to a public JWK.
func MultibaseToJWK(publicMultibase string) (*JWK, error) {
	pair, err := MultikeyToJWK(MultikeyPair{PublicKeyMultibase: publicMultibase})
	if err != nil {
		return nil, err
	}
	return &pair.PublicKey, nil
}

func newJWK(alg KeyAlgorithm, x, y, d []byte) JWK {
	jwk := JWK{
		KeyType: AlgorithmToJWKKeyType(alg),
		Curve:   AlgorithmToJWKCurveName(alg),
		X:       EncodeBase64URL(x),
		KeyOps:  []string{KeyOpVerify},
		Ext:     true,
	}
	if alg.IsECDSA() {
		jwk.Y = EncodeBase64URL(y)
	}
	if d != nil {
		jwk.D = EncodeBase64URL(d)
		jwk.KeyOps = []string{KeyOpSign}
	}
	return jwk
}

// Converts a JWK pair to a Multikey pair.
//
// The key algorithm is identified from "kty" and "crv"; if a private key is included, it must have the same algorithm as the public key. The public key coordinates are always taken from the public JWK, and the secret key bytes from the private JWK "d" field.
//
// NOTE: this does not check that the private key coordinates match the public key, or that "d" corresponds to the public key.
func JWKToMultikey(pair JWKPair) (*MultikeyPair, error) {
	alg, err := pair.PublicKey.Algorithm()
	if err != nil {
		return nil, err
	}
	if pair.PrivateKey != nil {
		secAlg, err := pair.PrivateKey.Algorithm()
		if err != nil {
			return nil, err
		}
		if secAlg != alg {
			return nil, fmt.Errorf("%w: public key is %s, private key is %s", ErrAlgorithmMismatch, alg, secAlg)
		}
	}

	x, err := decodeJWKField(&pair.PublicKey, "x", pair.PublicKey.X)
	if err != nil {
		return nil, err
	}
	var y []byte
	if alg.IsECDSA() {
		y, err = decodeJWKField(&pair.PublicKey, "y", pair.PublicKey.Y)
		if err != nil {
			return nil, err
		}
	}
	var d []byte
	if pair.PrivateKey != nil {
		d, err = decodeJWKField(pair.PrivateKey, "d", pair.PrivateKey.D)
		if err != nil {
			return nil, err
		}
		if err := checkSecret(alg, d); err != nil {
			return nil, err
		}
	}

	pubBytes, err := codecFor(alg).compress(x, y)
	if err != nil {
		return nil, err
	}

	out := &MultikeyPair{
		PublicKeyMultibase: encodeMultikey(alg, RolePublic, pubBytes),
	}
	if d != nil {
		out.SecretKeyMultibase = encodeMultikey(alg, RoleSecret, d)
	}
	return out, nil
}

// Converts a single public JWK to a public Multikey. Any "d" field is ignored.
func JWKToMultibase(jwk JWK) (string, error) {
	pair, err := JWKToMultikey(JWKPair{PublicKey: jwk})
	if err != nil {
		return "", err
	}
	return pair.PublicKeyMultibase, nil
}
