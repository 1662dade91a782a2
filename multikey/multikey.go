package multikey

import (
	"fmt"
	"strings"
)

// A public Multikey, with an optional secret Multikey for the same key.
//
// Field names and JSON tags match a Multikey verification method.
type MultikeyPair struct {
	PublicKeyMultibase string `json:"publicKeyMultibase"`
	SecretKeyMultibase string `json:"secretKeyMultibase,omitempty"`
}

// Multikey verification method, as found in a DID document or controlled identifier document.
type VerificationMethod struct {
	ID         string `json:"id,omitempty"`
	Type       string `json:"type"`
	Controller string `json:"controller,omitempty"`
	MultikeyPair
}

const VerificationMethodType = "Multikey"

func NewVerificationMethod(id, controller string, pair MultikeyPair) VerificationMethod {
	return VerificationMethod{
		ID:           id,
		Type:         VerificationMethodType,
		Controller:   controller,
		MultikeyPair: pair,
	}
}

// Metadata about a single decoded Multikey.
type KeyInfo struct {
	Algorithm  KeyAlgorithm
	Role       KeyRole
	Multicodec string
	// length of the key bytes following the preamble
	KeyLength int
}

type decodedKey struct {
	alg  KeyAlgorithm
	role KeyRole
	raw  []byte
}

func decodeMultikey(text string) (*decodedKey, error) {
	buf, err := DecodeMultibase(text)
	if err != nil {
		return nil, err
	}
	if len(buf) < len(Preamble{}) {
		return nil, fmt.Errorf("%w: multikey is too short (%d bytes)", ErrMalformedKey, len(buf))
	}
	alg, role, err := PreambleToAlgorithmAndRole(Preamble{buf[0], buf[1]})
	if err != nil {
		return nil, err
	}
	return &decodedKey{alg: alg, role: role, raw: buf[2:]}, nil
}

func encodeMultikey(alg KeyAlgorithm, role KeyRole, raw []byte) string {
	p := AlgorithmAndRoleToPreamble(alg, role)
	buf := make([]byte, 0, len(p)+len(raw))
	buf = append(buf, p[:]...)
	buf = append(buf, raw...)
	return EncodeMultibase(buf)
}

// Parses and checks a single Multikey string, public or secret.
func Inspect(text string) (*KeyInfo, error) {
	dk, err := decodeMultikey(text)
	if err != nil {
		return nil, err
	}
	if dk.role == RolePublic {
		if _, _, err := codecFor(dk.alg).decompress(dk.raw); err != nil {
			return nil, err
		}
	} else if err := checkSecret(dk.alg, dk.raw); err != nil {
		return nil, err
	}
	return &KeyInfo{
		Algorithm:  dk.alg,
		Role:       dk.role,
		Multicodec: Multicodec(dk.alg, dk.role).String(),
		KeyLength:  len(dk.raw),
	}, nil
}

const didKeyPrefix = "did:key:"

// Returns the did:key form of a public Multikey, after checking that the key is valid.
func DIDKey(publicMultibase string) (string, error) {
	if _, err := MultibaseToJWK(publicMultibase); err != nil {
		return "", err
	}
	return didKeyPrefix + publicMultibase, nil
}

// Extracts and checks the public Multikey from a did:key identifier.
func ParseDIDKey(did string) (string, error) {
	if !strings.HasPrefix(did, didKeyPrefix) {
		return "", fmt.Errorf("%w: expected did:key, got %q", ErrEncoding, did)
	}
	mk := strings.TrimPrefix(did, didKeyPrefix)
	if _, err := MultibaseToJWK(mk); err != nil {
		return "", err
	}
	return mk, nil
}
