package multikey

import (
	"crypto/ed25519"
	"fmt"
)

// Ed25519 keys are the same bytes in Multikey and in JWK "x"/"d", so there is nothing to compute. Point validation is left to whatever crypto engine imports the key.
type edCodec struct{}

func (edCodec) compress(x, _ []byte) ([]byte, error) {
	if len(x) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: Ed25519 public key must be %d bytes, got %d", ErrMalformedKey, ed25519.PublicKeySize, len(x))
	}
	out := make([]byte, len(x))
	copy(out, x)
	return out, nil
}

func (c edCodec) decompress(raw []byte) ([]byte, []byte, error) {
	x, err := c.compress(raw, nil)
	return x, nil, err
}

func (edCodec) secretLength() int {
	return ed25519.SeedSize
}
